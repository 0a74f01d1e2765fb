// This module provides integration of the flag package with environment variables.
// The purpose is to launch either `cclog-daemon -socket /tmp/s.sock` or
// `CC_LOGGER_SOCKET=/tmp/s.sock cclog-daemon`.
// See usages of CmdEnvString and others.

package common

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type cmdLineArg interface {
	flag.Value
	isFlagSet() bool
	getCmdName() string
	getEnvName() string
	getDescription() string
}

var allCmdLineArgs []cmdLineArg

type cmdLineArgBool struct {
	cmdName string
	envName string
	usage   string

	isSet bool
	def   bool
	value bool
}

func (s *cmdLineArgBool) String() string {
	return strconv.FormatBool(s.value)
}

func (s *cmdLineArgBool) Set(v string) error {
	s.isSet = true
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	s.value = b
	return nil
}

func (s *cmdLineArgBool) IsBoolFlag() bool {
	return true
}

func (s *cmdLineArgBool) getDescription() string {
	return s.usage
}

func (s *cmdLineArgBool) isFlagSet() bool {
	return s.isSet
}

func (s *cmdLineArgBool) getCmdName() string {
	return s.cmdName
}

func (s *cmdLineArgBool) getEnvName() string {
	return s.envName
}

type cmdLineArgString struct {
	cmdName string
	envName string
	usage   string

	isSet bool
	def   string
	value string
}

func (s *cmdLineArgString) String() string {
	return s.value
}

func (s *cmdLineArgString) Set(v string) error {
	s.isSet = true
	s.value = v
	return nil
}

func (s *cmdLineArgString) getDescription() string {
	return s.usage
}

func (s *cmdLineArgString) isFlagSet() bool {
	return s.isSet
}

func (s *cmdLineArgString) getCmdName() string {
	return s.cmdName
}

func (s *cmdLineArgString) getEnvName() string {
	return s.envName
}

type cmdLineArgInt struct {
	cmdName string
	envName string
	usage   string

	isSet bool
	def   int
	value int
}

func (s *cmdLineArgInt) String() string {
	return strconv.Itoa(s.value)
}

func (s *cmdLineArgInt) Set(v string) error {
	s.isSet = true
	i, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	s.value = i
	return nil
}

func (s *cmdLineArgInt) getDescription() string {
	return s.usage
}

func (s *cmdLineArgInt) isFlagSet() bool {
	return s.isSet
}

func (s *cmdLineArgInt) getCmdName() string {
	return s.cmdName
}

func (s *cmdLineArgInt) getEnvName() string {
	return s.envName
}

func initCmdFlag(s cmdLineArg, cmdName string, usage string) {
	if cmdName != "" { // otherwise, only the env var makes sense
		flag.Var(s, cmdName, usage)
	}
}

func customPrintUsage() {
	fmt.Printf("Usage of %s:\n\n", os.Args[0])
	for _, f := range allCmdLineArgs {
		if f.getCmdName() == "v" { // don't print "-v" (shortcut for -version)
			continue
		}

		valueHint := ""
		if f.getCmdName() == "version" {
			valueHint = " / -v"
		}
		if f.getCmdName() != "" {
			fmt.Printf("  -%s%s\n", f.getCmdName(), valueHint)
		}
		if f.getEnvName() != "" {
			fmt.Printf("  %s\n", f.getEnvName())
		}
		fmt.Print("    \t")
		fmt.Print(strings.ReplaceAll(f.getDescription(), "\n", "\n    \t"))
		fmt.Print("\n\n")
	}
}

func CmdEnvBool(usage string, def bool, cmdFlagName string, envName string) *bool {
	var sf = &cmdLineArgBool{cmdFlagName, envName, usage, false, def, def}
	allCmdLineArgs = append(allCmdLineArgs, sf)
	initCmdFlag(sf, cmdFlagName, usage)
	return &sf.value
}

func CmdEnvString(usage string, def string, cmdFlagName string, envName string) *string {
	var sf = &cmdLineArgString{cmdFlagName, envName, usage, false, def, def}
	allCmdLineArgs = append(allCmdLineArgs, sf)
	initCmdFlag(sf, cmdFlagName, usage)
	return &sf.value
}

func CmdEnvInt(usage string, def int, cmdFlagName string, envName string) *int {
	var sf = &cmdLineArgInt{cmdFlagName, envName, usage, false, def, def}
	allCmdLineArgs = append(allCmdLineArgs, sf)
	initCmdFlag(sf, cmdFlagName, usage)
	return &sf.value
}

// ParseCmdFlagsCombiningWithEnv parses the command line, then fills every flag
// that wasn't given explicitly from its environment variable, if one is set.
// Command-line values win over environment values.
func ParseCmdFlagsCombiningWithEnv() {
	flag.Usage = customPrintUsage
	flag.Parse()

	for _, f := range allCmdLineArgs {
		if f.isFlagSet() || f.getEnvName() == "" {
			continue
		}
		if v, exists := os.LookupEnv(f.getEnvName()); exists {
			_ = f.Set(v)
		}
	}
}
