// cclog-build runs a build command with compiler interception switched on.
// It creates a shim directory with one symlink per compiler pattern, each
// pointing at the cclog wrapper, prepends it to PATH, exports the CC_LOGGER_*
// environment and runs the build. The wrappers do the actual logging, so the
// database is complete as soon as the build exits.
//
//	cclog-build -output compile_commands.json make -j8
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"cclog/internal/common"
	"cclog/internal/intercept"
)

func failedStart(message string, err error) {
	_, _ = fmt.Fprintln(os.Stderr, fmt.Sprint("failed to start cclog-build: ", message, ": ", err))
	os.Exit(1)
}

func main() {
	showVersionAndExit := common.CmdEnvBool("Show version and exit.", false,
		"version", "")
	showVersionAndExitShort := common.CmdEnvBool("Show version and exit.", false,
		"v", "")
	outputFile := common.CmdEnvString("Compilation database to write.", intercept.DefaultDbFileName,
		"output", intercept.EnvDbFile)
	gccLike := common.CmdEnvString("Colon-separated patterns of compiler-like program names.\nPatterns with a path separator match as path suffixes, others as basename infixes.", intercept.DefaultGccLikePatterns,
		"gcc-like", intercept.EnvGccLike)
	javacLike := common.CmdEnvString("Colon-separated patterns of javac-like program names.", intercept.DefaultJavacLikePatterns,
		"javac-like", intercept.EnvJavacLike)
	keepLink := common.CmdEnvBool("Log link-only actions (object/library inputs) too.", false,
		"keep-link", intercept.EnvKeepLinkActions)
	absPaths := common.CmdEnvBool("Convert relative source and include paths to absolute ones.", false,
		"abs-path", intercept.EnvAbsolutePaths)
	defDirs := common.CmdEnvBool("Ask each compiler for its built-in include dirs and log them.\nSpawns one extra compiler process per compile step.", false,
		"def-dirs", intercept.EnvAppendDefDirs)
	debugFile := common.CmdEnvString("Write wrapper debug logs to this file.", "",
		"debug-file", intercept.EnvDebugFile)
	socketPath := common.CmdEnvString("Forward entries to a cclog-daemon on this unix socket\ninstead of locking the database per compile step.", "",
		"socket", intercept.EnvSocket)

	common.ParseCmdFlagsCombiningWithEnv()

	if *showVersionAndExit || *showVersionAndExitShort {
		fmt.Println(common.GetVersion())
		os.Exit(0)
	}

	buildCmd := flag.Args()
	if len(buildCmd) == 0 {
		fmt.Fprintln(os.Stderr, "usage: cclog-build [flags] <build command...>")
		os.Exit(1)
	}

	wrapperPath, err := findWrapper()
	if err != nil {
		failedStart("cclog wrapper not found", err)
	}

	shimDir, err := makeShimDir(wrapperPath, *gccLike, *javacLike)
	if err != nil {
		failedStart("can't create shim directory", err)
	}

	dbPath, err := filepath.Abs(*outputFile)
	if err != nil {
		failedStart("can't resolve output path", err)
	}

	env := append(os.Environ(),
		"PATH="+shimDir+string(os.PathListSeparator)+os.Getenv("PATH"),
		intercept.EnvDbFile+"="+dbPath,
		intercept.EnvGccLike+"="+*gccLike,
		intercept.EnvJavacLike+"="+*javacLike,
	)
	if *keepLink {
		env = append(env, intercept.EnvKeepLinkActions+"=true")
	}
	if *absPaths {
		env = append(env, intercept.EnvAbsolutePaths+"=true")
	}
	if *defDirs {
		env = append(env, intercept.EnvAppendDefDirs+"=true")
	}
	if *debugFile != "" {
		env = append(env, intercept.EnvDebugFile+"="+*debugFile)
	}
	if *socketPath != "" {
		env = append(env, intercept.EnvSocket+"="+*socketPath)
	}

	exitCode := runBuild(buildCmd, env)
	_ = os.RemoveAll(shimDir) // os.Exit below would skip a defer

	if common.FileExists(dbPath) {
		fmt.Fprintln(os.Stderr, "compilation database written to "+dbPath)
	} else {
		fmt.Fprintln(os.Stderr, "no compiler invocations were logged")
	}
	os.Exit(exitCode)
}

// findWrapper locates the cclog binary: next to this executable first, then PATH.
func findWrapper() (string, error) {
	self, err := os.Executable()
	if err == nil {
		sibling := filepath.Join(filepath.Dir(self), "cclog")
		if common.FileExists(sibling) {
			return sibling, nil
		}
	}
	return exec.LookPath("cclog")
}

// makeShimDir builds a temp directory of symlinks named like the compilers to
// intercept, all pointing at the wrapper. Only the basename of each pattern is
// usable as a shim name; purely infix patterns get a shim of their literal
// name, which covers the common `gcc`/`g++` cases.
func makeShimDir(wrapperPath string, patternLists ...string) (string, error) {
	shimDir, err := os.MkdirTemp("", "cclog-shims-")
	if err != nil {
		return "", err
	}

	for _, patterns := range patternLists {
		for _, pattern := range strings.Split(patterns, ":") {
			name := filepath.Base(pattern)
			if name == "" || name == "." || name == "/" {
				continue
			}
			shim := filepath.Join(shimDir, name)
			if common.FileExists(shim) {
				continue
			}
			if err := os.Symlink(wrapperPath, shim); err != nil {
				_ = os.RemoveAll(shimDir)
				return "", err
			}
		}
	}

	return shimDir, nil
}

// runBuild executes the build command with the interception environment.
// A single argument is run through the shell, so `cclog-build "make -j8"` and
// `cclog-build make -j8` both work.
func runBuild(buildCmd []string, env []string) int {
	var cmd *exec.Cmd
	if len(buildCmd) == 1 {
		cmd = exec.Command("sh", "-c", buildCmd[0])
	} else {
		cmd = exec.Command(buildCmd[0], buildCmd[1:]...)
	}
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if cmd.ProcessState != nil && cmd.ProcessState.ExitCode() >= 0 {
			return cmd.ProcessState.ExitCode()
		}
		fmt.Fprintln(os.Stderr, "[cclog-build] "+err.Error())
		return 1
	}
	return 0
}
