package intercept

import (
	"os"
	"strings"
)

// Well-known environment variables driving one intercepted invocation.
const (
	EnvGccLike          = "CC_LOGGER_GCC_LIKE"
	EnvJavacLike        = "CC_LOGGER_JAVAC_LIKE"
	EnvDbFile           = "CC_LOGGER_FILE"
	EnvDebugFile        = "CC_LOGGER_DEBUG_FILE"
	EnvSocket           = "CC_LOGGER_SOCKET"
	EnvAppendDefDirs    = "CC_LOGGER_DEF_DIRS"
	EnvAbsolutePaths    = "CC_LOGGER_ABS_PATH"
	EnvKeepLinkActions  = "CC_LOGGER_KEEP_LINK"
	EnvCPath            = "CPATH"
	EnvCIncludePath     = "C_INCLUDE_PATH"
	EnvCplusIncludePath = "CPLUS_INCLUDE_PATH"
)

const (
	DefaultGccLikePatterns   = "gcc:g++:clang:clang++:cc:c++"
	DefaultJavacLikePatterns = "javac"
	DefaultDbFileName        = "compile_commands.json"
)

// Configuration is an explicit snapshot of the environment taken once per
// intercepted invocation and passed through all components.
// Nothing below this layer reads environment variables ad hoc: every compiler
// process launched by a parallel build gets its own immutable copy.
type Configuration struct {
	GccLikePatterns   []string // colon-separated CC_LOGGER_GCC_LIKE, split
	JavacLikePatterns []string // colon-separated CC_LOGGER_JAVAC_LIKE, split

	DbFileName    string // destination compilation database
	DebugFileName string // optional debug log sink; empty means silent
	SocketPath    string // optional collector daemon socket; empty means direct file writes

	AppendDefaultDirs bool // CC_LOGGER_DEF_DIRS: ask the compiler for its built-in search list
	AbsolutePaths     bool // CC_LOGGER_ABS_PATH: absolutize sources, output and flag-borne paths
	KeepLinkActions   bool // CC_LOGGER_KEEP_LINK: keep object/library inputs (pure link steps)

	// Include-path variables keep the set/unset distinction: an unset variable
	// injects nothing, while a set-but-empty one injects "." per the usual
	// colon-list semantics.
	CPath            envValue
	CIncludePath     envValue
	CplusIncludePath envValue
}

type envValue struct {
	Value string
	IsSet bool
}

// MakeConfiguration snapshots the current process environment.
func MakeConfiguration() *Configuration {
	cfg := &Configuration{
		GccLikePatterns:   splitPatterns(envOrDefault(EnvGccLike, DefaultGccLikePatterns)),
		JavacLikePatterns: splitPatterns(envOrDefault(EnvJavacLike, DefaultJavacLikePatterns)),
		DbFileName:        envOrDefault(EnvDbFile, DefaultDbFileName),
		DebugFileName:     os.Getenv(EnvDebugFile),
		SocketPath:        os.Getenv(EnvSocket),
		AppendDefaultDirs: envFlagEnabled(EnvAppendDefDirs),
		AbsolutePaths:     envFlagEnabled(EnvAbsolutePaths),
		KeepLinkActions:   envFlagEnabled(EnvKeepLinkActions),
	}

	cfg.CPath = lookupEnvValue(EnvCPath)
	cfg.CIncludePath = lookupEnvValue(EnvCIncludePath)
	cfg.CplusIncludePath = lookupEnvValue(EnvCplusIncludePath)

	return cfg
}

func splitPatterns(patterns string) []string {
	split := make([]string, 0, 8)
	for _, p := range strings.Split(patterns, ":") {
		if p != "" {
			split = append(split, p)
		}
	}
	return split
}

func envOrDefault(name string, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envFlagEnabled(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

func lookupEnvValue(name string) envValue {
	v, exists := os.LookupEnv(name)
	return envValue{Value: v, IsSet: exists}
}
