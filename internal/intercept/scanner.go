package intercept

import (
	"path/filepath"
	"strings"

	"cclog/internal/compdb"
)

// scanResult carries the partially built action out of the single argument
// pass, plus the two insertion cursors the environment injector anchors to.
type scanResult struct {
	action *compdb.BuildAction
	lang   Language

	includeCursor    int // just past the last explicit -I (or its value)
	sysIncludeCursor int // just past the last explicit -isystem (or its value)
}

// sourceExtensions is the allow-list of "source-like" tokens. Object files and
// libraries count as potential linker inputs; they are filtered out later
// unless link actions are kept.
var sourceExtensions = map[string]struct{}{
	".c":   {},
	".cc":  {},
	".cp":  {},
	".cpp": {},
	".cxx": {},
	".c++": {},
	".o":   {},
	".so":  {},
	".a":   {},
}

// scanArguments makes the single left-to-right pass over the argument vector
// of a matched invocation (argv[0] excluded; progPath becomes Arguments[0]).
// Every non-empty token lands in Arguments verbatim, in first-occurrence
// order; the cursors track the last occurrence of their flag.
func scanArguments(cfg *Configuration, progPath string, args []string, cwd string, lang Language) *scanResult {
	res := &scanResult{
		action: &compdb.BuildAction{Arguments: make([]string, 1, len(args)+1)},
		lang:   lang,
	}
	res.action.Arguments[0] = progPath
	res.includeCursor = 1
	res.sysIncludeCursor = 1

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) == 0 {
			continue // defensive against malformed argv entries
		}

		if arg[0] == '-' {
			if tokens, _, ok := flagValue(args, &i, "-isystem"); ok {
				res.action.Arguments = append(res.action.Arguments, tokens...)
				res.sysIncludeCursor = len(res.action.Arguments)
				continue
			}
			if tokens, _, ok := flagValue(args, &i, "-I"); ok {
				res.action.Arguments = append(res.action.Arguments, tokens...)
				res.includeCursor = len(res.action.Arguments)
				continue
			}
			if tokens, value, ok := flagValue(args, &i, "-x"); ok {
				res.action.Arguments = append(res.action.Arguments, tokens...)
				switch value {
				case "c":
					res.lang = LangC
				case "c++":
					res.lang = LangCpp
				default:
					// unrecognized -x value: keep the prior assumption
				}
				continue
			}
			if tokens, value, ok := flagValue(args, &i, "-o"); ok {
				res.action.Arguments = append(res.action.Arguments, tokens...)
				res.action.Output = maybeAbs(cfg, cwd, value)
				continue
			}

			res.action.Arguments = append(res.action.Arguments, arg)
			continue
		}

		res.action.Arguments = append(res.action.Arguments, arg)
		if isSourceToken(arg) {
			res.action.AddSource(maybeAbs(cfg, cwd, arg))
		}
	}

	return res
}

// flagValue matches both the attached ("-Ifoo") and space-separated ("-I foo")
// forms of key. On a match it returns the tokens exactly as they appeared
// (so the emitted command line keeps the original spelling) plus the extracted
// value. A trailing flag with no value attached and nothing after it does not
// match; the caller logs it verbatim.
func flagValue(args []string, argIndex *int, key string) (tokens []string, value string, ok bool) {
	arg := args[*argIndex]

	if arg == key {
		if *argIndex+1 >= len(args) {
			return nil, "", false
		}
		*argIndex++
		return []string{key, args[*argIndex]}, args[*argIndex], true
	}
	if strings.HasPrefix(arg, key) {
		return []string{arg}, arg[len(key):], true
	}

	return nil, "", false
}

func isSourceToken(arg string) bool {
	ext := strings.ToLower(filepath.Ext(arg))
	_, ok := sourceExtensions[ext]
	return ok
}

func isObjectToken(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".o", ".so", ".a":
		return true
	}
	return false
}

func maybeAbs(cfg *Configuration, cwd string, relPath string) string {
	if cfg.AbsolutePaths {
		return pathAbs(cwd, relPath)
	}
	return relPath
}

func pathAbs(cwd string, relPath string) string {
	if relPath == "" {
		return filepath.Clean(cwd)
	}
	var absPath string
	if relPath[0] == '/' {
		absPath = relPath
	} else {
		absPath = filepath.Join(cwd, relPath)
	}
	return filepath.Clean(absPath)
}
