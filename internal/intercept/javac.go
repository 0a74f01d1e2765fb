package intercept

import (
	"strings"

	"cclog/internal/compdb"
)

// javac flags whose separate next token is a value, never a source file
var javacValueFlags = map[string]struct{}{
	"-classpath":      {},
	"-cp":             {},
	"-sourcepath":     {},
	"-bootclasspath":  {},
	"-d":              {},
	"-encoding":       {},
	"-source":         {},
	"-target":         {},
	"-release":        {},
}

// scanJavacArguments handles a javac-like invocation: the argument vector is
// logged verbatim and every .java token becomes a source. No environment
// injection and no path resolver apply to the Java dialect.
func scanJavacArguments(cfg *Configuration, progPath string, args []string, cwd string) *compdb.BuildAction {
	action := &compdb.BuildAction{Arguments: make([]string, 1, len(args)+1)}
	action.Arguments[0] = progPath

	skipValue := false
	for _, arg := range args {
		if len(arg) == 0 {
			continue
		}
		action.Arguments = append(action.Arguments, arg)

		if skipValue {
			skipValue = false
			continue
		}
		if arg[0] == '-' {
			_, skipValue = javacValueFlags[arg]
			continue
		}
		if strings.HasSuffix(strings.ToLower(arg), ".java") {
			action.AddSource(maybeAbs(cfg, cwd, arg))
		}
	}

	return action
}
