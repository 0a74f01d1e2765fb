// cclog is the compiler-shadowing wrapper. A build invokes it either through a
// PATH shim named like the compiler (see cclog-build) or as `cclog g++ ...`.
// It reconstructs one build action from the argument vector, logs it to the
// compilation database (best-effort, never fatally), then runs the real
// compiler with inherited stdio and exits with the compiler's exit code.
// Whatever happens to the logging, the real compiler must run.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"cclog/internal/compdb"
	"cclog/internal/intercept"
)

func main() {
	compiler, args := splitCompilerAndArgs(os.Args)
	if compiler == "" {
		fmt.Fprintln(os.Stderr, "usage: cclog <compiler> [args...]")
		os.Exit(1)
	}

	realCompiler, err := findRealCompiler(compiler)
	if err != nil {
		fmt.Fprintln(os.Stderr, "[cclog] "+err.Error())
		os.Exit(1)
	}

	logInvocation(realCompiler, args)

	os.Exit(executeCompiler(realCompiler, args))
}

// splitCompilerAndArgs supports both invocation styles: through a shim symlink
// named like the compiler, or explicitly as `cclog <compiler> <args...>`.
func splitCompilerAndArgs(argv []string) (compiler string, arguments []string) {
	compiler = filepath.Base(argv[0])

	if compiler == "cclog" {
		if len(argv) < 2 {
			return "", nil
		}
		compiler = argv[1]
		arguments = argv[2:]
	} else {
		arguments = argv[1:]
	}

	return
}

// findRealCompiler resolves the compiler to run. A name with a path separator
// is taken as given; a bare name is searched in PATH, skipping entries that
// resolve back to this very executable (the shim directory sits first in PATH,
// and re-invoking ourselves through it would loop forever).
func findRealCompiler(compiler string) (string, error) {
	if strings.ContainsRune(compiler, '/') {
		return compiler, nil
	}

	ownExecutable, _ := os.Executable()
	ownExecutable, _ = filepath.EvalSymlinks(ownExecutable)

	for _, dir := range strings.Split(os.Getenv("PATH"), string(os.PathListSeparator)) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, compiler)
		resolved, err := filepath.EvalSymlinks(candidate)
		if err != nil {
			continue
		}
		if resolved == ownExecutable {
			continue
		}
		if stat, err := os.Stat(candidate); err == nil && !stat.IsDir() && stat.Mode()&0111 != 0 {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("compiler %s not found in PATH", compiler)
}

// logInvocation is the whole interception pipeline. Every failure inside it
// degrades to "log nothing": a broken database must never break the build.
func logInvocation(realCompiler string, args []string) {
	cfg := intercept.MakeConfiguration()
	if err := intercept.MakeLoggerIntercept(cfg); err != nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	action := intercept.AssembleAction(cfg, realCompiler, args, cwd)
	if action == nil {
		return
	}

	entries := compdb.EntriesFromAction(action, cwd)
	if cfg.SocketPath != "" {
		if err := compdb.SendToCollector(cfg.SocketPath, entries); err == nil {
			return
		}
		// collector gone: fall back to locking the file ourselves
	}
	_ = compdb.MakeWriter(cfg.DbFileName).Merge(entries)
}

func executeCompiler(realCompiler string, args []string) int {
	cmd := exec.Command(realCompiler, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if cmd.ProcessState != nil && cmd.ProcessState.ExitCode() >= 0 {
			return cmd.ProcessState.ExitCode()
		}
		fmt.Fprintln(os.Stderr, "[cclog] "+err.Error())
		return 1
	}
	return 0
}
