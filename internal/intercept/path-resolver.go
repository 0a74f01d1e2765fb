package intercept

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"strings"
)

// pathBearingFlags are the include/sysroot flags whose value is a path and is
// rewritten by the absolutization pass. Longer flags come before their
// prefixes so attached forms resolve unambiguously.
var pathBearingFlags = []string{
	"-iwithprefixbefore",
	"-iwithprefix",
	"-idirafter",
	"-imultilib",
	"-isysroot",
	"-isystem",
	"-iquote",
	"--sysroot",
	"-sysroot",
	"-I",
}

// absolutizeFlagPaths rewrites the path value of every path-bearing flag in
// args in place, handling attached ("-Ifoo"), space-separated ("-I foo") and
// sysroot-relative ("-I=foo", the "=" is preserved) forms.
// args[0] is the compiler itself and is never touched.
func absolutizeFlagPaths(args []string, cwd string) {
	for i := 1; i < len(args); i++ {
		for _, flag := range pathBearingFlags {
			if args[i] == flag {
				if i+1 < len(args) {
					i++
					args[i] = absPathValue(cwd, args[i])
				}
				break
			}
			if strings.HasPrefix(args[i], flag) && len(args[i]) > len(flag) {
				args[i] = flag + absPathValue(cwd, args[i][len(flag):])
				break
			}
		}
	}
}

// absPathValue absolutizes a flag value, keeping the sysroot-relative "="
// prefix intact and only resolving what follows it.
func absPathValue(cwd string, value string) string {
	if strings.HasPrefix(value, "=") {
		return "=" + pathAbs(cwd, value[1:])
	}
	return pathAbs(cwd, value)
}

const (
	searchListBegin = "#include <...> search starts here:"
	searchListEnd   = "End of search list."
)

// defaultIncludeDirs asks the real compiler for its built-in header search
// list by running it in diagnostic preprocessor mode and scanning the output
// between the search-list markers. Best-effort enrichment: any failure of the
// subprocess simply contributes zero paths, it never fails the invocation
// (the exit code is not interpreted at all, some compilers whine about the
// empty input yet still print the list).
func defaultIncludeDirs(progPath string, lang Language, cwd string) []string {
	langArg := "c++"
	if lang == LangC {
		langArg = "c"
	}

	var out bytes.Buffer
	cmd := exec.Command(progPath, "-x", langArg, "-E", "-v", os.DevNull)
	cmd.Dir = cwd
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Start(); err != nil {
		logIntercept.Debug("couldn't run compiler for its search list", "compiler", progPath, "err", err)
		return nil
	}
	_ = cmd.Wait()

	return parseSearchList(out.String(), cwd)
}

// parseSearchList extracts the directories listed between the quote/angle
// search-list markers of a compiler's -v output, absolutized, minus the
// compiler's own bundled header directories.
func parseSearchList(text string, cwd string) []string {
	var dirs []string
	inList := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == searchListBegin {
			inList = true
			continue
		}
		if !inList {
			continue
		}
		if line == searchListEnd {
			break
		}
		if line == "" {
			continue
		}
		// macOS clang marks framework directories with a trailing note
		line = strings.TrimSuffix(line, " (framework directory)")

		dir := pathAbs(cwd, line)
		if isBundledIncludeDir(dir) {
			continue
		}
		dirs = append(dirs, dir)
	}

	return dirs
}

// isBundledIncludeDir spots the compiler's own bundled header directories
// (the .../lib/gcc/.../include* family) so they don't get logged as project
// search paths. This is a heuristic tuned to observed GCC-shaped toolchain
// layouts, not a universal rule; differently shaped sysroots may evade it.
func isBundledIncludeDir(dir string) bool {
	return strings.Contains(dir, "/lib/gcc") && strings.Contains(dir, "include")
}
