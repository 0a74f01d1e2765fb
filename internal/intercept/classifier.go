package intercept

import (
	"path/filepath"
	"strings"
)

// ProgramKind tells whether an intercepted program is worth logging at all,
// and which argument dialect it speaks.
type ProgramKind int

const (
	ProgramUnknown ProgramKind = iota
	ProgramGccLike
	ProgramJavacLike
)

// Language is the language family of one build action. It starts from the
// compiler binary's inferred identity and may be overridden by an explicit
// -x argument during the scan; the last explicit override wins.
// The zero value is C++: unqualified invocations commonly need C++ header
// search paths, so that's the safer default.
type Language int

const (
	LangCpp Language = iota
	LangC
)

// ClassifyProgram decides whether progPath is a compiler-like tool and infers
// its initial language family. Pure function: classifying the same path against
// the same patterns always yields the same result, and a miss has no effect
// beyond the invocation not being logged.
func ClassifyProgram(cfg *Configuration, progPath string) (ProgramKind, Language) {
	if matchesAnyPattern(cfg.GccLikePatterns, progPath) {
		return ProgramGccLike, inferLanguage(filepath.Base(progPath))
	}
	if matchesAnyPattern(cfg.JavacLikePatterns, progPath) {
		return ProgramJavacLike, LangCpp
	}
	return ProgramUnknown, LangCpp
}

func matchesAnyPattern(patterns []string, progPath string) bool {
	for _, pattern := range patterns {
		if matchesPattern(pattern, progPath) {
			return true
		}
	}
	return false
}

// matchesPattern applies the two matching rules of the classifier:
//   - a pattern without a path separator is an infix of the basename,
//     so "gcc" matches "gcc-7" and "/my/gcc/compiler/gcc-7";
//   - a pattern with a path separator is a suffix of the full invocation path,
//     anchored at a component boundary, so "/bin/g++" matches "/usr/bin/g++"
//     but not "/usr/bin/g++-7", and "/clang" never matches "clang-tidy".
func matchesPattern(pattern string, progPath string) bool {
	if !strings.ContainsRune(pattern, '/') {
		return strings.Contains(filepath.Base(progPath), pattern)
	}

	if !strings.HasSuffix(progPath, pattern) {
		// a leading-slash pattern also matches the bare program name itself:
		// "/clang" matches an invocation of plain "clang"
		return strings.HasPrefix(pattern, "/") && progPath == pattern[1:]
	}
	if len(progPath) == len(pattern) {
		return true
	}
	// anchored: the character before the matched suffix must close a path component
	return pattern[0] == '/' || progPath[len(progPath)-len(pattern)-1] == '/'
}

// inferLanguage guesses the language family from the compiler's basename.
// An explicit -x later in the argument vector overrides this.
func inferLanguage(baseName string) Language {
	if strings.Contains(baseName, "++") {
		return LangCpp
	}
	for _, cInfix := range []string{"gcc", "cc", "clang", "tcc"} {
		if strings.Contains(baseName, cInfix) {
			return LangC
		}
	}
	return LangCpp
}
