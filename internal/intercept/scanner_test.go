package intercept

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanArguments_OutputAndSource(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"-c", "-o", "foo.o", "foo.c"}, "/w", LangC)

	assert.Equal(t, []string{"gcc", "-c", "-o", "foo.o", "foo.c"}, res.action.Arguments)
	assert.Equal(t, "foo.o", res.action.Output)
	assert.Equal(t, []string{"foo.c"}, res.action.Sources)
}

func TestScanArguments_AttachedOutput(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"-ofoo.o", "foo.c"}, "/w", LangC)

	assert.Equal(t, []string{"gcc", "-ofoo.o", "foo.c"}, res.action.Arguments)
	assert.Equal(t, "foo.o", res.action.Output)
}

func TestScanArguments_IncludeCursorAfterLastFlag(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"-Iinc1", "-I", "inc2", "main.c"}, "/w", LangC)

	// arguments: [gcc -Iinc1 -I inc2 main.c]; the cursor sits just past "inc2"
	require.Equal(t, []string{"gcc", "-Iinc1", "-I", "inc2", "main.c"}, res.action.Arguments)
	assert.Equal(t, 4, res.includeCursor)
	assert.Equal(t, 1, res.sysIncludeCursor)
}

func TestScanArguments_SysIncludeCursorIsSeparate(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"-isystem", "sys", "-Iinc", "main.c"}, "/w", LangC)

	require.Equal(t, []string{"gcc", "-isystem", "sys", "-Iinc", "main.c"}, res.action.Arguments)
	assert.Equal(t, 3, res.sysIncludeCursor)
	assert.Equal(t, 4, res.includeCursor)
}

func TestScanArguments_CursorsDefaultToAfterCompiler(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"main.c"}, "/w", LangC)

	assert.Equal(t, 1, res.includeCursor)
	assert.Equal(t, 1, res.sysIncludeCursor)
}

func TestScanArguments_LanguageOverrideLastWins(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"-x", "c++", "-x", "c", "-xc++", "main.c"}, "/w", LangC)
	assert.Equal(t, LangCpp, res.lang)
}

func TestScanArguments_UnrecognizedLanguageKeepsPrior(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"-x", "assembler", "main.c"}, "/w", LangC)
	assert.Equal(t, LangC, res.lang)

	// the tokens are still logged verbatim
	assert.Equal(t, []string{"gcc", "-x", "assembler", "main.c"}, res.action.Arguments)
}

func TestScanArguments_EmptyTokenDropped(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"", "main.c", ""}, "/w", LangC)

	assert.Equal(t, []string{"gcc", "main.c"}, res.action.Arguments)
	assert.Equal(t, []string{"main.c"}, res.action.Sources)
}

func TestScanArguments_SourceDeduplication(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"main.c", "util.c", "main.c"}, "/w", LangC)

	assert.Equal(t, []string{"main.c", "util.c"}, res.action.Sources)
	// arguments keep every occurrence in first-occurrence order
	assert.Equal(t, []string{"gcc", "main.c", "util.c", "main.c"}, res.action.Arguments)
}

func TestScanArguments_ExtensionMatchingIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "g++", []string{"MAIN.CPP", "lib.A"}, "/w", LangCpp)
	assert.Equal(t, []string{"MAIN.CPP", "lib.A"}, res.action.Sources)
}

func TestScanArguments_ObjectsAndLibrariesAreSourceCandidates(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"main.c", "object1.o", "object2.so", "libx.a"}, "/w", LangC)
	assert.Equal(t, []string{"main.c", "object1.o", "object2.so", "libx.a"}, res.action.Sources)
}

func TestScanArguments_EagerAbsolutization(t *testing.T) {
	t.Parallel()
	cfg := &Configuration{AbsolutePaths: true}
	res := scanArguments(cfg, "gcc", []string{"-o", "out/foo.o", "main.c", "/abs/other.c"}, "/work", LangC)

	assert.Equal(t, []string{"/work/main.c", "/abs/other.c"}, res.action.Sources)
	assert.Equal(t, "/work/out/foo.o", res.action.Output)
	// the emitted argument vector keeps the original spelling; only the
	// flag-borne paths are rewritten later by the absolutization pass
	assert.Equal(t, []string{"gcc", "-o", "out/foo.o", "main.c", "/abs/other.c"}, res.action.Arguments)
}

func TestScanArguments_TrailingFlagWithoutValue(t *testing.T) {
	t.Parallel()
	res := scanArguments(&Configuration{}, "gcc", []string{"main.c", "-o"}, "/w", LangC)

	assert.Equal(t, []string{"gcc", "main.c", "-o"}, res.action.Arguments)
	assert.Empty(t, res.action.Output)
}
