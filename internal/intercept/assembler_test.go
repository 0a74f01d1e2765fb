package intercept

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleAction_OutputSelfExclusion(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()

	action := AssembleAction(cfg, "gcc", []string{"-o", "foo.o", "foo.c", "foo.o"}, "/w")
	require.NotNil(t, action)
	assert.Equal(t, []string{"foo.c"}, action.Sources)
}

func TestAssembleAction_LinkInputsFilteredByDefault(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()

	action := AssembleAction(cfg, "gcc", []string{"main.c", "object1.o", "object2.so"}, "/w")
	require.NotNil(t, action)
	assert.Equal(t, []string{"main.c"}, action.Sources)
}

func TestAssembleAction_KeepLinkRetainsObjects(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()
	cfg.KeepLinkActions = true

	action := AssembleAction(cfg, "gcc", []string{"main.c", "object1.o", "object2.so"}, "/w")
	require.NotNil(t, action)
	assert.Equal(t, []string{"main.c", "object1.o", "object2.so"}, action.Sources)
}

func TestAssembleAction_PureLinkDroppedUnlessKept(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()
	assert.Nil(t, AssembleAction(cfg, "gcc", []string{"-o", "prog", "a.o", "b.o"}, "/w"))

	cfg.KeepLinkActions = true
	action := AssembleAction(cfg, "gcc", []string{"-o", "prog", "a.o", "b.o"}, "/w")
	require.NotNil(t, action)
	assert.Equal(t, []string{"a.o", "b.o"}, action.Sources)
}

func TestAssembleAction_ResponseFileFallback(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()

	action := AssembleAction(cfg, "clang", []string{"@flags.rsp"}, "/w")
	require.NotNil(t, action)
	assert.Equal(t, []string{"@flags.rsp"}, action.Sources)
}

func TestAssembleAction_NoSourceNoResponseFile(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()
	assert.Nil(t, AssembleAction(cfg, "gcc", []string{"-v"}, "/w"))
}

func TestAssembleAction_UnknownProgramIgnored(t *testing.T) {
	t.Parallel()
	cfg := &Configuration{GccLikePatterns: []string{"gcc", "g++"}}
	assert.Nil(t, AssembleAction(cfg, "/usr/bin/ld", []string{"main.o", "-o", "prog"}, "/w"))
}

func TestAssembleAction_EnvInjectionOrdering(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()
	cfg.CPath = envValue{Value: "/a:/b", IsSet: true}
	cfg.CplusIncludePath = envValue{Value: "/x", IsSet: true}

	action := AssembleAction(cfg, "/usr/bin/g++", []string{"main.cpp"}, "/w")
	require.NotNil(t, action)
	assert.Equal(t,
		[]string{"/usr/bin/g++", "-I", "/a", "-I", "/b", "-isystem", "/x", "main.cpp"},
		action.Arguments)
}

func TestAssembleAction_CIncludePathGovernsCCompiles(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()
	cfg.CIncludePath = envValue{Value: "/c-only", IsSet: true}
	cfg.CplusIncludePath = envValue{Value: "/cpp-only", IsSet: true}

	action := AssembleAction(cfg, "gcc", []string{"main.c"}, "/w")
	require.NotNil(t, action)
	assert.Contains(t, action.Arguments, "/c-only")
	assert.NotContains(t, action.Arguments, "/cpp-only")
}

func TestAssembleAction_ExplicitLanguageSelectsIncludeVariable(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()
	cfg.CIncludePath = envValue{Value: "/c-only", IsSet: true}
	cfg.CplusIncludePath = envValue{Value: "/cpp-only", IsSet: true}

	// gcc implies C, but the explicit -x c++ override wins before the
	// language-specific variable is chosen
	action := AssembleAction(cfg, "gcc", []string{"-x", "c++", "main.c"}, "/w")
	require.NotNil(t, action)
	assert.Contains(t, action.Arguments, "/cpp-only")
	assert.NotContains(t, action.Arguments, "/c-only")
}

func TestAssembleAction_UnsetVariablesInjectNothing(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()

	action := AssembleAction(cfg, "gcc", []string{"main.c"}, "/w")
	require.NotNil(t, action)
	assert.Equal(t, []string{"gcc", "main.c"}, action.Arguments)
}

func TestAssembleAction_AbsolutizationPass(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()
	cfg.AbsolutePaths = true

	action := AssembleAction(cfg, "gcc", []string{"-Iinc", "-o", "foo.o", "foo.c"}, "/w")
	require.NotNil(t, action)
	assert.Equal(t, []string{"gcc", "-I/w/inc", "-o", "foo.o", "foo.c"}, action.Arguments)
	assert.Equal(t, []string{"/w/foo.c"}, action.Sources)
	assert.Equal(t, "/w/foo.o", action.Output)
}

func TestAssembleAction_AbsolutizedOutputStillExcluded(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()
	cfg.AbsolutePaths = true

	action := AssembleAction(cfg, "gcc", []string{"-o", "foo.o", "foo.o", "foo.c"}, "/w")
	require.NotNil(t, action)
	assert.Equal(t, []string{"/w/foo.c"}, action.Sources)
}

func TestAssembleAction_JavacSources(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()

	action := AssembleAction(cfg, "javac", []string{"-d", "out", "Foo.java", "Bar.java"}, "/w")
	require.NotNil(t, action)
	assert.Equal(t, []string{"Foo.java", "Bar.java"}, action.Sources)
	assert.Equal(t, []string{"javac", "-d", "out", "Foo.java", "Bar.java"}, action.Arguments)
}

func TestAssembleAction_JavacWithoutSourcesDropped(t *testing.T) {
	t.Parallel()
	cfg := makeTestConfiguration()
	assert.Nil(t, AssembleAction(cfg, "javac", []string{"-version"}, "/w"))
}
