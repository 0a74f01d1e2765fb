package intercept

import (
	"strings"

	"cclog/internal/compdb"
)

// AssembleAction inspects one intercepted invocation and reconstructs its
// normalized build action: classify, scan, splice environment-driven include
// paths, optionally absolutize, then filter. It returns nil when the
// invocation is not worth logging (unknown program, or nothing compilable in
// it) — which is not an error: the shadowed compiler runs regardless.
//
// When default-dir discovery is enabled this spawns the real compiler once to
// read its built-in search list; that is the only blocking side effect.
func AssembleAction(cfg *Configuration, progPath string, args []string, cwd string) *compdb.BuildAction {
	kind, lang := ClassifyProgram(cfg, progPath)

	switch kind {
	case ProgramUnknown:
		return nil
	case ProgramJavacLike:
		action := scanJavacArguments(cfg, progPath, args, cwd)
		if len(action.Sources) == 0 {
			logIntercept.Debug("no .java sources in javac-like invocation, skipping", "program", progPath)
			return nil
		}
		return action
	}

	res := scanArguments(cfg, progPath, args, cwd, lang)
	action := res.action

	// environment-driven include paths, in this exact order: the built-in
	// default dirs land first at the system anchor, CPATH at the include
	// anchor, and the language-specific list after the default dirs
	inj := makeArgInjector(res)
	if cfg.AppendDefaultDirs {
		inj.addDirs(defaultIncludeDirs(progPath, res.lang, cwd), "-isystem", anchorSysInclude)
	}
	if cfg.CPath.IsSet {
		inj.addEnvPaths(cfg.CPath.Value, "-I", anchorInclude)
	}
	if langPaths := languageIncludePath(cfg, res.lang); langPaths.IsSet {
		inj.addEnvPaths(langPaths.Value, "-isystem", anchorSysInclude)
	}
	action.Arguments = inj.materialize(action.Arguments)

	if cfg.AbsolutePaths {
		absolutizeFlagPaths(action.Arguments, cwd)
	}

	// the -o target is a build byproduct, never a compiled input
	if action.Output != "" {
		action.RemoveSource(action.Output)
	}

	if !cfg.KeepLinkActions {
		removeObjectSources(action)
	}

	if len(action.Sources) == 0 {
		if rsp := findResponseFile(action.Arguments); rsp != "" {
			// can't see through the response file, log it as the sole source
			action.Sources = []string{rsp}
			return action
		}
		logIntercept.Warn("no source files recognized, skipping invocation", "program", progPath, "args", strings.Join(args, " "))
		return nil
	}

	return action
}

func languageIncludePath(cfg *Configuration, lang Language) envValue {
	if lang == LangC {
		return cfg.CIncludePath
	}
	return cfg.CplusIncludePath
}

func removeObjectSources(action *compdb.BuildAction) {
	kept := action.Sources[:0]
	for _, src := range action.Sources {
		if !isObjectToken(src) {
			kept = append(kept, src)
		}
	}
	action.Sources = kept
}

func findResponseFile(args []string) string {
	for _, arg := range args[1:] {
		if strings.HasPrefix(arg, "@") {
			return arg
		}
	}
	return ""
}
