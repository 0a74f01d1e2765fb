package intercept

import "strings"

// insertAnchor names the scan cursor a pending insertion binds to.
// Anchors are logical, not raw indices: all insertions are resolved into
// concrete positions in one materialization pass, so no "shift later cursors
// by N" bookkeeping exists anywhere.
type insertAnchor int

const (
	anchorInclude insertAnchor = iota
	anchorSysInclude
)

type pendingInsertion struct {
	anchor insertAnchor
	tokens []string
}

// argInjector splices environment-driven path arguments into the reconstructed
// command line at grammar-correct positions. Insertions submitted earlier land
// earlier when they share an anchor position, which gives exactly the required
// ordering: built-in default dirs, then CPATH, then the language include path.
type argInjector struct {
	includePos    int
	sysIncludePos int
	pending       []pendingInsertion
}

func makeArgInjector(res *scanResult) *argInjector {
	return &argInjector{
		includePos:    res.includeCursor,
		sysIncludePos: res.sysIncludeCursor,
	}
}

// addEnvPaths queues one "{flag} {path}" pair per segment of a colon-separated
// path list. An empty segment means the current directory, per the usual
// semantics of CPATH-style variables. An empty flag queues bare paths.
func (inj *argInjector) addEnvPaths(pathList string, flag string, anchor insertAnchor) {
	dirs := strings.Split(pathList, ":")
	for i, dir := range dirs {
		if dir == "" {
			dirs[i] = "."
		}
	}
	inj.addDirs(dirs, flag, anchor)
}

func (inj *argInjector) addDirs(dirs []string, flag string, anchor insertAnchor) {
	if len(dirs) == 0 {
		return
	}
	tokens := make([]string, 0, 2*len(dirs))
	for _, dir := range dirs {
		if flag != "" {
			tokens = append(tokens, flag)
		}
		tokens = append(tokens, dir)
	}
	inj.pending = append(inj.pending, pendingInsertion{anchor: anchor, tokens: tokens})
}

// materialize resolves all pending insertions against args in one pass and
// returns the spliced argument vector. args itself is left untouched.
func (inj *argInjector) materialize(args []string) []string {
	if len(inj.pending) == 0 {
		return args
	}

	total := len(args)
	for _, p := range inj.pending {
		total += len(p.tokens)
	}

	out := make([]string, 0, total)
	for i := 0; i <= len(args); i++ {
		for _, p := range inj.pending {
			if inj.anchorPos(p.anchor) == i {
				out = append(out, p.tokens...)
			}
		}
		if i < len(args) {
			out = append(out, args[i])
		}
	}
	return out
}

func (inj *argInjector) anchorPos(anchor insertAnchor) int {
	if anchor == anchorSysInclude {
		return inj.sysIncludePos
	}
	return inj.includePos
}
