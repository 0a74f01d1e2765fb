package compdb

// BuildAction is the normalized record of one logged compiler invocation.
// It is created once per qualifying invocation, mutated only while that
// invocation is being processed, and becomes effectively immutable once it
// reaches a writer. Actions are never shared between invocations.
type BuildAction struct {
	// Arguments is the full reconstructed command line, logged compiler path first.
	Arguments []string

	// Sources are the compilable inputs, insertion-ordered, duplicates suppressed.
	// Deduplication is by exact string identity after normalization, not by
	// filesystem identity.
	Sources []string

	// Output is the -o target if one was given. It is used only to exclude
	// self-references from Sources and is never emitted on its own.
	Output string
}

// AddSource appends path to Sources unless an identical string is already there.
func (action *BuildAction) AddSource(path string) {
	for _, src := range action.Sources {
		if src == path {
			return
		}
	}
	action.Sources = append(action.Sources, path)
}

// RemoveSource deletes every entry equal to path, keeping the order of the rest.
func (action *BuildAction) RemoveSource(path string) {
	kept := action.Sources[:0]
	for _, src := range action.Sources {
		if src != path {
			kept = append(kept, src)
		}
	}
	action.Sources = kept
}
