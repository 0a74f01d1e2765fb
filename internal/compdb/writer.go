package compdb

import (
	"encoding/json"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"cclog/internal/common"
)

// Writer appends entries to a compilation database shared between many
// concurrently running wrapper processes (think `make -j`).
// Every merge takes an exclusive flock on the database file, re-reads it,
// splices in the unseen entries and rewrites it in place, so arrival order
// across invocations is deliberately unordered.
type Writer struct {
	fileName string
}

func MakeWriter(fileName string) *Writer {
	return &Writer{fileName: fileName}
}

func (w *Writer) FileName() string {
	return w.fileName
}

// Merge adds the given entries to the database, skipping ones already present.
// A missing or empty database file is treated as an empty array; an
// unparseable one is overwritten (a crashed writer must not poison every
// later compile step of the build).
func (w *Writer) Merge(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	if err := common.MkdirForFile(w.fileName); err != nil {
		return err
	}
	f, err := os.OpenFile(w.fileName, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return err
	}
	defer func() {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
	}()

	existing, err := readEntries(f)
	if err != nil {
		return err
	}

	merged, added := MergeEntries(existing, entries)
	if added == 0 {
		return nil
	}

	return rewriteEntries(f, merged)
}

// MergeEntries appends the unseen part of add to existing and reports how many
// entries were actually new. Merging the same entries twice changes nothing.
func MergeEntries(existing []Entry, add []Entry) ([]Entry, int) {
	seen := make(map[string]struct{}, len(existing)+len(add))
	for _, e := range existing {
		seen[e.key()] = struct{}{}
	}

	added := 0
	for _, e := range add {
		if _, dup := seen[e.key()]; dup {
			continue
		}
		seen[e.key()] = struct{}{}
		existing = append(existing, e)
		added++
	}
	return existing, added
}

func readEntries(f *os.File) ([]Entry, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if len(data) == 0 || json.Unmarshal(data, &entries) != nil {
		return nil, nil
	}
	return entries, nil
}

func rewriteEntries(f *os.File, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}
