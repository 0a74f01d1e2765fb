package compdb

import "strings"

// Entry is one record of a JSON Compilation Database
// (https://clang.llvm.org/docs/JSONCompilationDatabase.html).
// An action with N sources expands to N entries sharing directory and command.
type Entry struct {
	Directory string `json:"directory"`
	Command   string `json:"command"`
	File      string `json:"file"`
}

// EntriesFromAction expands a build action into database entries, one per source.
func EntriesFromAction(action *BuildAction, cwd string) []Entry {
	command := JoinCommand(action.Arguments)

	entries := make([]Entry, 0, len(action.Sources))
	for _, src := range action.Sources {
		entries = append(entries, Entry{
			Directory: cwd,
			Command:   command,
			File:      src,
		})
	}
	return entries
}

// JoinCommand renders an argument vector as a single shell-compatible string.
// Tokens containing spaces or double quotes are quoted with inner quotes
// escaped, so the command survives being split again by a shell.
func JoinCommand(args []string) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if strings.ContainsAny(arg, " \t\"") {
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(arg, `"`, `\"`))
			sb.WriteByte('"')
		} else {
			sb.WriteString(arg)
		}
	}
	return sb.String()
}

func (entry *Entry) key() string {
	return entry.Directory + "\x00" + entry.File + "\x00" + entry.Command
}
