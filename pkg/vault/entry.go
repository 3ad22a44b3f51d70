package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a node of the vault's file tree: a note or a directory.
type Entry struct {
	Name    string  `json:"name" yaml:"name"`
	Path    string  `json:"path" yaml:"path"`
	Note    *Note   `json:"note,omitempty" yaml:"note,omitempty"`
	Entries []Entry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// IsDir reports whether e is a directory.
func (e Entry) IsDir() bool {
	return e.Note == nil
}

// Tree walks the vault recursively. Hidden files and directories, such as
// .obsidian, are left out, as are files that are not notes.
func (v Vault) Tree(ctx context.Context) ([]Entry, error) {
	return readTree(ctx, v.Path)
}

func readTree(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}

	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}

	var entries []Entry
	for _, item := range items {
		if strings.HasPrefix(item.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, item.Name())

		if item.IsDir() {
			children, err := readTree(ctx, path)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Name: item.Name(), Path: path, Entries: children})
			continue
		}

		if filepath.Ext(item.Name()) != NoteExt {
			continue
		}
		info, err := item.Info()
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(item.Name(), NoteExt)
		entries = append(entries, Entry{
			Name: name,
			Path: path,
			Note: &Note{Name: name, Path: path, Modified: info.ModTime()},
		})
	}
	return entries, nil
}

// FindNote returns the note at path anywhere in entries.
func FindNote(entries []Entry, path string) (Note, bool) {
	for _, e := range entries {
		if !e.IsDir() {
			if e.Path == path {
				return *e.Note, true
			}
			continue
		}
		if strings.HasPrefix(path, e.Path+string(filepath.Separator)) {
			if note, ok := FindNote(e.Entries, path); ok {
				return note, true
			}
		}
	}
	return Note{}, false
}
