package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/pkg/fsutil"
)

// NoteExt is the extension of note files.
const NoteExt = ".md"

// Vault is a directory of notes registered with Obsidian.
type Vault struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	Open   bool   `json:"open" yaml:"open"`
	Opened int64  `json:"ts" yaml:"ts"`
}

// Note is a Markdown file in a vault.
type Note struct {
	Name     string    `json:"name" yaml:"name"`
	Path     string    `json:"path" yaml:"path"`
	Modified time.Time `json:"modified" yaml:"modified"`
}

// Notes lists the notes directly inside the vault directory. Entries that
// cannot be inspected are skipped.
func (v Vault) Notes(ctx context.Context) ([]Note, error) {
	entries, err := os.ReadDir(v.Path)
	if err != nil {
		return nil, fmt.Errorf("list vault %s: %w", v.Name, err)
	}

	var notes []Note
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("list vault %s: %w", v.Name, err)
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != NoteExt {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logging.FromContext(ctx).Debug("skipping note", logging.FieldPath, entry.Name(), logging.FieldError, err)
			continue
		}
		notes = append(notes, Note{
			Name:     strings.TrimSuffix(entry.Name(), NoteExt),
			Path:     filepath.Join(v.Path, entry.Name()),
			Modified: info.ModTime(),
		})
	}
	return notes, nil
}

// SortBy orders notes.
type SortBy int

const (
	// SortByName orders notes alphabetically, case-insensitively.
	SortByName SortBy = iota
	// SortByModified orders notes newest first.
	SortByModified
)

// ParseSortBy accepts "name" and "modified".
func ParseSortBy(s string) (SortBy, error) {
	switch strings.ToLower(s) {
	case "", "name":
		return SortByName, nil
	case "modified", "time":
		return SortByModified, nil
	default:
		return SortByName, fmt.Errorf("unknown sort order %q", s)
	}
}

// SortNotes orders notes in place. Ties fall back to the path.
func SortNotes(notes []Note, by SortBy) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		switch by {
		case SortByModified:
			if !a.Modified.Equal(b.Modified) {
				return a.Modified.After(b.Modified)
			}
		default:
			if la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name); la != lb {
				return la < lb
			}
		}
		return a.Path < b.Path
	})
}

// Read returns the note content with a stamp for a later Write.
func (n Note) Read(ctx context.Context) ([]byte, fsutil.Stamp, error) {
	return fsutil.Read(ctx, n.Path)
}

// Write replaces the note content if it has not changed since stamp was
// taken, and returns the new stamp.
func (n Note) Write(ctx context.Context, stamp fsutil.Stamp, content []byte) (fsutil.Stamp, error) {
	next, err := fsutil.Replace(ctx, stamp, content)
	if err != nil {
		return fsutil.Stamp{}, fmt.Errorf("save note %s: %w", n.Name, err)
	}
	logging.FromContext(ctx).Debug("saved note", logging.FieldPath, n.Path, logging.FieldBytes, len(content))
	return next, nil
}
