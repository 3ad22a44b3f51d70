package vault_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/basalt/pkg/fsutil"
	"github.com/yaklabco/basalt/pkg/vault"
)

func writeRegistry(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, vault.ConfigFile), []byte(body), 0o600))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRegistry(t, dir, `{
		"vaults": {
			"a1": {"path": "/notes/Work", "ts": 100},
			"b2": {"path": "/notes/Personal/", "ts": 300, "open": true},
			"c3": {"path": "/notes/Archive", "ts": 200, "open": true},
			"d4": {"path": "", "ts": 1}
		}
	}`)

	cfg, err := vault.Load(context.Background(), dir)
	require.NoError(t, err)

	vaults := cfg.Vaults()
	require.Len(t, vaults, 3)
	assert.Equal(t, []string{"Archive", "Personal", "Work"},
		[]string{vaults[0].Name, vaults[1].Name, vaults[2].Name})

	work, err := cfg.Vault("Work")
	require.NoError(t, err)
	assert.Equal(t, vault.Vault{ID: "a1", Name: "Work", Path: "/notes/Work", Opened: 100}, work)

	_, err = cfg.Vault("Missing")
	require.ErrorIs(t, err, vault.ErrVaultNotFound)

	open, ok := cfg.OpenVault()
	require.True(t, ok)
	assert.Equal(t, "Personal", open.Name)
}

func TestLoad_SameBaseName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRegistry(t, dir, `{
		"vaults": {
			"f9": {"path": "/home/me/Notes"},
			"0c": {"path": "/work/Notes"},
			"7a": {"path": "/tmp/Notes"}
		}
	}`)

	for range 20 {
		cfg, err := vault.Load(context.Background(), dir)
		require.NoError(t, err)

		notes, err := cfg.Vault("Notes")
		require.NoError(t, err)
		assert.Equal(t, "/work/Notes", notes.Path)

		var names []string
		for _, v := range cfg.Vaults() {
			names = append(names, v.Name)
		}
		assert.Equal(t, []string{"Notes", "Notes-7a", "Notes-f9"}, names)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := vault.Load(context.Background(), t.TempDir())
	require.Error(t, err)

	dir := t.TempDir()
	writeRegistry(t, dir, `{"vaults": [`)
	_, err = vault.Load(context.Background(), dir)
	require.Error(t, err)
}

func TestConfig_OpenVaultNone(t *testing.T) {
	t.Parallel()

	cfg := vault.NewConfig(vault.Vault{Name: "A"}, vault.Vault{Name: "B"})
	_, ok := cfg.OpenVault()
	assert.False(t, ok)
}

func newVault(t *testing.T) vault.Vault {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"Beta.md":             "# Beta\n",
		"alpha.md":            "# Alpha\n",
		"image.png":           "png",
		"Projects/Gamma.md":   "# Gamma\n",
		"Projects/notes.txt":  "skip",
		".obsidian/config.md": "hidden",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}

	return vault.Vault{Name: filepath.Base(dir), Path: dir}
}

func TestVault_Notes(t *testing.T) {
	t.Parallel()

	v := newVault(t)

	notes, err := v.Notes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 2)

	vault.SortNotes(notes, vault.SortByName)
	assert.Equal(t, "alpha", notes[0].Name)
	assert.Equal(t, "Beta", notes[1].Name)
	assert.Equal(t, filepath.Join(v.Path, "alpha.md"), notes[0].Path)
}

func TestVault_NotesMissingDir(t *testing.T) {
	t.Parallel()

	v := vault.Vault{Name: "gone", Path: filepath.Join(t.TempDir(), "gone")}
	_, err := v.Notes(context.Background())
	require.Error(t, err)
}

func TestSortNotes_Modified(t *testing.T) {
	t.Parallel()

	now := time.Now()
	notes := []vault.Note{
		{Name: "old", Path: "/v/old.md", Modified: now.Add(-time.Hour)},
		{Name: "new", Path: "/v/new.md", Modified: now},
		{Name: "mid", Path: "/v/mid.md", Modified: now.Add(-time.Minute)},
	}

	vault.SortNotes(notes, vault.SortByModified)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{notes[0].Name, notes[1].Name, notes[2].Name})
}

func TestParseSortBy(t *testing.T) {
	t.Parallel()

	by, err := vault.ParseSortBy("modified")
	require.NoError(t, err)
	assert.Equal(t, vault.SortByModified, by)

	by, err = vault.ParseSortBy("")
	require.NoError(t, err)
	assert.Equal(t, vault.SortByName, by)

	_, err = vault.ParseSortBy("size")
	require.Error(t, err)
}

func TestVault_Tree(t *testing.T) {
	t.Parallel()

	v := newVault(t)

	tree, err := v.Tree(context.Background())
	require.NoError(t, err)

	var names []string
	for _, e := range tree {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"Beta", "alpha", "Projects"}, names)

	gamma := filepath.Join(v.Path, "Projects", "Gamma.md")
	note, ok := vault.FindNote(tree, gamma)
	require.True(t, ok)
	assert.Equal(t, "Gamma", note.Name)

	_, ok = vault.FindNote(tree, filepath.Join(v.Path, "Projects", "notes.txt"))
	assert.False(t, ok)
}

func TestNote_ReadWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	v := newVault(t)
	note := vault.Note{Name: "alpha", Path: filepath.Join(v.Path, "alpha.md")}

	content, stamp, err := note.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "# Alpha\n", string(content))

	next, err := note.Write(ctx, stamp, []byte("# Alpha\n\nedited\n"))
	require.NoError(t, err)

	_, err = note.Write(ctx, stamp, []byte("stale write"))
	require.ErrorIs(t, err, fsutil.ErrConflict)

	_, err = note.Write(ctx, next, []byte("# Alpha\n\nagain\n"))
	require.NoError(t, err)
}
