package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover returns the absolute, sorted, de-duplicated Markdown files
// under opts.Paths. Hidden files and directories are skipped when
// walking, but a hidden file named explicitly is kept.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.file("", path) {
				add(path)
			}
			continue
		}

		found, err := m.walk(ctx, path)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

// matcher holds the compiled selection rules of a discovery run.
type matcher struct {
	workDir    string
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
	follow     bool
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	exts := make([]string, 0, len(opts.extensions()))
	for _, ext := range opts.extensions() {
		exts = append(exts, strings.ToLower(ext))
	}

	return &matcher{
		workDir:    workDir,
		extensions: exts,
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
	}, nil
}

// compileGlobs compiles patterns with '/' as separator, so `*` stays
// within a path segment and `**` crosses segments.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// rels returns path relative to the working directory and, when root is
// set and differs, relative to the walked root.
func (m *matcher) rels(root, path string) []string {
	out := make([]string, 0, 2)
	for _, base := range []string{m.workDir, root} {
		if base == "" {
			continue
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if !slices.Contains(out, rel) {
			out = append(out, rel)
		}
	}
	return out
}

// matchAny matches relative paths, or their base name, against globs.
func matchAny(globs []glob.Glob, rels ...string) bool {
	for _, rel := range rels {
		base := rel[strings.LastIndexByte(rel, '/')+1:]
		for _, g := range globs {
			if g.Match(rel) || g.Match(base) {
				return true
			}
		}
	}
	return false
}

func (m *matcher) file(root, path string) bool {
	if !slices.Contains(m.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	rels := m.rels(root, path)
	if matchAny(m.exclude, rels...) {
		return false
	}
	return len(m.include) == 0 || matchAny(m.include, rels...)
}

// skipDir reports whether a directory is excluded. A trailing slash lets
// `dir/**` exclude dir itself.
func (m *matcher) skipDir(root, path string) bool {
	rels := m.rels(root, path)
	for _, rel := range rels {
		if matchAny(m.exclude, rel, rel+"/") {
			return true
		}
	}
	return false
}

func (m *matcher) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && m.skipDir(root, path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return nil //nolint:nilerr // broken links are skipped
			}
			if info.IsDir() {
				if !m.follow || m.skipDir(root, path) {
					return nil
				}
				target, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // unresolvable links are skipped
				}
				sub, err := m.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.file(root, path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
