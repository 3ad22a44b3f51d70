//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binName = "basalt"
	binPath = "bin/" + binName
	mainPkg = "./cmd/" + binName
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"bc":  Bench.Corpus,
	"fz":  Test.Fuzz,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// releasePlatforms are the GOOS/GOARCH pairs CI.Cross builds.
var releasePlatforms = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "windows/arm64",
	"freebsd/amd64",
}

// Build compiles bin/basalt when its sources changed.
func Build() error {
	rebuild, err := target.Dir(binPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binPath, "is up to date")
		return nil
	}
	fmt.Println("Building", binPath)
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binPath, mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes the binary and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall removes the binary go install placed.
func Uninstall() error {
	installed, err := installPath()
	if err != nil {
		return err
	}
	switch err := os.Remove(installed); {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println(binName, "is not installed")
	case err != nil:
		return fmt.Errorf("remove %s: %w", installed, err)
	default:
		fmt.Println("Removed", installed)
	}
	return nil
}

// Coverage writes coverage.html from a full test run.
func Coverage() error {
	st.Deps(Test.Default)
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	fmt.Println("Wrote coverage.html")
	return nil
}

// Default runs the race-enabled suite through gotestsum.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose is Default with every test name printed.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Fuzz fuzzes the lexer for BASALT_FUZZTIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("BASALT_FUZZTIME"), "30s")
	return sh.RunV("go", "test", "-run=^$", "-fuzz=^FuzzLex$", "-fuzztime", fuzzTime,
		"./pkg/parser/goldmark")
}

// Default runs golangci-lint with --fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without touching files.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt rewrites Go files with gofmt.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files (run stave lint:fmt):\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs everything CI checks, cheapest first.
func (CI) Gate() {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("✓ CI gate passed")
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before, err := readAll(files)
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readAll(files)
	if err != nil {
		return err
	}
	for i, name := range files {
		if !bytes.Equal(before[i], after[i]) {
			return fmt.Errorf("%s is not tidy, commit the go mod tidy result", name)
		}
	}
	return nil
}

// Cross builds basalt for every release platform.
func (CI) Cross() error {
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Println("  building", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs the lexer, builder and language detection benchmarks.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem",
		"./pkg/parser/goldmark", "./pkg/markdown", "./pkg/langdetect")
}

// Corpus times "basalt stats" over BASALT_BENCH_DIR (default: this
// repository).
func (Bench) Corpus() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("BASALT_BENCH_DIR"), ".")
	jobs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "0")

	start := time.Now()
	if err := sh.RunV(binPath, "stats", "--jobs", jobs, dir); err != nil {
		return fmt.Errorf("stats %s: %w", dir, err)
	}
	fmt.Printf("✓ %s parsed in %s\n", dir, time.Since(start).Round(time.Millisecond))
	return nil
}

func gotestsum(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum", "-f", format, "--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...")
}

func readAll(paths []string) ([][]byte, error) {
	out := make([][]byte, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		out[i] = data
	}
	return out, nil
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags stamps main.version, main.commit and main.date.
func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339))
}

// installPath is where go install puts the binary: $GOBIN, else
// $GOPATH/bin, else ~/go/bin.
func installPath() (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, binName), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", binName), nil
}
