// Package langdetect guesses the language of code blocks that carry no
// fence info string.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/basalt/pkg/mdast"
)

// Unknown is reported when no language can be determined.
const Unknown = "text"

// candidates limits the classifier to languages commonly found in notes.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// rule recognises a language from a snippet that is already trimmed.
type rule struct {
	lang  string
	match func(code []byte) bool
}

var (
	sqlStatement = regexp.MustCompile(`(?i)^(select|insert|update|delete|create|alter|drop)\s`)
	yamlKey      = regexp.MustCompile(`^[A-Za-z_][\w.-]*:(\s|$)`)
)

// rules run in order; the first match wins.
var rules = []rule{
	{"go", func(code []byte) bool {
		return bytes.HasPrefix(code, []byte("package "))
	}},
	{"python", func(code []byte) bool {
		s := string(code)
		return (strings.Contains(s, "def ") && strings.Contains(s, "):")) ||
			strings.Contains(s, "__name__") ||
			strings.HasPrefix(s, "import ") && !strings.Contains(s, "import (") ||
			strings.HasPrefix(s, "from ") && strings.Contains(s, " import ")
	}},
	{"html", func(code []byte) bool {
		lower := bytes.ToLower(code)
		for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(tag)) {
				return true
			}
		}
		return false
	}},
	{"json", func(code []byte) bool {
		return len(code) > 0 && (code[0] == '{' || code[0] == '[') && bytes.ContainsRune(code, '"')
	}},
	{"dockerfile", func(code []byte) bool {
		return bytes.HasPrefix(code, []byte("FROM ")) ||
			bytes.Contains(code, []byte("WORKDIR ")) && bytes.Contains(code, []byte("COPY "))
	}},
	{"sql", func(code []byte) bool {
		return sqlStatement.Match(code)
	}},
	{"rust", func(code []byte) bool {
		s := string(code)
		return strings.Contains(s, "fn main()") || strings.Contains(s, "println!") || strings.Contains(s, "let mut ")
	}},
	{"javascript", func(code []byte) bool {
		s := string(code)
		return strings.Contains(s, "=>") || strings.Contains(s, "console.log") ||
			strings.Contains(s, "const ") || strings.Contains(s, "let ")
	}},
	{"yaml", isYAML},
}

// Detect returns a lowercase fence tag for content: the shebang
// interpreter if there is one, otherwise the first matching rule, otherwise
// a confident classifier guess. It returns Unknown when nothing fits.
func Detect(content []byte) string {
	code := bytes.TrimSpace(content)
	if len(code) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return fenceTag(lang)
	}

	for _, r := range rules {
		if r.match(code) {
			return r.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, candidates); safe && lang != "" {
		return fenceTag(lang)
	}
	return Unknown
}

// Language returns the fence language of block, or a detected one when
// the fence has none.
func Language(block *mdast.CodeBlock) string {
	if block.Lang != "" {
		return strings.ToLower(block.Lang)
	}
	return Detect([]byte(block.Text.String()))
}

// Languages tallies the languages of every code block in nodes.
func Languages(nodes []mdast.Node) map[string]int {
	counts := make(map[string]int)
	for _, n := range mdast.FindByKind(nodes, mdast.NodeCodeBlock) {
		if block, ok := n.MarkdownNode.(*mdast.CodeBlock); ok {
			counts[Language(block)]++
		}
	}
	return counts
}

// isYAML needs at least two mapping keys or sequence entries.
func isYAML(code []byte) bool {
	hits := 0
	for _, line := range bytes.Split(code, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0, line[0] == '#':
			continue
		case bytes.HasPrefix(line, []byte("- ")), yamlKey.Match(line):
			hits++
		}
	}
	return hits >= 2
}

// fenceTag converts a linguist language name to the tag used on fences.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
