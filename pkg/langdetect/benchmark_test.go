package langdetect_test

import (
	"testing"

	"github.com/yaklabco/basalt/pkg/langdetect"
	"github.com/yaklabco/basalt/pkg/mdast"
)

func BenchmarkDetect(b *testing.B) {
	samples := []struct {
		name string
		code string
	}{
		{"go", "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n"},
		{"shebang", "#!/usr/bin/env python3\nprint('hi')\n"},
		{"yaml", "name: basalt\nrender:\n  width: 80\n"},
		{"prose", "just a few words"},
		{"empty", ""},
	}

	for _, s := range samples {
		code := []byte(s.code)
		b.Run(s.name, func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				langdetect.Detect(code)
			}
		})
	}
}

func BenchmarkLanguage_FenceTag(b *testing.B) {
	block := &mdast.CodeBlock{Lang: "rust", Text: mdast.NewText("fn main() {}\n")}
	for range b.N {
		langdetect.Language(block)
	}
}
