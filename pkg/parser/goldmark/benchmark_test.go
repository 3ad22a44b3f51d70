package goldmark_test

import (
	"strings"
	"testing"

	goldmarklexer "github.com/yaklabco/basalt/pkg/parser/goldmark"
)

func BenchmarkLex(b *testing.B) {
	source := []byte(strings.Repeat(
		"---\ntitle: x\n---\n\n# Heading\n\n> [!NOTE]\n> body\n\n- [ ] task\n  - nested\n\n"+
			"```sh\necho hi\n```\n\nText with **strong** and <br> html.\n", 100))

	flavors := []string{goldmarklexer.FlavorGFM, goldmarklexer.FlavorCommonMark}
	for _, flavor := range flavors {
		lexer := goldmarklexer.New(goldmarklexer.WithFlavor(flavor))
		b.Run(flavor, func(b *testing.B) {
			b.SetBytes(int64(len(source)))
			b.ReportAllocs()
			for range b.N {
				lexer.Lex(source)
			}
		})
	}
}
