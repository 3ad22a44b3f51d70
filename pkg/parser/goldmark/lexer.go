// Package goldmark lexes Markdown into the flat event stream consumed by
// the tree builder, using goldmark for block and inline parsing.
package goldmark

import (
	"context"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/basalt/pkg/event"
	"github.com/yaklabco/basalt/pkg/frontmatter"
)

// Flavor identifies the Markdown flavor supported by the lexer.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Lexer produces events for Markdown source. A Lexer is safe for
// concurrent use.
type Lexer struct {
	flavor      string
	callouts    bool
	frontMatter bool
	md          goldmark.Markdown
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithFlavor selects "commonmark" or "gfm". Invalid flavors fall back to
// "gfm".
func WithFlavor(flavor string) Option {
	return func(l *Lexer) {
		l.flavor = flavorOrDefault(flavor)
	}
}

// WithCallouts toggles recognition of `[!NOTE]` style callout quotes.
func WithCallouts(enabled bool) Option {
	return func(l *Lexer) {
		l.callouts = enabled
	}
}

// WithFrontMatter toggles emission of a leading YAML block as metadata.
func WithFrontMatter(enabled bool) Option {
	return func(l *Lexer) {
		l.frontMatter = enabled
	}
}

// New creates a lexer. By default it lexes GFM with callouts and front
// matter enabled.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		flavor:      FlavorGFM,
		callouts:    true,
		frontMatter: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.md = newGoldmarkInstance(l.flavor)
	return l
}

// Flavor returns the configured Markdown flavor.
func (l *Lexer) Flavor() string {
	return l.flavor
}

// Events lexes source, honoring cancellation before and after the parse.
func (l *Lexer) Events(ctx context.Context, source []byte) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lex cancelled: %w", err)
	}

	events := l.Lex(source)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lex cancelled: %w", err)
	}
	return events, nil
}

// Lex returns the event stream for source with consecutive text merged.
// It never fails: anything goldmark accepts yields some stream.
func (l *Lexer) Lex(source []byte) []event.Event {
	var events []event.Event

	body, base := source, 0
	if l.frontMatter {
		if block, ok := frontmatter.Split(source); ok {
			tag := event.Simple(event.TagMetadataBlock)
			events = append(events,
				event.Start(tag, block.Range),
				event.Text(string(block.Raw), block.Content),
				event.End(tag, block.Range),
			)
			body, base = source[block.BodyOffset():], block.BodyOffset()
		}
	}

	reader := text.NewReader(body)
	doc := l.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	e := newEmitter(body, base, l.callouts)
	e.document(doc)

	return event.MergeText(append(events, e.events...))
}

var defaultLexer = sync.OnceValue(func() *Lexer { return New() })

// Lex lexes source with the default lexer.
func Lex(source []byte) []event.Event {
	return defaultLexer().Lex(source)
}

// flavorOrDefault returns the flavor if valid, otherwise GFM.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
