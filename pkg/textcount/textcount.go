// Package textcount counts the words and characters of a note.
package textcount

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// markup is removed before words are counted so that markers such as
// "##" or "**" do not count as words.
var markup = strings.NewReplacer(
	"*", "", "_", "", "`", "", "<", "", ">", "", "?", "", "!", "",
	"[", "", "]", "", "(", "", ")", "", "=", "", "~", "", "#", "", "+", "",
)

// Counts holds the word and character totals of a text.
type Counts struct {
	Words int `json:"words" yaml:"words"`
	Chars int `json:"chars" yaml:"chars"`
}

// Words returns the number of whitespace-separated words once Markdown
// markup characters are removed.
func Words(text string) int {
	return len(strings.Fields(markup.Replace(text)))
}

// Chars returns the number of characters in text. Every character counts,
// whitespace included. Text is normalized to NFC first so a base letter
// and its combining mark count once.
func Chars(text string) int {
	return utf8.RuneCountInString(norm.NFC.String(text))
}

// Count returns both totals.
func Count(text string) Counts {
	return Counts{Words: Words(text), Chars: Chars(text)}
}
