package pretty

import (
	"fmt"
	"strconv"
)

// Plural picks the singular or plural form of word for n.
func Plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FormatCounts renders word and character totals the way a status bar
// shows them, e.g. "12 words, 91 chars".
func (s *Styles) FormatCounts(words, chars int) string {
	return fmt.Sprintf("%s %s, %s %s",
		s.Value.Render(strconv.Itoa(words)), Plural(words, "word"),
		s.Value.Render(strconv.Itoa(chars)), Plural(chars, "char"))
}

// KeyValue renders a "key: value" line with a dimmed key.
func (s *Styles) KeyValue(key string, value any) string {
	return s.Dim.Render(key+":") + " " + s.Value.Render(fmt.Sprint(value)) + "\n"
}
