package edit

import (
	"fmt"
	"path/filepath"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Diff returns a unified diff from before to after with a/ and b/ headers
// for path, or "" when the two are equal.
func Diff(path string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}

	name := filepath.ToSlash(path)
	edits := myers.ComputeEdits(span.URIFromPath(name), string(before), string(after))
	return fmt.Sprint(gotextdiff.ToUnified("a/"+name, "b/"+name, string(before), edits))
}
