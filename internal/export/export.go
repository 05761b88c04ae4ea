package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/shuffle/internal/entry"
	"github.com/gorewood/shuffle/internal/format"
	"github.com/gorewood/shuffle/internal/output"
	"github.com/gorewood/shuffle/internal/transform"
)

// RequestFunc builds the transform request for one entry.
type RequestFunc func(e *entry.Entry) transform.Request

// Filename returns the export file name for an entry in the given format.
func Filename(e *entry.Entry, kind format.Kind) string {
	return e.ID + format.Extension(kind)
}

// Path returns the export path for e inside dir. It fails when the entry ID
// would place the file outside dir.
func Path(dir string, e *entry.Entry, kind format.Kind) (string, error) {
	if !entry.ValidID(e.ID) {
		return "", output.NewUserError(fmt.Sprintf("entry ID %q is not a valid file name", e.ID))
	}
	target := filepath.Join(dir, Filename(e, kind))
	rel, err := filepath.Rel(filepath.Clean(dir), target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.Dir(rel) != "." {
		return "", output.NewUserError(fmt.Sprintf("entry ID %q escapes the output directory", e.ID))
	}
	return target, nil
}

// Render transforms a single entry using base for everything but the text
// and the entry's own display preferences.
func Render(e *entry.Entry, base transform.Request) string {
	return transform.Transform(transform.FromEntry(e, base))
}

// WriteFiles writes each entry, transformed, as a separate file in dir.
// It returns the paths written, in entry order.
func WriteFiles(entries []*entry.Entry, dir string, base transform.Request) ([]string, error) {
	return WriteFilesFunc(entries, dir, base.Format, func(e *entry.Entry) transform.Request {
		return transform.FromEntry(e, base)
	})
}

// WriteFilesFunc is WriteFiles with a caller-built request per entry.
// Files are named for kind regardless of the request format.
func WriteFilesFunc(entries []*entry.Entry, dir string, kind format.Kind, build RequestFunc) ([]string, error) {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		filename, err := Path(dir, e, kind)
		if err != nil {
			return paths, err
		}

		content := transform.Transform(build(e))

		if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
			return paths, output.NewSystemErrorWithCause(fmt.Sprintf("failed to write file %s: %v", filename, err), err)
		}
		paths = append(paths, filename)
	}

	return paths, nil
}
