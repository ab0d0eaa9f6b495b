package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFiles writes the report's artifacts under the given root,
// creating directories as needed. It returns the number of files
// written. When only is non-nil, paths outside the set are skipped;
// watch mode passes the changed-path set here.
func (r *Report) WriteFiles(root string, only map[string]bool) (int, error) {
	written := 0
	for _, a := range r.Artifacts {
		if only != nil && !only[a.Path] {
			continue
		}
		path := filepath.Join(root, filepath.FromSlash(a.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("schemaforge: write %s: %w", a.Path, err)
		}
		if err := os.WriteFile(path, []byte(a.Content), 0o644); err != nil {
			return written, fmt.Errorf("schemaforge: write %s: %w", a.Path, err)
		}
		written++
	}
	return written, nil
}
