package cmd

import (
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// expandFiles resolves each argument as a doublestar glob pattern rooted
// at the current directory, in order, de-duplicating matches. Any pattern
// that matches no file (with or without glob metacharacters) is passed
// through unchanged, so the caller's os.ReadFile produces the usual
// not-found error at the I/O boundary.
func expandFiles(patterns []string) ([]string, error) {
	fsys := os.DirFS(".")
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, "expanding glob %q", pattern)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}
