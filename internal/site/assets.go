package site

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

//go:embed static/style.css static/script.js
var staticFS embed.FS

// writeStatic copies the embedded stylesheet and client script into out.
func writeStatic(out string) error {
	for _, name := range []string{"style.css", "script.js"} {
		data, err := staticFS.ReadFile("static/" + name)
		if err != nil {
			return fmt.Errorf("reading embedded %s: %w", name, err)
		}
		if err := writeFile(filepath.Join(out, name), data); err != nil {
			return err
		}
	}
	return nil
}

// CopyAssets copies every file under baseDir matching one of the
// doublestar patterns into out, keeping relative paths. Files inside out
// are skipped so rebuilding in place does not copy outputs onto themselves.
func CopyAssets(ctx context.Context, baseDir, out string, patterns []string) (int, error) {
	fsys := os.DirFS(baseDir)
	absOut, _ := filepath.Abs(out)

	copied := make(map[string]bool)
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return len(copied), fmt.Errorf("invalid asset pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return len(copied), fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if err := ctx.Err(); err != nil {
				return len(copied), err
			}
			if copied[rel] {
				continue
			}
			src := filepath.Join(baseDir, filepath.FromSlash(rel))
			if absSrc, _ := filepath.Abs(src); isWithin(absSrc, absOut) {
				continue
			}
			data, err := fs.ReadFile(fsys, rel)
			if err != nil {
				return len(copied), err
			}
			if err := writeFile(filepath.Join(out, filepath.FromSlash(rel)), data); err != nil {
				return len(copied), err
			}
			copied[rel] = true
		}
	}
	return len(copied), nil
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !filepath.IsAbs(rel) && (len(rel) < 3 || rel[:3] != ".."+string(filepath.Separator))
}
