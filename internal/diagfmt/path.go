package diagfmt

import (
	"path/filepath"

	"declc/internal/source"
)

func formatPath(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}
