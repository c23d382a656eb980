package tasks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertthunder/cvx/internal/shared"
)

// MaxFileSize is the largest resume accepted for upload (10 MiB).
const MaxFileSize = 10 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ValidateFile checks a candidate file before any network request is made.
// Returns nil when the file is acceptable, or a validation error wrapping
// [shared.ErrUnsupportedType] or [shared.ErrFileTooLarge].
func ValidateFile(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %q (accepted: pdf, doc, docx)", shared.ErrUnsupportedType, filepath.Base(name))
	}

	if size > MaxFileSize {
		return fmt.Errorf("%w: %q is %.1f MiB (limit 10 MiB)", shared.ErrFileTooLarge, filepath.Base(name), float64(size)/(1<<20))
	}

	return nil
}
