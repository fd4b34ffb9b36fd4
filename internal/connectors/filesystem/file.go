package filesystem

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// extensionTypes covers upload formats the platform MIME table may not know.
var extensionTypes = map[string]string{
	".txt":  domain.MIMEPlainText,
	".text": domain.MIMEPlainText,
	".docx": domain.MIMEWordProcessor,
	".pdf":  domain.MIMEPaginated,
}

// LoadFile reads a local file into an upload.
func LoadFile(path string) (domain.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.File{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.File{}, fmt.Errorf("%s is a directory: %w", path, domain.ErrInvalidInput)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.File{}, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	return domain.File{
		Name:     name,
		MIMEType: detectMIMEType(name),
		Content:  content,
	}, nil
}

// detectMIMEType returns the content type for a file name without parameters.
func detectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType
}

// isHidden reports whether any element of the path starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
