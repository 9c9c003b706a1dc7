// Package paths provides safe resolution and parsing of the slash-separated
// relative paths used by the file explorer. All externally supplied path
// strings pass through here before touching the filesystem or the database.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/logger"
)

var (
	driveLetterPattern  = regexp.MustCompile(`^[a-zA-Z]:`)
	invalidCharsPattern = regexp.MustCompile(`[<>:"|?*\x00-\x1F]`)
	repeatedSlashes     = regexp.MustCompile(`/{2,}`)
)

// Resolver validates externally supplied relative paths and resolves them
// against a single uploads root, rejecting anything that escapes it.
type Resolver struct {
	root string
}

// NewResolver creates a Resolver rooted at the given uploads directory.
// The root is made absolute and cleaned once, up front.
func NewResolver(uploadsRoot string) (*Resolver, error) {
	abs, err := filepath.Abs(uploadsRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve uploads root %s: %w", uploadsRoot, err)
	}
	abs = filepath.Clean(abs)
	logger.Info().Str("root", abs).Msg("Path resolver initialized")
	return &Resolver{root: abs}, nil
}

// Root returns the absolute uploads root.
func (r *Resolver) Root() string {
	return r.root
}

// Normalize trims whitespace, converts backslashes to forward slashes,
// collapses repeated slashes and strips leading/trailing slashes.
// The empty string denotes the uploads root itself.
func Normalize(path string) string {
	if path == "" {
		return ""
	}
	n := strings.TrimSpace(path)
	n = strings.ReplaceAll(n, "\\", "/")
	n = repeatedSlashes.ReplaceAllString(n, "/")
	n = strings.Trim(n, "/")
	return n
}

// ValidateSyntax checks a raw path for traversal attempts and characters that
// are never legal in explorer paths. The root path ("" or "/") is valid.
func ValidateSyntax(path string) error {
	if path == "" || path == "/" {
		return nil
	}
	if driveLetterPattern.MatchString(path) {
		return apperrors.NewInvalidPathError("absolute paths with drive letters are not allowed")
	}
	if invalidCharsPattern.MatchString(path) {
		return apperrors.NewInvalidPathError("path contains invalid characters")
	}
	for _, segment := range strings.Split(Normalize(path), "/") {
		if segment == ".." || segment == "." {
			return apperrors.NewInvalidPathError("path traversal is not allowed")
		}
	}
	return nil
}

// Resolve validates a relative path and resolves it to an absolute path.
// The result is guaranteed to stay under the uploads root.
func (r *Resolver) Resolve(relativePath string) (string, error) {
	if err := ValidateSyntax(relativePath); err != nil {
		return "", err
	}

	normalized := Normalize(relativePath)
	resolved := filepath.Clean(filepath.Join(r.root, filepath.FromSlash(normalized)))

	if !r.isUnderRoot(resolved) {
		logger.Warn().Str("path", relativePath).Str("resolved", resolved).Msg("Path traversal attempt detected")
		return "", apperrors.NewInvalidPathError("access outside the uploads directory is not allowed")
	}

	return resolved, nil
}

// ResolveExisting resolves a relative path and verifies that it exists on disk.
func (r *Resolver) ResolveExisting(relativePath string) (string, error) {
	resolved, err := r.Resolve(relativePath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(resolved); err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewInvalidPathError("path does not exist: " + Normalize(relativePath))
		}
		return "", fmt.Errorf("failed to stat %s: %w", relativePath, err)
	}
	return resolved, nil
}

// ResolveExistingDir resolves a relative path and verifies it is a directory.
func (r *Resolver) ResolveExistingDir(relativePath string) (string, error) {
	resolved, err := r.ResolveExisting(relativePath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", relativePath, err)
	}
	if !info.IsDir() {
		return "", apperrors.NewInvalidPathError("path is not a directory: " + Normalize(relativePath))
	}
	return resolved, nil
}

// ToRelative converts an absolute path under the uploads root back to the
// slash-separated relative form used in explorer paths.
func (r *Resolver) ToRelative(absolutePath string) (string, error) {
	cleaned := filepath.Clean(absolutePath)
	if !r.isUnderRoot(cleaned) {
		return "", apperrors.NewInvalidPathError("path is not under the uploads root")
	}
	rel, err := filepath.Rel(r.root, cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", absolutePath, err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// EnsureDir resolves a relative path and creates the directory (including
// parents) if it does not exist yet.
func (r *Resolver) EnsureDir(relativePath string) (string, error) {
	resolved, err := r.Resolve(relativePath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	switch {
	case err == nil && !info.IsDir():
		return "", apperrors.NewInvalidPathError("path exists but is not a directory: " + Normalize(relativePath))
	case err == nil:
		return resolved, nil
	case !os.IsNotExist(err):
		return "", fmt.Errorf("failed to stat %s: %w", relativePath, err)
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create directory %s", apperrors.ErrFileStorage, Normalize(relativePath))
	}
	return resolved, nil
}

func (r *Resolver) isUnderRoot(absolutePath string) bool {
	if absolutePath == r.root {
		return true
	}
	return strings.HasPrefix(absolutePath, r.root+string(os.PathSeparator))
}

// ParentPath returns the parent of a normalized path, or "" at the root.
func ParentPath(path string) string {
	n := Normalize(path)
	idx := strings.LastIndex(n, "/")
	if idx <= 0 {
		return ""
	}
	return n[:idx]
}

// BaseName returns the last segment of a normalized path.
func BaseName(path string) string {
	n := Normalize(path)
	idx := strings.LastIndex(n, "/")
	if idx < 0 {
		return n
	}
	return n[idx+1:]
}
