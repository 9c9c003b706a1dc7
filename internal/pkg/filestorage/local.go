package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/logger"
	"github.com/alquds/archivesystem/internal/pkg/paths"
)

// filenames are reduced to a safe character set before hitting the disk
var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._\-]`)

// LocalStorage stores files on the local filesystem, addressed by their
// explorer path. All paths are resolved through the shared paths.Resolver so
// nothing can escape the uploads root.
type LocalStorage struct {
	resolver *paths.Resolver
}

// NewLocalStorage creates a LocalStorage rooted at the resolver's uploads
// directory, creating the root if it does not exist.
func NewLocalStorage(resolver *paths.Resolver) (*LocalStorage, error) {
	if err := os.MkdirAll(resolver.Root(), 0o755); err != nil {
		logger.Error().Err(err).Str("path", resolver.Root()).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", resolver.Root(), err)
	}
	logger.Info().Str("path", resolver.Root()).Msg("Local storage directory ensured")

	return &LocalStorage{resolver: resolver}, nil
}

// SaveFile writes the uploaded file into relativeDir. The original filename
// is sanitized; when a file of that name already exists the stored name gets
// a numeric suffix ("report.pdf" -> "report(1).pdf" -> "report(2).pdf").
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, relativeDir string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, apperrors.ErrFileEmpty
	}

	dirPath, err := ls.resolver.EnsureDir(relativeDir)
	if err != nil {
		return nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	storedName, err := ls.dedupFilename(dirPath, SanitizeFilename(fileHeader.Filename))
	if err != nil {
		return nil, err
	}

	dstPath := filepath.Join(dirPath, storedName)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("%w: failed to create destination file", apperrors.ErrFileStorage)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("%w: failed to save file content", apperrors.ErrFileStorage)
	}

	relPath := paths.Join(paths.Normalize(relativeDir), storedName)
	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("saved_as", storedName).
		Str("path", relPath).
		Int64("size", written).
		Msg("File saved successfully")

	return &StoredFile{RelativePath: relPath, StoredFilename: storedName, FileSize: written}, nil
}

// Open opens a stored file for reading and returns its size.
func (ls *LocalStorage) Open(relativePath string) (io.ReadSeekCloser, int64, error) {
	resolved, err := ls.resolver.Resolve(relativePath)
	if err != nil {
		return nil, 0, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, apperrors.ErrFileNotFound
		}
		return nil, 0, fmt.Errorf("failed to stat %s: %w", relativePath, err)
	}
	if info.IsDir() {
		return nil, 0, apperrors.ErrFileNotFound
	}
	f, err := os.Open(resolved)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to open file", apperrors.ErrFileStorage)
	}
	return f, info.Size(), nil
}

// DeleteFile removes a stored file. Deleting a file that is already gone is
// treated as success so callers can retry safely.
func (ls *LocalStorage) DeleteFile(relativePath string) error {
	if paths.Normalize(relativePath) == "" {
		return nil
	}
	resolved, err := ls.resolver.Resolve(relativePath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		logger.Warn().Str("path", relativePath).Msg("File to delete does not exist")
		return nil
	}
	if err := os.Remove(resolved); err != nil {
		logger.Error().Err(err).Str("path", relativePath).Msg("Failed to delete file")
		return fmt.Errorf("%w: failed to delete file", apperrors.ErrFileStorage)
	}
	logger.Info().Str("path", relativePath).Msg("File deleted successfully")
	return nil
}

// EnsureDirectory creates the directory at relativeDir, including parents.
func (ls *LocalStorage) EnsureDirectory(relativeDir string) error {
	_, err := ls.resolver.EnsureDir(relativeDir)
	return err
}

// DirectoryExists reports whether a directory is present at relativeDir.
func (ls *LocalStorage) DirectoryExists(relativeDir string) (bool, error) {
	resolved, err := ls.resolver.Resolve(relativeDir)
	if err != nil {
		return false, err
	}
	fi, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", relativeDir, err)
	}
	return fi.IsDir(), nil
}

// DeleteDirectory removes the directory at relativeDir and everything in it.
// A missing directory is treated as success.
func (ls *LocalStorage) DeleteDirectory(relativeDir string) error {
	normalized := paths.Normalize(relativeDir)
	if normalized == "" {
		return apperrors.NewInvalidPathError("refusing to delete the uploads root")
	}
	resolved, err := ls.resolver.Resolve(normalized)
	if err != nil {
		return err
	}
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(resolved); err != nil {
		logger.Error().Err(err).Str("path", normalized).Msg("Failed to delete directory")
		return fmt.Errorf("%w: failed to delete directory", apperrors.ErrFileStorage)
	}
	logger.Info().Str("path", normalized).Msg("Directory deleted")
	return nil
}

// dedupFilename finds a stored name that does not collide with an existing
// file in dirPath by appending "(n)" before the extension.
func (ls *LocalStorage) dedupFilename(dirPath, filename string) (string, error) {
	candidate := filename
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	for counter := 1; ; counter++ {
		_, err := os.Stat(filepath.Join(dirPath, candidate))
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check filename %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s(%d)%s", stem, counter, ext)
	}
}

// SanitizeFilename reduces an uploaded filename to a safe character set.
// Anything outside letters, digits, dot, underscore and hyphen becomes an
// underscore; an empty result falls back to "file".
func SanitizeFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	sanitized := unsafeFilenameChars.ReplaceAllString(base, "_")
	sanitized = strings.Trim(sanitized, ".")
	if sanitized == "" {
		return "file"
	}
	return sanitized
}
