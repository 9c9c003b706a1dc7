package filestorage

import (
	"io"
	"mime/multipart"
)

// StoredFile describes a file after it has been written to storage.
type StoredFile struct {
	RelativePath   string // slash-separated path under the uploads root
	StoredFilename string // filename on disk, possibly deduplicated
	FileSize       int64  // size in bytes
}

// FileStorage defines the interface for path-addressed file storage. Files
// live at the explorer path they belong to; the stored filename is derived
// from the original one, with a numeric suffix on collision.
type FileStorage interface {
	// SaveFile writes an uploaded file into the directory at relativeDir
	// and returns where it ended up.
	SaveFile(fileHeader *multipart.FileHeader, relativeDir string) (*StoredFile, error)

	// Open opens a stored file for reading.
	Open(relativePath string) (io.ReadSeekCloser, int64, error)

	// DeleteFile removes a file; deleting a missing file is not an error.
	DeleteFile(relativePath string) error

	// EnsureDirectory creates the directory at relativeDir if needed.
	EnsureDirectory(relativeDir string) error

	// DirectoryExists reports whether a directory is present at relativeDir.
	DirectoryExists(relativeDir string) (bool, error)

	// DeleteDirectory removes an empty directory; missing is not an error.
	DeleteDirectory(relativeDir string) error
}
