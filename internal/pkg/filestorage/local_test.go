package filestorage

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/paths"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	resolver, err := paths.NewResolver(t.TempDir())
	require.NoError(t, err)
	storage, err := NewLocalStorage(resolver)
	require.NoError(t, err)
	return storage
}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(int64(len(content)) + 4096)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestSaveFileAndOpen(t *testing.T) {
	storage := newTestStorage(t)
	content := []byte("syllabus body")

	stored, err := storage.SaveFile(makeFileHeader(t, "syllabus.pdf", content), "2024-2025/first/prof_7/CS101/Syllabus")
	require.NoError(t, err)
	assert.Equal(t, "syllabus.pdf", stored.StoredFilename)
	assert.Equal(t, "2024-2025/first/prof_7/CS101/Syllabus/syllabus.pdf", stored.RelativePath)
	assert.Equal(t, int64(len(content)), stored.FileSize)

	reader, size, err := storage.Open(stored.RelativePath)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, int64(len(content)), size)

	read, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, read)
}

func TestSaveFileDeduplicatesNames(t *testing.T) {
	storage := newTestStorage(t)

	first, err := storage.SaveFile(makeFileHeader(t, "report.pdf", []byte("v1")), "docs")
	require.NoError(t, err)
	second, err := storage.SaveFile(makeFileHeader(t, "report.pdf", []byte("v2")), "docs")
	require.NoError(t, err)
	third, err := storage.SaveFile(makeFileHeader(t, "report.pdf", []byte("v3")), "docs")
	require.NoError(t, err)

	assert.Equal(t, "report.pdf", first.StoredFilename)
	assert.Equal(t, "report(1).pdf", second.StoredFilename)
	assert.Equal(t, "report(2).pdf", third.StoredFilename)
}

func TestSaveFileSanitizesName(t *testing.T) {
	storage := newTestStorage(t)

	stored, err := storage.SaveFile(makeFileHeader(t, "my exam (final)?.pdf", []byte("x")), "docs")
	require.NoError(t, err)
	assert.Equal(t, "my_exam__final__.pdf", stored.StoredFilename)
}

func TestSaveFileNilHeader(t *testing.T) {
	storage := newTestStorage(t)
	_, err := storage.SaveFile(nil, "docs")
	assert.ErrorIs(t, err, apperrors.ErrFileEmpty)
}

func TestOpenMissingFile(t *testing.T) {
	storage := newTestStorage(t)
	_, _, err := storage.Open("nope/missing.pdf")
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestDeleteFileIdempotent(t *testing.T) {
	storage := newTestStorage(t)

	stored, err := storage.SaveFile(makeFileHeader(t, "a.txt", []byte("a")), "docs")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(stored.RelativePath))
	assert.NoError(t, storage.DeleteFile(stored.RelativePath), "second delete succeeds")
}

func TestDirectoryExists(t *testing.T) {
	storage := newTestStorage(t)

	exists, err := storage.DirectoryExists("2024-2025/first")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, storage.EnsureDirectory("2024-2025/first"))
	exists, err = storage.DirectoryExists("2024-2025/first")
	require.NoError(t, err)
	assert.True(t, exists)

	// A file at the path is not a directory.
	_, err = storage.SaveFile(makeFileHeader(t, "a.pdf", []byte("x")), "2024-2025/first")
	require.NoError(t, err)
	exists, err = storage.DirectoryExists("2024-2025/first/a.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = storage.DirectoryExists("../outside")
	assert.Error(t, err)
}

func TestDeleteDirectory(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.EnsureDirectory("2024-2025/first"))
	_, err := storage.SaveFile(makeFileHeader(t, "a.txt", []byte("a")), "2024-2025/first")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteDirectory("2024-2025/first"))
	_, statErr := os.Stat(filepath.Join(storage.resolver.Root(), "2024-2025", "first"))
	assert.True(t, os.IsNotExist(statErr))

	assert.NoError(t, storage.DeleteDirectory("2024-2025/first"), "missing directory is fine")
}

func TestDeleteDirectoryRefusesRoot(t *testing.T) {
	storage := newTestStorage(t)
	err := storage.DeleteDirectory("/")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidPath))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my file.pdf", "my_file.pdf"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil.exe", "evil.exe"},
		{"çok_güzel.pdf", "_ok_g_zel.pdf"},
		{"...", "file"},
		{"", "file"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), tt.in)
	}
}
