package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/pkg/explorercache"
	"github.com/alquds/archivesystem/internal/pkg/paths"
)

func newDiskScanService(t *testing.T) (*ScanService, string) {
	t.Helper()
	root := t.TempDir()
	resolver, err := paths.NewResolver(root)
	require.NoError(t, err)
	// Repositories stay nil: the disk-only operations under test never
	// reach them.
	return NewScanService(resolver, explorercache.New(time.Minute), nil, nil, nil, nil), root
}

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs("")
	require.Len(t, crumbs, 1)
	assert.Equal(t, dto.BreadcrumbItem{Name: "Archive", Path: ""}, crumbs[0])

	crumbs = Breadcrumbs("/2024-2025/first/prof_7/")
	require.Len(t, crumbs, 4)
	assert.Equal(t, dto.BreadcrumbItem{Name: "2024-2025", Path: "2024-2025"}, crumbs[1])
	assert.Equal(t, dto.BreadcrumbItem{Name: "first", Path: "2024-2025/first"}, crumbs[2])
	assert.Equal(t, dto.BreadcrumbItem{Name: "prof_7", Path: "2024-2025/first/prof_7"}, crumbs[3])
}

func TestNodeType(t *testing.T) {
	tests := []struct {
		path  string
		isDir bool
		want  string
	}{
		{"2024-2025", true, "YEAR"},
		{"2024-2025/first", true, "SEMESTER"},
		{"2024-2025/first/prof_7", true, "PROFESSOR"},
		{"2024-2025/first/prof_7/CS101 - Intro", true, "COURSE"},
		{"2024-2025/first/prof_7/CS101 - Intro/Exams", true, "DOCUMENT_TYPE"},
		{"2024-2025/first/prof_7/CS101 - Intro/Research", true, "CUSTOM"},
		{"2024-2025/first/prof_7/CS101 - Intro/Exams/deep", true, "CUSTOM"},
		{"2024-2025/first/prof_7/CS101 - Intro/Exams/a.pdf", false, "FILE"},
	}
	for _, tt := range tests {
		info, err := paths.Parse(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, nodeType(info, tt.isDir), tt.path)
	}
}

func TestSortNodes(t *testing.T) {
	early := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	build := func() []dto.ExplorerNode {
		return []dto.ExplorerNode{
			{Name: "b.pdf", Size: 10, ModifiedAt: &late},
			{Name: "Alpha", IsDirectory: true, ModifiedAt: &early},
			{Name: "a.pdf", Size: 30, ModifiedAt: &early},
			{Name: "zeta", IsDirectory: true, ModifiedAt: &late},
		}
	}

	names := func(nodes []dto.ExplorerNode) []string {
		out := make([]string, len(nodes))
		for i, n := range nodes {
			out[i] = n.Name
		}
		return out
	}

	nodes := build()
	sortNodes(nodes, "name", "asc")
	assert.Equal(t, []string{"Alpha", "zeta", "a.pdf", "b.pdf"}, names(nodes),
		"directories come first, names compare case-insensitively")

	nodes = build()
	sortNodes(nodes, "size", "desc")
	assert.Equal(t, []string{"zeta", "Alpha", "a.pdf", "b.pdf"}, names(nodes))

	nodes = build()
	sortNodes(nodes, "modified", "asc")
	assert.Equal(t, []string{"Alpha", "zeta", "a.pdf", "b.pdf"}, names(nodes))
}

func TestDirectoryETag(t *testing.T) {
	svc, root := newDiskScanService(t)

	dir := filepath.Join(root, "2024-2025", "first")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("aaa"), 0o644))

	etag1, err := svc.DirectoryETag("2024-2025/first")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(etag1, `W/"`), etag1)

	etag2, err := svc.DirectoryETag("/2024-2025/first/")
	require.NoError(t, err)
	assert.Equal(t, etag1, etag2, "equivalent paths share an ETag")

	// The first call cached the tag, so a content change is invisible until
	// the path is invalidated.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("bbbb"), 0o644))
	etag3, err := svc.DirectoryETag("2024-2025/first")
	require.NoError(t, err)
	assert.Equal(t, etag1, etag3)

	svc.Invalidate("2024-2025/first")
	etag4, err := svc.DirectoryETag("2024-2025/first")
	require.NoError(t, err)
	assert.NotEqual(t, etag1, etag4, "new child changes the ETag")
}

func TestDirectoryETagMissingDirectory(t *testing.T) {
	svc, _ := newDiskScanService(t)

	etag, err := svc.DirectoryETag("does/not/exist")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(etag, `W/"`), "missing directories still hash to a stable empty tag")
}

func TestRefreshCache(t *testing.T) {
	svc, root := newDiskScanService(t)

	dir := filepath.Join(root, "2024-2025")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	etag1, err := svc.DirectoryETag("2024-2025")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.pdf"), []byte("x"), 0o644))

	svc.RefreshCache("2024-2025", false)
	etag2, err := svc.DirectoryETag("2024-2025")
	require.NoError(t, err)
	assert.NotEqual(t, etag1, etag2)
}
