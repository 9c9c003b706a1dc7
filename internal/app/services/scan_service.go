package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/app/repositories"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/explorercache"
	"github.com/alquds/archivesystem/internal/pkg/helpers"
	"github.com/alquds/archivesystem/internal/pkg/logger"
	"github.com/alquds/archivesystem/internal/pkg/paths"
)

// SortableListingFields are the fields a directory listing can be ordered by.
var SortableListingFields = []string{"name", "size", "modified"}

// ScanService reads directories under the uploads root and renders them as
// explorer listings. Listings and per-directory ETags are cached for a short
// TTL; writes anywhere in a subtree invalidate the affected paths.
type ScanService struct {
	resolver   *paths.Resolver
	cache      *explorercache.Cache
	folderRepo *repositories.FolderRepository
	fileRepo   *repositories.UploadedFileRepository
	userRepo   *repositories.UserRepository
	permission *PermissionService
}

// NewScanService creates a new scan service instance
func NewScanService(
	resolver *paths.Resolver,
	cache *explorercache.Cache,
	folderRepo *repositories.FolderRepository,
	fileRepo *repositories.UploadedFileRepository,
	userRepo *repositories.UserRepository,
	permission *PermissionService,
) *ScanService {
	return &ScanService{
		resolver:   resolver,
		cache:      cache,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		userRepo:   userRepo,
		permission: permission,
	}
}

// ListDirectory returns one page of a directory, filtered to the entries the
// caller may read.
func (s *ScanService) ListDirectory(ctx context.Context, user *models.User, rawPath string, page, pageSize int, sortBy, sortOrder string) (*dto.DirectoryListingResponse, error) {
	info, err := paths.Parse(rawPath)
	if err != nil {
		return nil, err
	}
	if err := s.permission.RequireRead(ctx, user, info); err != nil {
		return nil, err
	}

	cacheKey := explorercache.ListingKey(info.Path, strconv.FormatInt(user.ID, 10), page, pageSize, sortBy, sortOrder)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if listing, ok := cached.(*dto.DirectoryListingResponse); ok {
			return listing, nil
		}
	}

	nodes, err := s.scanDirectory(ctx, user, info)
	if err != nil {
		return nil, err
	}

	etag, err := s.DirectoryETag(info.Path)
	if err != nil {
		return nil, err
	}

	sortNodes(nodes, sortBy, sortOrder)

	total := int64(len(nodes))
	start, end := helpers.CalculateSliceIndices(page, pageSize, len(nodes))

	listing := &dto.DirectoryListingResponse{
		Path:        info.Path,
		Breadcrumbs: Breadcrumbs(info.Path),
		Items:       nodes[start:end],
		Pagination:  helpers.NewPaginationInfo(total, page, pageSize),
		ETag:        etag,
	}

	s.cache.Put(cacheKey, listing)
	return listing, nil
}

// scanDirectory renders the direct children of a directory, merging the disk
// scan with database records and dropping entries the caller may not read.
// A directory that is missing on disk but has a folder row lists as empty.
func (s *ScanService) scanDirectory(ctx context.Context, user *models.User, info paths.PathInfo) ([]dto.ExplorerNode, error) {
	resolved, err := s.resolver.Resolve(info.Path)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(resolved)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read directory %s: %w", info.Path, err)
		}
		if info.IsRoot() {
			return []dto.ExplorerNode{}, nil
		}
		if _, dbErr := s.folderRepo.GetByPath(ctx, info.Path); dbErr != nil {
			if errors.Is(dbErr, apperrors.ErrFolderNotFound) {
				return nil, apperrors.NewResourceNotFoundError("path not found: " + info.Path)
			}
			return nil, dbErr
		}
		// Folder row exists but nothing is on disk yet: an empty directory,
		// not a missing one.
		return []dto.ExplorerNode{}, nil
	}

	records, err := s.fileRepo.GetByDirectory(ctx, info.Path)
	if err != nil {
		return nil, err
	}
	recordsByName := make(map[string]*models.UploadedFile, len(records))
	for _, rec := range records {
		recordsByName[rec.StoredFilename] = rec
	}
	uploaderNames := make(map[int64]string)

	nodes := make([]dto.ExplorerNode, 0, len(entries))
	for _, entry := range entries {
		childPath := paths.Join(info.Path, entry.Name())
		childInfo, err := paths.Parse(childPath)
		if err != nil {
			logger.Warn().Str("path", childPath).Msg("Skipping directory entry with unparsable name")
			continue
		}

		perms, err := s.permission.Evaluate(ctx, user, childInfo)
		if err != nil {
			return nil, err
		}
		if !perms.CanRead {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", childPath, err)
		}
		modified := fi.ModTime()

		node := dto.ExplorerNode{
			Name:        entry.Name(),
			Path:        childPath,
			IsDirectory: entry.IsDir(),
			NodeType:    nodeType(childInfo, entry.IsDir()),
			ModifiedAt:  &modified,
			Permissions: perms,
		}

		if entry.IsDir() {
			nodes = append(nodes, node)
			continue
		}

		node.Size = fi.Size()
		if rec, ok := recordsByName[entry.Name()]; ok {
			node.FileID = &rec.ID
			node.UploadedBy = &rec.UploadedBy
			node.UploadedByName = s.uploaderName(ctx, uploaderNames, rec.UploadedBy)
			node.Name = rec.FileName
			if rec.DocumentType != nil {
				dt := string(*rec.DocumentType)
				node.DocumentType = &dt
			}
		} else {
			// On disk with no database record: surface it, flagged.
			node.Orphaned = true
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// uploaderName resolves an uploader id to a display name, memoized per scan.
// A missing account (a deleted uploader) leaves the name empty.
func (s *ScanService) uploaderName(ctx context.Context, memo map[int64]string, userID int64) string {
	if name, ok := memo[userID]; ok {
		return name
	}
	name := ""
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		name = user.FullName()
	}
	memo[userID] = name
	return name
}

// DirectoryETag computes (and caches) the weak ETag of a directory. The tag
// hashes the sorted name:size:mtime tuples of the direct children, so any
// rename, resize or touch changes it.
func (s *ScanService) DirectoryETag(rawPath string) (string, error) {
	normalized := paths.Normalize(rawPath)
	key := explorercache.ETagKey(normalized)
	if cached, ok := s.cache.Get(key); ok {
		if etag, ok := cached.(string); ok {
			return etag, nil
		}
	}

	resolved, err := s.resolver.Resolve(normalized)
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(resolved)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read directory %s: %w", normalized, err)
	}

	tuples := make([]string, 0, len(entries))
	for _, entry := range entries {
		fi, err := entry.Info()
		if err != nil {
			return "", fmt.Errorf("failed to stat entry in %s: %w", normalized, err)
		}
		tuples = append(tuples, fmt.Sprintf("%s:%d:%d", entry.Name(), fi.Size(), fi.ModTime().UnixMilli()))
	}
	sort.Strings(tuples)

	sum := sha256.Sum256([]byte(strings.Join(tuples, ";")))
	etag := `W/"` + hex.EncodeToString(sum[:])[:12] + `"`

	s.cache.Put(key, etag)
	return etag, nil
}

// HasDirectoryChanged compares a client-held ETag with the current one.
func (s *ScanService) HasDirectoryChanged(ctx context.Context, user *models.User, rawPath, clientETag string) (*dto.ChangeCheckResponse, error) {
	info, err := paths.Parse(rawPath)
	if err != nil {
		return nil, err
	}
	if err := s.permission.RequireRead(ctx, user, info); err != nil {
		return nil, err
	}

	etag, err := s.DirectoryETag(info.Path)
	if err != nil {
		return nil, err
	}

	return &dto.ChangeCheckResponse{
		Path:    info.Path,
		Changed: clientETag == "" || clientETag != etag,
		ETag:    etag,
	}, nil
}

// PathExists reports whether a path exists on disk or as a folder record.
func (s *ScanService) PathExists(ctx context.Context, user *models.User, rawPath string) (*dto.ExistsResponse, error) {
	info, err := paths.Parse(rawPath)
	if err != nil {
		return nil, err
	}
	if err := s.permission.RequireRead(ctx, user, info); err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(info.Path)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExistsResponse{Path: info.Path}
	if fi, err := os.Stat(resolved); err == nil {
		resp.Exists = true
		resp.IsDirectory = fi.IsDir()
		return resp, nil
	}

	if _, err := s.folderRepo.GetByPath(ctx, info.Path); err == nil {
		resp.Exists = true
		resp.IsDirectory = true
	}
	return resp, nil
}

// Invalidate drops cached listings and ETags for a path, its subtree and its
// ancestors. Call it after any write under the path.
func (s *ScanService) Invalidate(path string) {
	s.cache.InvalidateRecursive(path)
}

// RefreshCache drops cached entries for a path on demand, optionally
// covering its subtree and ancestors.
func (s *ScanService) RefreshCache(path string, recursive bool) {
	if recursive {
		s.cache.InvalidateRecursive(path)
		return
	}
	s.cache.Invalidate(path)
}

// Breadcrumbs builds the ancestor chain of a path, root first.
func Breadcrumbs(path string) []dto.BreadcrumbItem {
	normalized := paths.Normalize(path)
	crumbs := []dto.BreadcrumbItem{{Name: "Archive", Path: ""}}
	if normalized == "" {
		return crumbs
	}

	segments := strings.Split(normalized, "/")
	for i := range segments {
		crumbs = append(crumbs, dto.BreadcrumbItem{
			Name: segments[i],
			Path: strings.Join(segments[:i+1], "/"),
		})
	}
	return crumbs
}

// nodeType labels a node by its position in the hierarchy. Course subfolders
// split into DOCUMENT_TYPE and CUSTOM by name; anything deeper than the
// subfolder level is a plain entry.
func nodeType(info paths.PathInfo, isDir bool) string {
	if !isDir {
		return "FILE"
	}
	switch info.Kind {
	case paths.KindYear:
		return string(models.FolderTypeYear)
	case paths.KindSemester:
		return string(models.FolderTypeSemester)
	case paths.KindProfessor:
		return string(models.FolderTypeProfessor)
	case paths.KindCourse:
		return string(models.FolderTypeCourse)
	case paths.KindSubfolder:
		if _, ok := models.ParseDocumentFolderToken(info.SubfolderName); ok {
			return string(models.FolderTypeDocumentType)
		}
		return string(models.FolderTypeCustom)
	}
	return string(models.FolderTypeCustom)
}

func sortNodes(nodes []dto.ExplorerNode, sortBy, sortOrder string) {
	desc := sortOrder == helpers.SortOrderDesc
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		// Directories always sort ahead of files.
		if a.IsDirectory != b.IsDirectory {
			return a.IsDirectory
		}
		var less bool
		switch sortBy {
		case "size":
			if a.Size == b.Size {
				less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
			} else {
				less = a.Size < b.Size
			}
		case "modified":
			am, bm := timeOrZero(a.ModifiedAt), timeOrZero(b.ModifiedAt)
			if am.Equal(bm) {
				less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
			} else {
				less = am.Before(bm)
			}
		default:
			less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		if desc {
			return !less
		}
		return less
	})
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
