package services

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/app/repositories"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/paths"
)

// ExplorerService builds nested tree views on top of the scan service. The
// first level of a subtree is expanded concurrently, bounded by the
// configured scan concurrency; deeper levels are walked within each worker.
type ExplorerService struct {
	scan        *ScanService
	folderRepo  *repositories.FolderRepository
	resolver    *paths.Resolver
	concurrency int
	maxDepth    int
}

// NewExplorerService creates a new explorer service instance
func NewExplorerService(scan *ScanService, folderRepo *repositories.FolderRepository, resolver *paths.Resolver, concurrency, maxDepth int) *ExplorerService {
	if concurrency < 1 {
		concurrency = 1
	}
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &ExplorerService{
		scan:        scan,
		folderRepo:  folderRepo,
		resolver:    resolver,
		concurrency: concurrency,
		maxDepth:    maxDepth,
	}
}

// GetTree renders the subtree rooted at a path, expanded to the requested
// depth (clamped to the configured maximum).
func (s *ExplorerService) GetTree(ctx context.Context, user *models.User, rawPath string, depth int) (*dto.TreeResponse, error) {
	info, err := paths.Parse(rawPath)
	if err != nil {
		return nil, err
	}
	if err := s.scan.permission.RequireRead(ctx, user, info); err != nil {
		return nil, err
	}
	if depth < 1 {
		depth = 1
	}
	if depth > s.maxDepth {
		depth = s.maxDepth
	}

	root, err := s.describeDirectory(ctx, info)
	if err != nil {
		return nil, err
	}

	if err := s.expand(ctx, user, root, depth); err != nil {
		return nil, err
	}

	etag, err := s.scan.DirectoryETag(info.Path)
	if err != nil {
		return nil, err
	}

	return &dto.TreeResponse{Root: *root, Depth: depth, ETag: etag}, nil
}

// GetNode describes a single node, directory or file. Directories come back
// with their children expanded one level; an empty directory carries an
// empty children list, not a missing one.
func (s *ExplorerService) GetNode(ctx context.Context, user *models.User, rawPath string) (*dto.ExplorerNode, error) {
	info, err := paths.Parse(rawPath)
	if err != nil {
		return nil, err
	}
	if err := s.scan.permission.RequireRead(ctx, user, info); err != nil {
		return nil, err
	}

	node, err := s.locateNode(ctx, user, info)
	if err != nil {
		return nil, err
	}
	if node.IsDirectory {
		if err := s.expand(ctx, user, node, 1); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// locateNode finds the bare node for a path. Listing the parent yields the
// same metadata a listing would show, including file records and orphan
// flags.
func (s *ExplorerService) locateNode(ctx context.Context, user *models.User, info paths.PathInfo) (*dto.ExplorerNode, error) {
	if info.IsRoot() {
		return s.describeDirectory(ctx, info)
	}

	parentInfo, err := paths.Parse(paths.ParentPath(info.Path))
	if err != nil {
		return nil, err
	}
	siblings, err := s.scan.scanDirectory(ctx, user, parentInfo)
	if err != nil {
		return nil, err
	}
	name := paths.BaseName(info.Path)
	for i := range siblings {
		if siblings[i].Name == name || paths.BaseName(siblings[i].Path) == name {
			return &siblings[i], nil
		}
	}

	// A folder row whose directory vanished still resolves as an empty
	// directory node.
	return s.describeDirectory(ctx, info)
}

// GetBreadcrumbs returns the ancestor chain of a path, root first.
func (s *ExplorerService) GetBreadcrumbs(ctx context.Context, user *models.User, rawPath string) ([]dto.BreadcrumbItem, error) {
	info, err := paths.Parse(rawPath)
	if err != nil {
		return nil, err
	}
	if err := s.scan.permission.RequireRead(ctx, user, info); err != nil {
		return nil, err
	}
	return Breadcrumbs(info.Path), nil
}

// expand fills in the children of a directory node. The top level fans out
// into a bounded errgroup; each worker walks its own branch sequentially to
// keep the group's limit meaningful.
func (s *ExplorerService) expand(ctx context.Context, user *models.User, node *dto.ExplorerNode, depth int) error {
	if depth <= 0 || !node.IsDirectory {
		return nil
	}

	info, err := paths.Parse(node.Path)
	if err != nil {
		return err
	}
	children, err := s.scan.scanDirectory(ctx, user, info)
	if err != nil {
		return err
	}
	node.Children = children
	setFileCount(node)

	if depth == 1 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range node.Children {
		if !node.Children[i].IsDirectory {
			continue
		}
		child := &node.Children[i]
		g.Go(func() error {
			return s.expandSequential(gctx, user, child, depth-1)
		})
	}
	return g.Wait()
}

func (s *ExplorerService) expandSequential(ctx context.Context, user *models.User, node *dto.ExplorerNode, depth int) error {
	if depth <= 0 || !node.IsDirectory {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := paths.Parse(node.Path)
	if err != nil {
		return err
	}
	children, err := s.scan.scanDirectory(ctx, user, info)
	if err != nil {
		return err
	}
	node.Children = children
	setFileCount(node)

	for i := range node.Children {
		if err := s.expandSequential(ctx, user, &node.Children[i], depth-1); err != nil {
			return err
		}
	}
	return nil
}

func setFileCount(node *dto.ExplorerNode) {
	count := 0
	for i := range node.Children {
		if !node.Children[i].IsDirectory {
			count++
		}
	}
	node.FileCount = &count
}

// describeDirectory builds the node for the subtree root itself. The root of
// the archive always exists; any other path must be present on disk or have
// a folder record.
func (s *ExplorerService) describeDirectory(ctx context.Context, info paths.PathInfo) (*dto.ExplorerNode, error) {
	node := &dto.ExplorerNode{
		Name:        paths.BaseName(info.Path),
		Path:        info.Path,
		IsDirectory: true,
		NodeType:    nodeType(info, true),
		Permissions: dto.NodePermissions{CanRead: true},
	}
	if info.IsRoot() {
		node.Name = "Archive"
		node.NodeType = "ROOT"
		return node, nil
	}

	resolved, err := s.resolver.Resolve(info.Path)
	if err != nil {
		return nil, err
	}
	if fi, statErr := os.Stat(resolved); statErr == nil {
		if !fi.IsDir() {
			return nil, apperrors.NewInvalidPathError("not a directory: " + info.Path)
		}
		modified := fi.ModTime()
		node.ModifiedAt = &modified
		return node, nil
	}

	if _, err := s.folderRepo.GetByPath(ctx, info.Path); err != nil {
		if errors.Is(err, apperrors.ErrFolderNotFound) {
			return nil, apperrors.NewResourceNotFoundError("path not found: " + info.Path)
		}
		return nil, err
	}
	return node, nil
}
