package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/app/services"
	"github.com/alquds/archivesystem/internal/middleware"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/helpers"
)

// ExplorerController serves the virtual file-explorer views: listings,
// trees, breadcrumbs and cache controls.
type ExplorerController struct {
	scanService     *services.ScanService
	explorerService *services.ExplorerService
	academicService *services.AcademicService
	logger          zerolog.Logger
}

// NewExplorerController creates a new ExplorerController
func NewExplorerController(
	scanService *services.ScanService,
	explorerService *services.ExplorerService,
	academicService *services.AcademicService,
	logger zerolog.Logger,
) *ExplorerController {
	return &ExplorerController{
		scanService:     scanService,
		explorerService: explorerService,
		academicService: academicService,
		logger:          logger,
	}
}

// GetRoot returns the explorer root for a semester, a year, or the whole archive
// @Summary Explorer root
// @Description Returns the root node with its immediate children, scoped to a semester or academic year when given
// @Tags file-explorer
// @Produce json
// @Security BearerAuth
// @Param academicYearId query int false "Scope to one academic year"
// @Param semesterId query int false "Scope to one semester (takes precedence)"
// @Success 200 {object} dto.APIResponse{data=dto.TreeResponse} "Root tree"
// @Failure 404 {object} dto.ErrorResponse "Year or semester not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /file-explorer/root [get]
func (c *ExplorerController) GetRoot(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	path := ""
	if semesterIDStr := ctx.Query("semesterId"); semesterIDStr != "" {
		semesterID, err := strconv.ParseInt(semesterIDStr, 10, 64)
		if err != nil {
			respondBadParam(ctx, "semesterId must be an integer")
			return
		}
		semester, err := c.academicService.GetSemester(ctx.Request.Context(), semesterID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		path = semester.FolderPath()
	} else if yearIDStr := ctx.Query("academicYearId"); yearIDStr != "" {
		yearID, err := strconv.ParseInt(yearIDStr, 10, 64)
		if err != nil {
			respondBadParam(ctx, "academicYearId must be an integer")
			return
		}
		year, err := c.academicService.GetAcademicYear(ctx.Request.Context(), yearID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		path = year.YearCode
	}

	tree, err := c.explorerService.GetTree(ctx.Request.Context(), user, path, 1)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tree))
}

// GetNode describes a single explorer node
// @Summary Describe a node
// @Description Returns metadata for a single folder or file without expanding children
// @Tags file-explorer
// @Produce json
// @Security BearerAuth
// @Param path query string true "Explorer path"
// @Success 200 {object} dto.APIResponse{data=dto.ExplorerNode} "Node"
// @Failure 400 {object} dto.ErrorResponse "Invalid path"
// @Failure 403 {object} dto.ErrorResponse "Read access denied"
// @Failure 404 {object} dto.ErrorResponse "Path not found"
// @Router /file-explorer/node [get]
func (c *ExplorerController) GetNode(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	node, err := c.explorerService.GetNode(ctx.Request.Context(), user, ctx.Query("path"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(node))
}

// GetBreadcrumbs returns the ancestor chain of a path
// @Summary Breadcrumbs
// @Description Returns the ancestor chain of a path, root first
// @Tags file-explorer
// @Produce json
// @Security BearerAuth
// @Param path query string true "Explorer path"
// @Success 200 {object} dto.APIResponse{data=[]dto.BreadcrumbItem} "Breadcrumbs"
// @Failure 400 {object} dto.ErrorResponse "Invalid path"
// @Router /file-explorer/breadcrumbs [get]
func (c *ExplorerController) GetBreadcrumbs(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	crumbs, err := c.explorerService.GetBreadcrumbs(ctx.Request.Context(), user, ctx.Query("path"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(crumbs))
}

// ListDirectory returns one page of a directory listing
// @Summary List a directory
// @Description Returns a paginated, sorted directory listing. Honors If-None-Match against the directory ETag.
// @Tags file-explorer
// @Produce json
// @Security BearerAuth
// @Param path query string true "Explorer path"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (max 200)"
// @Param sortBy query string false "Sort field (name, size, modified)"
// @Param sortOrder query string false "Sort order (asc, desc)"
// @Param If-None-Match header string false "Previously seen ETag"
// @Success 200 {object} dto.APIResponse{data=dto.DirectoryListingResponse} "Listing"
// @Success 304 "Directory unchanged"
// @Failure 400 {object} dto.ErrorResponse "Invalid path"
// @Failure 403 {object} dto.ErrorResponse "Read access denied"
// @Failure 404 {object} dto.ErrorResponse "Path not found"
// @Router /file-explorer/list [get]
func (c *ExplorerController) ListDirectory(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	sortBy, sortOrder := helpers.ParseSortParams(ctx, services.SortableListingFields, "name")

	listing, err := c.scanService.ListDirectory(ctx.Request.Context(), user, ctx.Query("path"), page, pageSize, sortBy, sortOrder)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("ETag", listing.ETag)
	if match := ctx.GetHeader("If-None-Match"); match != "" && match == listing.ETag {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(listing))
}

// GetTree returns a nested subtree
// @Summary Directory tree
// @Description Returns a directory with children nested to the requested depth
// @Tags file-explorer
// @Produce json
// @Security BearerAuth
// @Param path query string false "Explorer path (archive root when empty)"
// @Param depth query int false "Expansion depth (clamped to the configured maximum)"
// @Success 200 {object} dto.APIResponse{data=dto.TreeResponse} "Tree"
// @Failure 400 {object} dto.ErrorResponse "Invalid path"
// @Failure 404 {object} dto.ErrorResponse "Path not found"
// @Router /file-explorer/tree [get]
func (c *ExplorerController) GetTree(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	depth, err := strconv.Atoi(ctx.DefaultQuery("depth", "1"))
	if err != nil {
		depth = 1
	}

	tree, err := c.explorerService.GetTree(ctx.Request.Context(), user, ctx.Query("path"), depth)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tree))
}

// Exists reports whether a path exists
// @Summary Path existence check
// @Tags file-explorer
// @Produce json
// @Security BearerAuth
// @Param path query string true "Explorer path"
// @Success 200 {object} dto.APIResponse{data=dto.ExistsResponse} "Existence result"
// @Failure 400 {object} dto.ErrorResponse "Invalid path"
// @Router /file-explorer/exists [get]
func (c *ExplorerController) Exists(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	result, err := c.scanService.PathExists(ctx.Request.Context(), user, ctx.Query("path"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// HasChanged reports whether a directory changed since an ETag was issued
// @Summary Change check
// @Description Compares a client-held ETag with the directory's current ETag
// @Tags file-explorer
// @Produce json
// @Security BearerAuth
// @Param path query string true "Explorer path"
// @Param etag query string true "Previously seen ETag"
// @Success 200 {object} dto.APIResponse{data=dto.ChangeCheckResponse} "Change result"
// @Failure 400 {object} dto.ErrorResponse "Invalid path"
// @Router /file-explorer/changed [get]
func (c *ExplorerController) HasChanged(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	result, err := c.scanService.HasDirectoryChanged(ctx.Request.Context(), user, ctx.Query("path"), ctx.Query("etag"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// RefreshCache drops cached listings for a path
// @Summary Refresh listing cache
// @Description Drops cached listings and ETags for a path, optionally for its whole subtree
// @Tags file-explorer
// @Produce json
// @Security BearerAuth
// @Param path query string false "Explorer path (archive root when empty)"
// @Param recursive query bool false "Also drop subtree and ancestor entries (default true)"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Cache refreshed"
// @Router /file-explorer/refresh-cache [post]
func (c *ExplorerController) RefreshCache(ctx *gin.Context) {
	recursive := true
	if raw := ctx.Query("recursive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadParam(ctx, "recursive must be a boolean")
			return
		}
		recursive = parsed
	}

	c.scanService.RefreshCache(ctx.Query("path"), recursive)
	c.logger.Debug().Str("path", ctx.Query("path")).Bool("recursive", recursive).Msg("Listing cache refreshed")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Cache refreshed"}))
}

func respondUnauthenticated(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

func respondBadParam(ctx *gin.Context, message string) {
	middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(message))
}
