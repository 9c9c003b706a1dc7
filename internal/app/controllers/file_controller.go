package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/app/services"
	"github.com/alquds/archivesystem/internal/middleware"
)

// FileController handles document upload, download, replacement and deletion.
type FileController struct {
	fileService *services.FileService
	logger      zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(fileService *services.FileService, logger zerolog.Logger) *FileController {
	return &FileController{
		fileService: fileService,
		logger:      logger,
	}
}

// Upload stores a document into the folder at the given path
// @Summary Upload a file
// @Description Uploads a multipart file into the explorer folder at the given path, creating missing standard folders
// @Tags file-explorer
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param path query string true "Target directory path"
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.APIResponse{data=dto.UploadedFileResponse} "File uploaded"
// @Failure 400 {object} dto.ErrorResponse "Invalid path, empty file or denied type"
// @Failure 403 {object} dto.ErrorResponse "Write access denied"
// @Failure 404 {object} dto.ErrorResponse "Unknown year, semester, professor or course"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Router /file-explorer/upload [post]
func (c *FileController) Upload(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Multipart field 'file' is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	uploaded, err := c.fileService.UploadFile(ctx.Request.Context(), user, ctx.Query("path"), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(uploaded))
}

// Download streams a stored file
// @Summary Download a file
// @Description Streams a file by record id with a content-disposition attachment header
// @Tags file-explorer
// @Produce octet-stream
// @Security BearerAuth
// @Param fileId path int true "File record id"
// @Success 200 {file} binary "File content"
// @Failure 403 {object} dto.ErrorResponse "Read access denied"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /file-explorer/files/{fileId}/download [get]
func (c *FileController) Download(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	fileID, ok := parseFileID(ctx)
	if !ok {
		return
	}

	result, err := c.fileService.DownloadFileByID(ctx.Request.Context(), user, fileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer result.Reader.Close()

	ctx.Header("Content-Disposition", contentDisposition(result.FileName))
	ctx.DataFromReader(http.StatusOK, result.Size, result.MimeType, result.Reader, nil)
}

// Replace swaps the content of a stored file
// @Summary Replace a file
// @Description Replaces the content of an existing file, keeping its folder and submission linkage
// @Tags file-explorer
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param fileId path int true "File record id"
// @Param file formData file true "Replacement file"
// @Success 200 {object} dto.APIResponse{data=dto.UploadedFileResponse} "File replaced"
// @Failure 400 {object} dto.ErrorResponse "Empty file or denied type"
// @Failure 403 {object} dto.ErrorResponse "Write access denied"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /file-explorer/files/{fileId}/replace [post]
func (c *FileController) Replace(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	fileID, ok := parseFileID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Multipart field 'file' is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	replaced, err := c.fileService.ReplaceFileByID(ctx.Request.Context(), user, fileID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(replaced))
}

// Delete removes a stored file
// @Summary Delete a file
// @Tags file-explorer
// @Produce json
// @Security BearerAuth
// @Param fileId path int true "File record id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "File deleted"
// @Failure 403 {object} dto.ErrorResponse "Delete access denied"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /file-explorer/files/{fileId} [delete]
func (c *FileController) Delete(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	fileID, ok := parseFileID(ctx)
	if !ok {
		return
	}

	if err := c.fileService.DeleteFileByID(ctx.Request.Context(), user, fileID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "File deleted"}))
}

// DownloadByPath streams an explorer file addressed by path. Orphaned files
// with no database record are reachable this way.
// @Summary Download a file by path
// @Tags file-explorer
// @Produce octet-stream
// @Security BearerAuth
// @Param path query string true "Explorer file path"
// @Success 200 {file} binary "File content"
// @Failure 403 {object} dto.ErrorResponse "Read access denied"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /file-explorer/download [get]
func (c *FileController) DownloadByPath(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	result, err := c.fileService.DownloadFile(ctx.Request.Context(), user, ctx.Query("path"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer result.Reader.Close()

	ctx.Header("Content-Disposition", contentDisposition(result.FileName))
	ctx.DataFromReader(http.StatusOK, result.Size, result.MimeType, result.Reader, nil)
}

func parseFileID(ctx *gin.Context) (int64, bool) {
	fileID, err := strconv.ParseInt(ctx.Param("fileId"), 10, 64)
	if err != nil || fileID < 1 {
		respondBadParam(ctx, "fileId must be a positive integer")
		return 0, false
	}
	return fileID, true
}

// contentDisposition builds an attachment header with both the plain
// filename (non-ASCII stripped) and the RFC 5987 encoded form.
func contentDisposition(fileName string) string {
	plain := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, fileName)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, plain, url.PathEscape(fileName))
}
