package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/app/services"
	"github.com/alquds/archivesystem/internal/middleware"
)

// FolderController handles folder creation, deletion and provisioning.
type FolderController struct {
	folderService   *services.FolderService
	academicService *services.AcademicService
	logger          zerolog.Logger
}

// NewFolderController creates a new FolderController
func NewFolderController(folderService *services.FolderService, academicService *services.AcademicService, logger zerolog.Logger) *FolderController {
	return &FolderController{
		folderService:   folderService,
		academicService: academicService,
		logger:          logger,
	}
}

// CreateFolder creates a custom folder under a course folder
// @Summary Create a custom folder
// @Description Creates a user-named folder under a course folder. Standard document folders are reserved names.
// @Tags file-explorer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCustomFolderRequest true "Parent path and folder name"
// @Success 201 {object} dto.APIResponse{data=dto.FolderResponse} "Folder created"
// @Failure 400 {object} dto.ErrorResponse "Invalid path or folder name"
// @Failure 403 {object} dto.ErrorResponse "Write access denied"
// @Failure 404 {object} dto.ErrorResponse "Parent folder not found"
// @Failure 409 {object} dto.ErrorResponse "Folder already exists"
// @Router /file-explorer/folder [post]
func (c *FolderController) CreateFolder(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateCustomFolderRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	folder, err := c.folderService.CreateCustomFolder(ctx.Request.Context(), user, req.Path, req.FolderName)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromFolder(folder)))
}

// DeleteFolder removes a custom folder and everything in it
// @Summary Delete a custom folder
// @Description Deletes a custom folder with its files and subfolders. Standard hierarchy folders cannot be deleted.
// @Tags file-explorer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteFolderRequest true "Folder path"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteFolderResult} "Folder deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid path"
// @Failure 403 {object} dto.ErrorResponse "Delete access denied or non-custom folder"
// @Failure 404 {object} dto.ErrorResponse "Folder not found"
// @Router /file-explorer/folder [delete]
func (c *FolderController) DeleteFolder(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.DeleteFolderRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	result, err := c.folderService.DeleteFolder(ctx.Request.Context(), user, req.FolderPath)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// Refresh re-provisions folders for a semester or a whole academic year
// @Summary Refresh provisioned folders
// @Description Re-runs idempotent folder provisioning for every course assignment in the given semester, or in every semester of the given year
// @Tags file-explorer
// @Produce json
// @Security BearerAuth
// @Param academicYearId query int false "Academic year to refresh"
// @Param semesterId query int false "Semester to refresh (takes precedence)"
// @Success 200 {object} dto.APIResponse{data=[]dto.SemesterProvisionResult} "Provisioning results"
// @Failure 400 {object} dto.ErrorResponse "Neither semesterId nor academicYearId given"
// @Failure 404 {object} dto.ErrorResponse "Year or semester not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /file-explorer/refresh [post]
func (c *FolderController) Refresh(ctx *gin.Context) {
	var semesterIDs []int64

	if semesterIDStr := ctx.Query("semesterId"); semesterIDStr != "" {
		semesterID, err := strconv.ParseInt(semesterIDStr, 10, 64)
		if err != nil {
			respondBadParam(ctx, "semesterId must be an integer")
			return
		}
		semesterIDs = []int64{semesterID}
	} else if yearIDStr := ctx.Query("academicYearId"); yearIDStr != "" {
		yearID, err := strconv.ParseInt(yearIDStr, 10, 64)
		if err != nil {
			respondBadParam(ctx, "academicYearId must be an integer")
			return
		}
		semesters, err := c.academicService.GetSemesters(ctx.Request.Context(), yearID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		for _, semester := range semesters {
			semesterIDs = append(semesterIDs, semester.ID)
		}
	} else {
		respondBadParam(ctx, "semesterId or academicYearId is required")
		return
	}

	results := make([]dto.SemesterProvisionResult, 0, len(semesterIDs))
	for _, semesterID := range semesterIDs {
		result, err := c.folderService.ProvisionSemester(ctx.Request.Context(), semesterID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		results = append(results, *result)
	}

	c.logger.Info().Int("semesters", len(results)).Msg("Folder provisioning refreshed")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(results))
}
