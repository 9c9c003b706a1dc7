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

// AcademicController serves academic-calendar lookups and course assignments.
type AcademicController struct {
	academicService *services.AcademicService
	logger          zerolog.Logger
}

// NewAcademicController creates a new AcademicController
func NewAcademicController(academicService *services.AcademicService, logger zerolog.Logger) *AcademicController {
	return &AcademicController{
		academicService: academicService,
		logger:          logger,
	}
}

// GetAcademicYears lists all academic years
// @Summary List academic years
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AcademicYearResponse} "Academic years"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic-years [get]
func (c *AcademicController) GetAcademicYears(ctx *gin.Context) {
	years, err := c.academicService.GetAcademicYears(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AcademicYearResponse, 0, len(years))
	for _, year := range years {
		responses = append(responses, dto.FromAcademicYear(year))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// GetSemesters lists the semesters of an academic year
// @Summary List semesters of a year
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year id"
// @Success 200 {object} dto.APIResponse{data=[]dto.SemesterResponse} "Semesters"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id}/semesters [get]
func (c *AcademicController) GetSemesters(ctx *gin.Context) {
	yearID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || yearID < 1 {
		respondBadParam(ctx, "id must be a positive integer")
		return
	}

	semesters, err := c.academicService.GetSemesters(ctx.Request.Context(), yearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SemesterResponse, 0, len(semesters))
	for _, semester := range semesters {
		responses = append(responses, dto.FromSemester(semester))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// GetDepartments lists all departments
// @Summary List departments
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Departments"
// @Router /departments [get]
func (c *AcademicController) GetDepartments(ctx *gin.Context) {
	departments, err := c.academicService.GetDepartments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(departments))
}

// GetCourses lists the courses of a department
// @Summary List courses of a department
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department id"
// @Success 200 {object} dto.APIResponse "Courses"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id}/courses [get]
func (c *AcademicController) GetCourses(ctx *gin.Context) {
	departmentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || departmentID < 1 {
		respondBadParam(ctx, "id must be a positive integer")
		return
	}

	courses, err := c.academicService.GetCoursesByDepartment(ctx.Request.Context(), departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// CreateCourseAssignment assigns a professor to a course for a semester
// @Summary Create a course assignment
// @Description Creates the assignment, its required submission slots, and provisions the course folders. Provisioning failures are reported in the response, not as errors.
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseAssignmentRequest true "Assignment"
// @Success 201 {object} dto.APIResponse{data=dto.CourseAssignmentResponse} "Assignment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 409 {object} dto.ErrorResponse "Assignment already exists"
// @Router /course-assignments [post]
func (c *AcademicController) CreateCourseAssignment(ctx *gin.Context) {
	var req dto.CreateCourseAssignmentRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	assignment, err := c.academicService.CreateCourseAssignment(ctx.Request.Context(), &req, req.DueDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("courseID", req.CourseID).
		Int64("professorUserID", req.ProfessorUserID).
		Int64("semesterID", req.SemesterID).
		Msg("Course assignment created")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(assignment))
}

// GetSubmissions lists the submission slots of a course assignment
// @Summary List submissions of an assignment
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course assignment id"
// @Success 200 {object} dto.APIResponse{data=[]dto.SubmissionResponse} "Submissions"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /course-assignments/{id}/submissions [get]
func (c *AcademicController) GetSubmissions(ctx *gin.Context) {
	assignmentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || assignmentID < 1 {
		respondBadParam(ctx, "id must be a positive integer")
		return
	}

	submissions, err := c.academicService.GetSubmissions(ctx.Request.Context(), assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submissions))
}
