package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/alquds/archivesystem/internal/app/controllers"
	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	explorerController *controllers.ExplorerController,
	folderController *controllers.FolderController,
	fileController *controllers.FileController,
	academicController *controllers.AcademicController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.POST("/auth/register",
			authMiddleware.RoleRequired(models.RoleAdmin), authController.Register)

		// File explorer routes
		explorer := authenticated.Group("/file-explorer")
		{
			explorer.GET("/root", explorerController.GetRoot)
			explorer.GET("/node", explorerController.GetNode)
			explorer.GET("/breadcrumbs", explorerController.GetBreadcrumbs)
			explorer.GET("/list", explorerController.ListDirectory)
			explorer.GET("/tree", explorerController.GetTree)
			explorer.GET("/exists", explorerController.Exists)
			explorer.GET("/changed", explorerController.HasChanged)
			explorer.POST("/refresh-cache", explorerController.RefreshCache)

			explorer.POST("/folder", folderController.CreateFolder)
			explorer.DELETE("/folder", folderController.DeleteFolder)
			explorer.POST("/refresh",
				authMiddleware.RoleRequired(models.RoleAdmin, models.RoleDean), folderController.Refresh)

			explorer.POST("/upload", fileController.Upload)
			explorer.GET("/download", fileController.DownloadByPath)
			explorer.GET("/files/:fileId/download", fileController.Download)
			explorer.POST("/files/:fileId/replace", fileController.Replace)
			explorer.DELETE("/files/:fileId", fileController.Delete)
		}

		// Academic lookups
		academicYears := authenticated.Group("/academic-years")
		{
			academicYears.GET("", academicController.GetAcademicYears)
			academicYears.GET("/:id/semesters", academicController.GetSemesters)
		}

		departments := authenticated.Group("/departments")
		{
			departments.GET("", academicController.GetDepartments)
			departments.GET("/:id/courses", academicController.GetCourses)
		}

		assignments := authenticated.Group("/course-assignments")
		{
			assignments.POST("",
				authMiddleware.RoleRequired(models.RoleAdmin), academicController.CreateCourseAssignment)
			assignments.GET("/:id/submissions", academicController.GetSubmissions)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
}
