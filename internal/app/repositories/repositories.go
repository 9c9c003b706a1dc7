package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	DepartmentRepository         *DepartmentRepository
	AcademicRepository           *AcademicRepository
	CourseRepository             *CourseRepository
	CourseAssignmentRepository   *CourseAssignmentRepository
	FolderRepository             *FolderRepository
	UploadedFileRepository       *UploadedFileRepository
	DocumentSubmissionRepository *DocumentSubmissionRepository
	TokenRepository              *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		DepartmentRepository:         NewDepartmentRepository(db),
		AcademicRepository:           NewAcademicRepository(db),
		CourseRepository:             NewCourseRepository(db),
		CourseAssignmentRepository:   NewCourseAssignmentRepository(db),
		FolderRepository:             NewFolderRepository(db),
		UploadedFileRepository:       NewUploadedFileRepository(db),
		DocumentSubmissionRepository: NewDocumentSubmissionRepository(db),
		TokenRepository:              NewTokenRepository(db),
	}
}
