package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/app/repositories"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/filestorage"
	"github.com/alquds/archivesystem/internal/pkg/logger"
	"github.com/alquds/archivesystem/internal/pkg/paths"
	"github.com/alquds/archivesystem/internal/pkg/validation"
)

// FolderService provisions and maintains the folder hierarchy: academic year
// and semester levels, per-professor subtrees, course folders with their
// standard subfolders, and user-created custom folders. All provisioning is
// idempotent; folders that already exist are reported, not recreated.
type FolderService struct {
	folderRepo     *repositories.FolderRepository
	fileRepo       *repositories.UploadedFileRepository
	academicRepo   *repositories.AcademicRepository
	assignmentRepo *repositories.CourseAssignmentRepository
	storage        filestorage.FileStorage
	identity       *IdentityService
	permission     *PermissionService
	scan           *ScanService
}

// NewFolderService creates a new folder service instance
func NewFolderService(
	folderRepo *repositories.FolderRepository,
	fileRepo *repositories.UploadedFileRepository,
	academicRepo *repositories.AcademicRepository,
	assignmentRepo *repositories.CourseAssignmentRepository,
	storage filestorage.FileStorage,
	identity *IdentityService,
	permission *PermissionService,
	scan *ScanService,
) *FolderService {
	return &FolderService{
		folderRepo:     folderRepo,
		fileRepo:       fileRepo,
		academicRepo:   academicRepo,
		assignmentRepo: assignmentRepo,
		storage:        storage,
		identity:       identity,
		permission:     permission,
		scan:           scan,
	}
}

// ProvisionCourseFolders creates the full folder chain for a course
// assignment: year, semester, professor, course, and the standard document
// subfolders. Safe to call repeatedly.
func (s *FolderService) ProvisionCourseFolders(ctx context.Context, assignment *models.CourseAssignment) (*dto.ProvisionResult, error) {
	if assignment.Semester == nil || assignment.Semester.AcademicYear == nil ||
		assignment.Course == nil || assignment.Professor == nil {
		return nil, fmt.Errorf("course assignment %d is missing relations", assignment.ID)
	}

	result := &dto.ProvisionResult{}
	yearCode := assignment.Semester.AcademicYear.YearCode
	semesterID := assignment.SemesterID
	professorID := assignment.ProfessorUserID

	// Year level
	yearFolder, err := s.ensureFolder(ctx, result, folderSpec{
		path: yearCode, name: yearCode, folderType: models.FolderTypeYear,
	})
	if err != nil {
		return nil, err
	}

	// Semester level
	semesterPath := paths.Join(yearCode, assignment.Semester.Term.FolderToken())
	semesterFolder, err := s.ensureFolder(ctx, result, folderSpec{
		path: semesterPath, name: assignment.Semester.Term.FolderToken(),
		folderType: models.FolderTypeSemester, parentID: &yearFolder.ID,
	})
	if err != nil {
		return nil, err
	}

	// Professor level
	professorName := s.identity.FolderNameFor(assignment.Professor)
	professorPath := paths.Join(semesterPath, professorName)
	professorFolder, err := s.ensureFolder(ctx, result, folderSpec{
		path: professorPath, name: professorName, folderType: models.FolderTypeProfessor,
		parentID: &semesterFolder.ID, ownerUserID: &professorID, semesterID: &semesterID,
	})
	if err != nil {
		return nil, err
	}

	// Course level
	courseName := assignment.Course.FolderName()
	coursePath := paths.Join(professorPath, courseName)
	courseFolder, err := s.ensureFolder(ctx, result, folderSpec{
		path: coursePath, name: courseName, folderType: models.FolderTypeCourse,
		parentID: &professorFolder.ID, ownerUserID: &professorID,
		courseID: &assignment.CourseID, semesterID: &semesterID,
	})
	if err != nil {
		return nil, err
	}

	// Standard document subfolders
	for _, sub := range models.StandardSubfolders {
		subPath := paths.Join(coursePath, sub)
		if _, err := s.ensureFolder(ctx, result, folderSpec{
			path: subPath, name: sub, folderType: models.FolderTypeDocumentType,
			parentID: &courseFolder.ID, ownerUserID: &professorID,
			courseID: &assignment.CourseID, semesterID: &semesterID,
		}); err != nil {
			return nil, err
		}
	}

	result.CoursePath = coursePath
	result.AlreadyExisted = len(result.CreatedPaths) == 0

	if !result.AlreadyExisted {
		s.scan.Invalidate(coursePath)
	}

	logger.Info().
		Str("coursePath", coursePath).
		Int("created", len(result.CreatedPaths)).
		Int("existing", len(result.ExistingPaths)).
		Msg("Course folders provisioned")

	return result, nil
}

// GetOrCreateFolderByPath resolves an explorer path to its folder record,
// creating any missing levels that provisioning would have created. Errors
// rank malformed paths first, then unknown entities, then permission.
func (s *FolderService) GetOrCreateFolderByPath(ctx context.Context, user *models.User, rawPath string) (*models.Folder, error) {
	info, err := paths.Parse(rawPath)
	if err != nil {
		return nil, err
	}
	if info.Depth() < 4 || info.Depth() > 5 {
		return nil, apperrors.NewInvalidPathError("files live under a course folder: year/semester/professor/course[/subfolder]")
	}

	// Entity resolution, shallow to deep.
	semester, err := s.resolveSemester(ctx, info)
	if err != nil {
		return nil, err
	}
	professor, err := s.identity.ResolveProfessor(ctx, info.ProfessorIdentifier)
	if err != nil {
		return nil, err
	}
	assignment, err := s.matchAssignment(ctx, professor.ID, semester.ID, info.CourseFolderName)
	if err != nil {
		return nil, err
	}

	healCustom := false
	if info.Depth() == 5 {
		if _, isDocType := models.ParseDocumentFolderToken(info.SubfolderName); !isDocType {
			folder, err := s.folderRepo.GetByPath(ctx, info.Path)
			if err == nil {
				if err := s.permission.RequireWrite(ctx, user, info); err != nil {
					return nil, err
				}
				return folder, nil
			}
			if !errors.Is(err, apperrors.ErrFolderNotFound) {
				return nil, err
			}
			// Custom folders are never invented, but a directory created
			// directly on disk gets its missing row healed rather than
			// failing the upload.
			exists, exErr := s.storage.DirectoryExists(info.Path)
			if exErr != nil {
				return nil, exErr
			}
			if !exists {
				return nil, apperrors.NewEntityNotFoundError(apperrors.ErrFolderNotFound,
					"no such folder: "+info.Path)
			}
			healCustom = true
		}
	}

	if err := s.permission.RequireWrite(ctx, user, info); err != nil {
		return nil, err
	}

	// The chain is legitimate: materialize whatever is missing.
	assignment.Professor = professor
	assignment.Semester = semester
	if _, err := s.ProvisionCourseFolders(ctx, assignment); err != nil {
		return nil, err
	}

	if healCustom {
		return s.healCustomFolder(ctx, info)
	}

	folder, err := s.folderRepo.GetByPath(ctx, info.Path)
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// healCustomFolder materializes the folder row for a custom directory that
// exists on disk without a record, re-attaching any file records already
// pointing into it.
func (s *FolderService) healCustomFolder(ctx context.Context, info paths.PathInfo) (*models.Folder, error) {
	parent, err := s.folderRepo.GetByPath(ctx, paths.ParentPath(info.Path))
	if err != nil {
		return nil, err
	}

	folder := &models.Folder{
		Name:        info.SubfolderName,
		Path:        info.Path,
		Type:        models.FolderTypeCustom,
		ParentID:    &parent.ID,
		OwnerUserID: parent.OwnerUserID,
		CourseID:    parent.CourseID,
		SemesterID:  parent.SemesterID,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		if errors.Is(err, apperrors.ErrFolderAlreadyExists) {
			return s.folderRepo.GetByPath(ctx, info.Path)
		}
		return nil, err
	}

	records, err := s.fileRepo.GetByDirectory(ctx, info.Path)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.FolderID != nil {
			continue
		}
		if err := s.fileRepo.UpdateFolderID(ctx, record.ID, &folder.ID); err != nil {
			logger.Warn().Err(err).Int64("fileID", record.ID).Msg("Failed to re-parent file record")
		}
	}

	s.scan.Invalidate(info.Path)
	logger.Info().Str("path", info.Path).Msg("Folder record healed for directory found on disk")
	return folder, nil
}

// CreateCustomFolder creates a user-named folder under a course folder.
func (s *FolderService) CreateCustomFolder(ctx context.Context, user *models.User, parentPath, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if !validation.IsValidFolderName(name) {
		return nil, apperrors.NewInvalidFolderNameError(
			`folder names must be 1-100 characters and may not contain \ / : * ? " < > |`)
	}
	if models.IsReservedFolderName(name) {
		return nil, apperrors.NewInvalidFolderNameError(
			name + " is reserved for a standard document folder")
	}

	parentInfo, err := paths.Parse(parentPath)
	if err != nil {
		return nil, err
	}
	if parentInfo.Kind != paths.KindCourse {
		return nil, apperrors.NewInvalidPathError("custom folders can only be created under a course folder")
	}

	parent, err := s.folderRepo.GetByPath(ctx, parentInfo.Path)
	if err != nil {
		if errors.Is(err, apperrors.ErrFolderNotFound) {
			return nil, apperrors.NewEntityNotFoundError(apperrors.ErrFolderNotFound,
				"no such course folder: "+parentInfo.Path)
		}
		return nil, err
	}

	folderPath := paths.Join(parentInfo.Path, name)
	folderInfo, err := paths.Parse(folderPath)
	if err != nil {
		return nil, err
	}
	if err := s.permission.RequireWrite(ctx, user, folderInfo); err != nil {
		return nil, err
	}

	folder := &models.Folder{
		Name:        name,
		Path:        folderPath,
		Type:        models.FolderTypeCustom,
		ParentID:    &parent.ID,
		OwnerUserID: parent.OwnerUserID,
		CourseID:    parent.CourseID,
		SemesterID:  parent.SemesterID,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		if errors.Is(err, apperrors.ErrFolderAlreadyExists) {
			return nil, apperrors.NewConflictError("folder already exists: " + folderPath)
		}
		return nil, err
	}
	if err := s.storage.EnsureDirectory(folderPath); err != nil {
		return nil, err
	}

	s.scan.Invalidate(folderPath)
	logger.Info().Str("path", folderPath).Int64("userID", user.ID).Msg("Custom folder created")

	return folder, nil
}

// DeleteFolder removes a custom folder with everything in it. Standard
// hierarchy folders cannot be deleted through the explorer.
func (s *FolderService) DeleteFolder(ctx context.Context, user *models.User, rawPath string) (*dto.DeleteFolderResult, error) {
	info, err := paths.Parse(rawPath)
	if err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByPath(ctx, info.Path)
	if err != nil {
		if errors.Is(err, apperrors.ErrFolderNotFound) {
			return nil, apperrors.NewEntityNotFoundError(apperrors.ErrFolderNotFound, "no such folder: "+info.Path)
		}
		return nil, err
	}
	if folder.Type != models.FolderTypeCustom {
		return nil, apperrors.NewForbiddenError("only custom folders can be deleted")
	}
	if err := s.permission.RequireDelete(ctx, user, info); err != nil {
		return nil, err
	}

	filesDeleted, err := s.fileRepo.DeleteByDirectoryPrefix(ctx, info.Path)
	if err != nil {
		return nil, err
	}
	foldersDeleted, err := s.folderRepo.DeleteSubtree(ctx, info.Path)
	if err != nil {
		return nil, err
	}
	if err := s.storage.DeleteDirectory(info.Path); err != nil {
		return nil, err
	}

	s.scan.Invalidate(info.Path)
	logger.Info().
		Str("path", info.Path).
		Int64("userID", user.ID).
		Int64("files", filesDeleted).
		Int64("folders", foldersDeleted).
		Msg("Custom folder deleted")

	return &dto.DeleteFolderResult{
		DeletedPath:       info.Path,
		FilesDeleted:      filesDeleted,
		SubfoldersDeleted: foldersDeleted - 1, // the folder itself is not a subfolder
	}, nil
}

// ProvisionSemester re-runs folder provisioning for every course assignment
// in a semester. Used by the refresh endpoint to heal directories that were
// removed out of band.
func (s *FolderService) ProvisionSemester(ctx context.Context, semesterID int64) (*dto.SemesterProvisionResult, error) {
	semester, err := s.academicRepo.GetSemesterByID(ctx, semesterID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.GetBySemester(ctx, semesterID)
	if err != nil {
		return nil, err
	}

	result := &dto.SemesterProvisionResult{
		SemesterPath: semester.FolderPath(),
		Courses:      make([]dto.ProvisionResult, 0, len(assignments)),
	}
	for _, assignment := range assignments {
		courseResult, err := s.ProvisionCourseFolders(ctx, assignment)
		if err != nil {
			logger.Error().Err(err).
				Int64("assignmentID", assignment.ID).
				Msg("Provisioning failed for assignment")
			return nil, err
		}
		result.Courses = append(result.Courses, *courseResult)
	}

	s.scan.Invalidate(result.SemesterPath)
	return result, nil
}

type folderSpec struct {
	path        string
	name        string
	folderType  models.FolderType
	parentID    *int64
	ownerUserID *int64
	courseID    *int64
	semesterID  *int64
}

// ensureFolder finds or creates one folder row plus its directory, recording
// the outcome in the provision result. A create that loses a race to a
// concurrent provisioner counts as already existing.
func (s *FolderService) ensureFolder(ctx context.Context, result *dto.ProvisionResult, spec folderSpec) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByPath(ctx, spec.path)
	if err == nil {
		result.ExistingPaths = append(result.ExistingPaths, spec.path)
		return folder, s.storage.EnsureDirectory(spec.path)
	}
	if !errors.Is(err, apperrors.ErrFolderNotFound) {
		return nil, err
	}

	folder = &models.Folder{
		Name:        spec.name,
		Path:        spec.path,
		Type:        spec.folderType,
		ParentID:    spec.parentID,
		OwnerUserID: spec.ownerUserID,
		CourseID:    spec.courseID,
		SemesterID:  spec.semesterID,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		if errors.Is(err, apperrors.ErrFolderAlreadyExists) {
			existing, getErr := s.folderRepo.GetByPath(ctx, spec.path)
			if getErr != nil {
				return nil, getErr
			}
			result.ExistingPaths = append(result.ExistingPaths, spec.path)
			return existing, s.storage.EnsureDirectory(spec.path)
		}
		return nil, err
	}

	if err := s.storage.EnsureDirectory(spec.path); err != nil {
		return nil, err
	}
	result.CreatedPaths = append(result.CreatedPaths, spec.path)
	return folder, nil
}

func (s *FolderService) resolveSemester(ctx context.Context, info paths.PathInfo) (*models.Semester, error) {
	term, ok := models.ParseSemesterToken(info.SemesterToken)
	if !ok {
		return nil, apperrors.NewEntityNotFoundError(apperrors.ErrSemesterNotFound,
			"unknown semester: "+info.SemesterToken)
	}
	semester, err := s.academicRepo.GetSemesterByYearAndTerm(ctx, info.YearCode, term)
	if err != nil {
		if errors.Is(err, apperrors.ErrSemesterNotFound) {
			// Distinguish the unknown year from the unknown term.
			if _, yearErr := s.academicRepo.GetYearByCode(ctx, info.YearCode); yearErr != nil {
				if errors.Is(yearErr, apperrors.ErrAcademicYearNotFound) {
					return nil, apperrors.NewEntityNotFoundError(apperrors.ErrAcademicYearNotFound,
						"unknown academic year: "+info.YearCode)
				}
				return nil, yearErr
			}
			return nil, apperrors.NewEntityNotFoundError(apperrors.ErrSemesterNotFound,
				"no "+info.SemesterToken+" semester in "+info.YearCode)
		}
		return nil, err
	}
	return semester, nil
}

// matchAssignment finds the assignment whose course folder name matches the
// path's course segment, comparing sanitized names case-insensitively.
func (s *FolderService) matchAssignment(ctx context.Context, professorUserID, semesterID int64, courseFolderName string) (*models.CourseAssignment, error) {
	assignments, err := s.assignmentRepo.GetByProfessorAndSemester(ctx, professorUserID, semesterID)
	if err != nil {
		return nil, err
	}

	wanted := models.SanitizeFolderToken(courseFolderName)
	for _, a := range assignments {
		if a.Course != nil && strings.EqualFold(a.Course.FolderName(), wanted) {
			return a, nil
		}
	}

	return nil, apperrors.NewEntityNotFoundError(apperrors.ErrCourseAssignmentNotFound,
		"professor has no course "+courseFolderName+" this semester")
}
