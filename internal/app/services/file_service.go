package services

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/app/repositories"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/filestorage"
	"github.com/alquds/archivesystem/internal/pkg/logger"
	"github.com/alquds/archivesystem/internal/pkg/paths"
)

// DownloadResult carries an open file stream with the metadata the transport
// layer needs to serve it.
type DownloadResult struct {
	Reader   io.ReadSeekCloser
	Size     int64
	FileName string
	MimeType string
}

// FileService handles document upload, download, replacement and deletion.
type FileService struct {
	fileRepo       *repositories.UploadedFileRepository
	submissionRepo *repositories.DocumentSubmissionRepository
	assignmentRepo *repositories.CourseAssignmentRepository
	storage        filestorage.FileStorage
	folders        *FolderService
	permission     *PermissionService
	scan           *ScanService
	maxFileSize    int64
	allowedExts    map[string]struct{}
}

// NewFileService creates a new file service instance
func NewFileService(
	fileRepo *repositories.UploadedFileRepository,
	submissionRepo *repositories.DocumentSubmissionRepository,
	assignmentRepo *repositories.CourseAssignmentRepository,
	storage filestorage.FileStorage,
	folders *FolderService,
	permission *PermissionService,
	scan *ScanService,
	maxFileSize int64,
	allowedExts []string,
) *FileService {
	extSet := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	return &FileService{
		fileRepo:       fileRepo,
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		storage:        storage,
		folders:        folders,
		permission:     permission,
		scan:           scan,
		maxFileSize:    maxFileSize,
		allowedExts:    extSet,
	}
}

// UploadFile stores an uploaded document into the folder at dirPath,
// creating missing standard folders along the way. Uploading a duplicate
// filename keeps both: the new file gets a numeric suffix.
func (s *FileService) UploadFile(ctx context.Context, user *models.User, dirPath string, fileHeader *multipart.FileHeader) (*dto.UploadedFileResponse, error) {
	if err := s.validateUpload(fileHeader); err != nil {
		return nil, err
	}

	// Resolves entities and enforces write permission, in that order.
	folder, err := s.folders.GetOrCreateFolderByPath(ctx, user, dirPath)
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.SaveFile(fileHeader, folder.Path)
	if err != nil {
		return nil, err
	}

	record := &models.UploadedFile{
		FolderID:       &folder.ID,
		FileName:       fileHeader.Filename,
		StoredFilename: stored.StoredFilename,
		FileURL:        stored.RelativePath,
		FileSize:       stored.FileSize,
		MimeType:       contentTypeOf(fileHeader),
		DocumentType:   documentTypeOf(folder),
		UploadedBy:     user.ID,
	}
	if err := s.fileRepo.Create(ctx, record); err != nil {
		// Keep disk and database consistent when the insert fails.
		_ = s.storage.DeleteFile(stored.RelativePath)
		return nil, err
	}

	if record.DocumentType != nil {
		s.markSubmission(ctx, folder, record)
	}

	s.scan.Invalidate(folder.Path)
	logger.Info().
		Str("path", record.FileURL).
		Int64("userID", user.ID).
		Int64("size", record.FileSize).
		Msg("File uploaded")

	resp := dto.FromUploadedFile(record)
	return &resp, nil
}

// DownloadFile opens a stored file for streaming. Orphaned files (on disk
// with no record) are still downloadable; their metadata is derived from the
// filename.
func (s *FileService) DownloadFile(ctx context.Context, user *models.User, rawPath string) (*DownloadResult, error) {
	info, err := paths.Parse(rawPath)
	if err != nil {
		return nil, err
	}
	if err := s.permission.RequireRead(ctx, user, info); err != nil {
		return nil, err
	}

	reader, size, err := s.storage.Open(info.Path)
	if err != nil {
		return nil, err
	}

	result := &DownloadResult{
		Reader:   reader,
		Size:     size,
		FileName: paths.BaseName(info.Path),
		MimeType: mimeByExtension(info.Path),
	}

	record, err := s.fileRepo.GetByFileURL(ctx, info.Path)
	if err == nil {
		result.FileName = record.FileName
		if record.MimeType != "" {
			result.MimeType = record.MimeType
		}
	} else if !errors.Is(err, apperrors.ErrFileNotFound) {
		reader.Close()
		return nil, err
	}

	return result, nil
}

// ReplaceFile swaps the content of an existing stored file for a new upload,
// keeping the path and submission linkage.
func (s *FileService) ReplaceFile(ctx context.Context, user *models.User, rawPath string, fileHeader *multipart.FileHeader) (*dto.UploadedFileResponse, error) {
	if err := s.validateUpload(fileHeader); err != nil {
		return nil, err
	}

	info, err := paths.Parse(rawPath)
	if err != nil {
		return nil, err
	}
	if err := s.permission.RequireWrite(ctx, user, info); err != nil {
		return nil, err
	}

	record, err := s.fileRepo.GetByFileURL(ctx, info.Path)
	if err != nil {
		return nil, err
	}

	dirPath := paths.ParentPath(info.Path)
	if err := s.storage.DeleteFile(info.Path); err != nil {
		return nil, err
	}
	stored, err := s.storage.SaveFile(fileHeader, dirPath)
	if err != nil {
		return nil, err
	}

	if err := s.fileRepo.Delete(ctx, record.ID); err != nil {
		return nil, err
	}
	replacement := &models.UploadedFile{
		FolderID:       record.FolderID,
		FileName:       fileHeader.Filename,
		StoredFilename: stored.StoredFilename,
		FileURL:        stored.RelativePath,
		FileSize:       stored.FileSize,
		MimeType:       contentTypeOf(fileHeader),
		DocumentType:   record.DocumentType,
		UploadedBy:     user.ID,
	}
	if err := s.fileRepo.Create(ctx, replacement); err != nil {
		return nil, err
	}

	if replacement.DocumentType != nil && record.FolderID != nil {
		if folder, folderErr := s.folders.folderRepo.GetByID(ctx, *record.FolderID); folderErr == nil {
			s.markSubmission(ctx, folder, replacement)
		}
	}

	s.scan.Invalidate(dirPath)
	logger.Info().Str("path", stored.RelativePath).Int64("userID", user.ID).Msg("File replaced")

	resp := dto.FromUploadedFile(replacement)
	return &resp, nil
}

// DeleteFile removes a stored file and its record. Deleting an orphan (no
// record) only touches the disk.
func (s *FileService) DeleteFile(ctx context.Context, user *models.User, rawPath string) error {
	info, err := paths.Parse(rawPath)
	if err != nil {
		return err
	}
	if err := s.permission.RequireDelete(ctx, user, info); err != nil {
		return err
	}

	record, err := s.fileRepo.GetByFileURL(ctx, info.Path)
	switch {
	case err == nil:
		if err := s.detachSubmission(ctx, record); err != nil {
			return err
		}
		if err := s.fileRepo.Delete(ctx, record.ID); err != nil {
			return err
		}
	case errors.Is(err, apperrors.ErrFileNotFound):
		// Orphaned file: nothing in the database to clean up.
	default:
		return err
	}

	if err := s.storage.DeleteFile(info.Path); err != nil {
		return err
	}

	s.scan.Invalidate(paths.ParentPath(info.Path))
	logger.Info().Str("path", info.Path).Int64("userID", user.ID).Msg("File deleted")

	return nil
}

// DownloadFileByID streams a file addressed by its record id.
func (s *FileService) DownloadFileByID(ctx context.Context, user *models.User, fileID int64) (*DownloadResult, error) {
	record, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return s.DownloadFile(ctx, user, record.FileURL)
}

// ReplaceFileByID swaps the content of a file addressed by its record id.
func (s *FileService) ReplaceFileByID(ctx context.Context, user *models.User, fileID int64, fileHeader *multipart.FileHeader) (*dto.UploadedFileResponse, error) {
	record, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return s.ReplaceFile(ctx, user, record.FileURL, fileHeader)
}

// DeleteFileByID removes a file addressed by its record id.
func (s *FileService) DeleteFileByID(ctx context.Context, user *models.User, fileID int64) error {
	record, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	return s.DeleteFile(ctx, user, record.FileURL)
}

func (s *FileService) validateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil || fileHeader.Size == 0 {
		return apperrors.ErrFileEmpty
	}
	if s.maxFileSize > 0 && fileHeader.Size > s.maxFileSize {
		return apperrors.ErrFileTooLarge
	}
	if len(s.allowedExts) > 0 {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if _, ok := s.allowedExts[ext]; !ok {
			return apperrors.ErrFileTypeDenied
		}
	}
	return nil
}

// markSubmission links an upload to its submission slot when the folder
// belongs to a course assignment and the document type has a slot. Failures
// are logged, not returned: the upload itself already succeeded.
func (s *FileService) markSubmission(ctx context.Context, folder *models.Folder, record *models.UploadedFile) {
	if folder.CourseID == nil || folder.OwnerUserID == nil || folder.SemesterID == nil {
		return
	}
	assignment, err := s.assignmentRepo.Find(ctx, *folder.CourseID, *folder.OwnerUserID, *folder.SemesterID)
	if err != nil {
		logger.Warn().Err(err).Str("path", record.FileURL).Msg("No assignment found for submission tracking")
		return
	}
	slot, err := s.submissionRepo.GetByAssignmentAndType(ctx, assignment.ID, *record.DocumentType)
	if err != nil {
		return
	}
	if err := s.submissionRepo.MarkSubmitted(ctx, slot.ID, record.ID, time.Now()); err != nil {
		logger.Warn().Err(err).Int64("submissionID", slot.ID).Msg("Failed to mark submission")
	}
}

// detachSubmission keeps the submission slot alive while any file of the
// deleted file's document type remains in the folder: the slot is re-pointed
// at the newest remaining file and cleared only when the last one goes.
func (s *FileService) detachSubmission(ctx context.Context, record *models.UploadedFile) error {
	if record.DocumentType == nil || record.FolderID == nil {
		return s.submissionRepo.ClearSubmission(ctx, record.ID)
	}

	siblings, err := s.fileRepo.GetByFolderID(ctx, *record.FolderID)
	if err != nil {
		return err
	}
	replacement := submissionReplacement(record, siblings)
	if replacement == nil {
		return s.submissionRepo.ClearSubmission(ctx, record.ID)
	}
	return s.submissionRepo.ReassignFile(ctx, record.ID, replacement.ID)
}

// submissionReplacement picks the newest remaining file with the same
// document type, or nil when the deleted file was the last one.
func submissionReplacement(deleted *models.UploadedFile, siblings []*models.UploadedFile) *models.UploadedFile {
	var best *models.UploadedFile
	for _, f := range siblings {
		if f.ID == deleted.ID {
			continue
		}
		if f.DocumentType == nil || *f.DocumentType != *deleted.DocumentType {
			continue
		}
		if best == nil || f.CreatedAt.After(best.CreatedAt) {
			best = f
		}
	}
	return best
}

func documentTypeOf(folder *models.Folder) *models.DocumentType {
	if folder.Type != models.FolderTypeDocumentType {
		return nil
	}
	if dt, ok := models.ParseDocumentFolderToken(folder.Name); ok {
		return &dt
	}
	return nil
}

func contentTypeOf(fileHeader *multipart.FileHeader) string {
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return mimeByExtension(fileHeader.Filename)
}

func mimeByExtension(name string) string {
	if mt := mime.TypeByExtension(filepath.Ext(name)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
