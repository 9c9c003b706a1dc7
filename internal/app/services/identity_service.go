package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/app/repositories"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/logger"
)

// IdentityService resolves the professor segment of an explorer path to a
// user account. Folder names come in three historical shapes, tried in
// order: the synthetic "prof_<userId>" token, the legacy registrar
// identifier, and finally the professor's sanitized full name.
type IdentityService struct {
	userRepo *repositories.UserRepository
}

// NewIdentityService creates a new identity service instance
func NewIdentityService(userRepo *repositories.UserRepository) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
	}
}

// ResolveProfessor maps a professor folder name to the owning user.
func (s *IdentityService) ResolveProfessor(ctx context.Context, identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, apperrors.NewEntityNotFoundError(apperrors.ErrProfessorNotFound, "empty professor identifier")
	}

	// Stage 1: synthetic "prof_<userId>" token
	if userID, ok := parseProfToken(identifier); ok {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err == nil && user.Role == models.RoleProfessor {
			return user, nil
		}
		if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		// fall through: a stale token may still match a legacy identifier
	}

	// Stage 2: legacy registrar identifier
	user, err := s.userRepo.GetByProfessorID(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrProfessorNotFound) {
		return nil, err
	}

	// Stage 3: sanitized full-name match. Linear over all professors; folder
	// names created before identifiers existed are matched this way.
	professors, err := s.userRepo.GetProfessors(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing professors: %w", err)
	}

	wanted := models.SanitizeFolderToken(identifier)
	for _, p := range professors {
		if strings.EqualFold(p.SanitizedFullName(), wanted) {
			logger.Debug().Str("identifier", identifier).Int64("userID", p.ID).Msg("Professor resolved by sanitized name")
			return p, nil
		}
	}

	return nil, apperrors.NewEntityNotFoundError(apperrors.ErrProfessorNotFound,
		"no professor matches folder name "+identifier)
}

// FolderNameFor returns the canonical folder name for a professor, preferring
// the legacy identifier when one exists.
func (s *IdentityService) FolderNameFor(user *models.User) string {
	return user.FolderName()
}

func parseProfToken(identifier string) (int64, bool) {
	if !strings.HasPrefix(identifier, "prof_") {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(identifier, "prof_"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
