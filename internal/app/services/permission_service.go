package services

import (
	"context"
	"errors"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/paths"
)

// OwnerRelation describes how the calling user relates to the professor
// subtree a path lives in.
type OwnerRelation int

const (
	// RelationShallow: the path is above any professor segment
	// (root, year or semester level).
	RelationShallow OwnerRelation = iota
	// RelationOwn: the path is inside the caller's own professor subtree.
	RelationOwn
	// RelationSameDepartment: the subtree belongs to a professor in the
	// caller's department.
	RelationSameDepartment
	// RelationOtherDepartment: the subtree belongs to a professor in a
	// different department.
	RelationOtherDepartment
	// RelationUnknownOwner: the professor segment resolves to no account.
	RelationUnknownOwner
)

// PermissionService evaluates what a user may do at a given explorer path.
type PermissionService struct {
	identityService *IdentityService
}

// NewPermissionService creates a new permission service instance
func NewPermissionService(identityService *IdentityService) *PermissionService {
	return &PermissionService{
		identityService: identityService,
	}
}

// Evaluate computes the caller's effective permissions on a path. The role
// table grants delete by relation; on top of that, only nodes of a deletable
// kind ever carry it, so structural folders never list as deletable.
func (s *PermissionService) Evaluate(ctx context.Context, user *models.User, info paths.PathInfo) (dto.NodePermissions, error) {
	relation, err := s.Relation(ctx, user, info)
	if err != nil {
		return dto.NodePermissions{}, err
	}
	perms := Decide(user.Role, relation)
	if perms.CanDelete && !DeletableKind(info) {
		perms.CanDelete = false
	}
	return perms, nil
}

// RequireRead returns a forbidden error when the caller may not read the path.
func (s *PermissionService) RequireRead(ctx context.Context, user *models.User, info paths.PathInfo) error {
	perms, err := s.Evaluate(ctx, user, info)
	if err != nil {
		return err
	}
	if !perms.CanRead {
		return apperrors.NewForbiddenError("you do not have permission to view " + info.Path)
	}
	return nil
}

// RequireWrite returns a forbidden error when the caller may not modify the path.
func (s *PermissionService) RequireWrite(ctx context.Context, user *models.User, info paths.PathInfo) error {
	perms, err := s.Evaluate(ctx, user, info)
	if err != nil {
		return err
	}
	if !perms.CanWrite {
		return apperrors.NewForbiddenError("you do not have permission to modify " + info.Path)
	}
	return nil
}

// RequireDelete returns a forbidden error when the caller may not delete at the path.
func (s *PermissionService) RequireDelete(ctx context.Context, user *models.User, info paths.PathInfo) error {
	perms, err := s.Evaluate(ctx, user, info)
	if err != nil {
		return err
	}
	if !perms.CanDelete {
		return apperrors.NewForbiddenError("you do not have permission to delete " + info.Path)
	}
	return nil
}

// Relation determines the caller's relation to the path's owning professor.
// Resolution failures for the owner are not errors: they degrade to
// RelationUnknownOwner so that admins can still see mislabeled folders.
func (s *PermissionService) Relation(ctx context.Context, user *models.User, info paths.PathInfo) (OwnerRelation, error) {
	if info.Depth() < 3 {
		return RelationShallow, nil
	}

	owner, err := s.identityService.ResolveProfessor(ctx, info.ProfessorIdentifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfessorNotFound) {
			return RelationUnknownOwner, nil
		}
		return RelationUnknownOwner, err
	}

	if owner.ID == user.ID {
		return RelationOwn, nil
	}
	if user.DepartmentID != nil && owner.DepartmentID != nil && *user.DepartmentID == *owner.DepartmentID {
		return RelationSameDepartment, nil
	}
	return RelationOtherDepartment, nil
}

// Decide is the pure permission table. Everything above the professor level
// is readable by any authenticated user; below it, reads are scoped by
// department and writes by ownership. Admins keep full control, deans read
// everything, and folders with no resolvable owner stay visible only to the
// two privileged roles.
func Decide(role models.UserRole, relation OwnerRelation) dto.NodePermissions {
	switch role {
	case models.RoleAdmin:
		return dto.NodePermissions{CanRead: true, CanWrite: true, CanDelete: true}

	case models.RoleDean:
		return dto.NodePermissions{CanRead: true}

	case models.RoleHOD:
		switch relation {
		case RelationShallow:
			return dto.NodePermissions{CanRead: true}
		case RelationOwn:
			return dto.NodePermissions{CanRead: true, CanWrite: true, CanDelete: true}
		case RelationSameDepartment:
			return dto.NodePermissions{CanRead: true}
		}
		return dto.NodePermissions{}

	case models.RoleProfessor:
		switch relation {
		case RelationShallow:
			return dto.NodePermissions{CanRead: true}
		case RelationOwn:
			return dto.NodePermissions{CanRead: true, CanWrite: true, CanDelete: true}
		case RelationSameDepartment:
			return dto.NodePermissions{CanRead: true}
		}
		return dto.NodePermissions{}
	}

	return dto.NodePermissions{}
}

// DeletableKind reports whether nodes at this position can be deleted at
// all. The year, semester, professor and course levels and the standard
// document subfolders are managed by provisioning; only file entries and
// custom subfolders may be removed through the explorer.
func DeletableKind(info paths.PathInfo) bool {
	switch info.Kind {
	case paths.KindEntry:
		return true
	case paths.KindSubfolder:
		_, isDocType := models.ParseDocumentFolderToken(info.SubfolderName)
		return !isDocType
	}
	return false
}
