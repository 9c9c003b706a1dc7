package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/app/repositories"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
)

const (
	defaultAdminEmail    = "admin@alquds.edu"
	defaultAdminPassword = "admin123"
	defaultYearCode      = "2024-2025"
)

// CreateDefaultData seeds the database with the baseline records a fresh
// installation needs: the default departments, the admin account, and the
// current academic year with its semesters. Every step tolerates data that
// already exists, so the function is safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")

	repos := repositories.NewRepositories(dbPool)
	var seedErrors []error

	if err := seedDepartments(ctx, repos.DepartmentRepository, lgr); err != nil {
		seedErrors = append(seedErrors, err)
	}
	if err := seedAdminUser(ctx, repos.UserRepository, lgr); err != nil {
		seedErrors = append(seedErrors, err)
	}
	if err := seedAcademicYear(ctx, repos.AcademicRepository, lgr); err != nil {
		seedErrors = append(seedErrors, err)
	}

	if len(seedErrors) > 0 {
		return errors.Join(seedErrors...)
	}

	lgr.Info().Msg("Default data check complete.")
	return nil
}

func seedDepartments(ctx context.Context, repo *repositories.DepartmentRepository, lgr zerolog.Logger) error {
	departments := []models.Department{
		{Name: "Computer Science", Code: "CS"},
		{Name: "Mathematics", Code: "MATH"},
		{Name: "Physics", Code: "PHYS"},
	}

	for i := range departments {
		dept := departments[i]
		err := repo.Create(ctx, &dept)
		switch {
		case err == nil:
			lgr.Info().Str("code", dept.Code).Int64("id", dept.ID).Msg("Created default department")
		case apperrors.Is(err, apperrors.ErrConflict):
			// Already seeded on a previous startup.
		default:
			return fmt.Errorf("seeding department %s: %w", dept.Code, err)
		}
	}
	return nil
}

func seedAdminUser(ctx context.Context, repo *repositories.UserRepository, lgr zerolog.Logger) error {
	if _, err := repo.GetByEmail(ctx, defaultAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("checking admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &models.User{
		Email:     defaultAdminEmail,
		Password:  string(hashed),
		FirstName: "System",
		LastName:  "Administrator",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}

	if err := repo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("creating admin user: %w", err)
	}

	lgr.Warn().
		Str("email", defaultAdminEmail).
		Msg("Created default admin user with the default password; change it immediately")
	return nil
}

func seedAcademicYear(ctx context.Context, repo *repositories.AcademicRepository, lgr zerolog.Logger) error {
	year, err := repo.GetYearByCode(ctx, defaultYearCode)
	switch {
	case err == nil:
		// Year exists; make sure its semesters do too.
	case errors.Is(err, apperrors.ErrAcademicYearNotFound):
		year = &models.AcademicYear{YearCode: defaultYearCode, IsActive: true}
		if createErr := repo.CreateYear(ctx, year); createErr != nil {
			if apperrors.Is(createErr, apperrors.ErrConflict) {
				return nil
			}
			return fmt.Errorf("creating academic year %s: %w", defaultYearCode, createErr)
		}
		lgr.Info().Str("yearCode", year.YearCode).Int64("id", year.ID).Msg("Created default academic year")
	default:
		return fmt.Errorf("checking academic year: %w", err)
	}

	for _, term := range []models.SemesterTerm{models.TermFirst, models.TermSecond, models.TermSummer} {
		semester := &models.Semester{AcademicYearID: year.ID, Term: term}
		err := repo.CreateSemester(ctx, semester)
		switch {
		case err == nil:
			lgr.Info().Str("yearCode", year.YearCode).Str("term", string(term)).Msg("Created default semester")
		case apperrors.Is(err, apperrors.ErrConflict):
			// Already present.
		default:
			return fmt.Errorf("creating semester %s/%s: %w", year.YearCode, term, err)
		}
	}
	return nil
}
