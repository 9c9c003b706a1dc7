package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alquds/archivesystem/internal/app/models"
)

func examFile(id int64, createdAt time.Time) *models.UploadedFile {
	dt := models.DocumentTypeExam
	return &models.UploadedFile{ID: id, DocumentType: &dt, CreatedAt: createdAt}
}

func TestSubmissionReplacement(t *testing.T) {
	early := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	first := examFile(1, early)
	second := examFile(2, late)

	// Deleting one of two exams keeps the slot pointed at the other one.
	got := submissionReplacement(second, []*models.UploadedFile{first, second})
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)

	got = submissionReplacement(first, []*models.UploadedFile{first, second})
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)

	// The newest remaining file wins when several are left.
	middle := examFile(3, early.AddDate(0, 0, 10))
	got = submissionReplacement(first, []*models.UploadedFile{first, middle, second})
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)

	// Deleting the last exam clears the slot.
	assert.Nil(t, submissionReplacement(first, []*models.UploadedFile{first}))

	// Files of another document type or without a record type don't count.
	syllabus := models.DocumentTypeSyllabus
	other := &models.UploadedFile{ID: 4, DocumentType: &syllabus, CreatedAt: late}
	untyped := &models.UploadedFile{ID: 5, CreatedAt: late}
	assert.Nil(t, submissionReplacement(first, []*models.UploadedFile{first, other, untyped}))
}
