package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"plain ascii",
			"syllabus.pdf",
			`attachment; filename="syllabus.pdf"; filename*=UTF-8''syllabus.pdf`,
		},
		{
			"spaces escaped in extended form",
			"final exam.pdf",
			`attachment; filename="final exam.pdf"; filename*=UTF-8''final%20exam.pdf`,
		},
		{
			"quotes replaced in plain form",
			`my "notes".pdf`,
			`attachment; filename="my _notes_.pdf"; filename*=UTF-8''my%20%22notes%22.pdf`,
		},
		{
			"non-ascii replaced in plain form only",
			"büyük.pdf",
			`attachment; filename="b_y_k.pdf"; filename*=UTF-8''b%C3%BCy%C3%BCk.pdf`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentDisposition(tt.in))
		})
	}
}
