package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskboard/internal/model"
)

func TestSectionService(t *testing.T) {
	ctx := context.Background()

	t.Run("create in a foreign project", func(t *testing.T) {
		r := newRepos(t)
		r.sections.On("Create", ctx, userID, &model.ProjectSection{ProjectID: "p1", Name: "Later"}).Return(nil, sql.ErrNoRows)

		_, err := NewSectionService(r.sections).Create(ctx, userID, "p1", "Later")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete defaults to keeping tasks", func(t *testing.T) {
		r := newRepos(t)
		r.sections.On("Delete", ctx, userID, "s1", model.SectionMoveToNone, mock.AnythingOfType("time.Time")).Return(nil)

		assert.NoError(t, NewSectionService(r.sections).Delete(ctx, userID, "s1", ""))
	})

	t.Run("delete trashing tasks", func(t *testing.T) {
		r := newRepos(t)
		r.sections.On("Delete", ctx, userID, "s1", model.SectionTrash, mock.AnythingOfType("time.Time")).Return(nil)

		assert.NoError(t, NewSectionService(r.sections).Delete(ctx, userID, "s1", model.SectionTrash))
	})

	t.Run("unknown delete mode", func(t *testing.T) {
		err := NewSectionService(newRepos(t).sections).Delete(ctx, userID, "s1", "ARCHIVE")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rename", func(t *testing.T) {
		r := newRepos(t)
		r.sections.On("Update", ctx, userID, &model.ProjectSection{ID: "s1", Name: "Now"}).Return(&model.ProjectSection{ID: "s1", Name: "Now"}, nil)

		got, err := NewSectionService(r.sections).Rename(ctx, userID, "s1", "Now")
		assert.NoError(t, err)
		assert.Equal(t, "Now", got.Name)
	})
}
