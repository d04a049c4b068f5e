package service

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"taskboard/internal/logger"
	repoMocks "taskboard/internal/repository/mocks"
	storeMocks "taskboard/internal/storage/mocks"
)

const userID = "user-1"

func ptr[T any](v T) *T { return &v }

func quietLog() logrus.FieldLogger {
	return logger.NewWithWriter(io.Discard, "error", nil)
}

// repos bundles a fresh set of repository mocks.
type repos struct {
	projects    *repoMocks.MockProjectRepository
	columns     *repoMocks.MockColumnRepository
	sections    *repoMocks.MockSectionRepository
	tasks       *repoMocks.MockTaskRepository
	attachments *repoMocks.MockAttachmentRepository
	rules       *repoMocks.MockRecurrenceRepository
	store       *storeMocks.MockStorage
}

func newRepos(t *testing.T) *repos {
	r := &repos{
		projects:    new(repoMocks.MockProjectRepository),
		columns:     new(repoMocks.MockColumnRepository),
		sections:    new(repoMocks.MockSectionRepository),
		tasks:       new(repoMocks.MockTaskRepository),
		attachments: new(repoMocks.MockAttachmentRepository),
		rules:       new(repoMocks.MockRecurrenceRepository),
		store:       new(storeMocks.MockStorage),
	}
	t.Cleanup(func() {
		r.projects.AssertExpectations(t)
		r.columns.AssertExpectations(t)
		r.sections.AssertExpectations(t)
		r.tasks.AssertExpectations(t)
		r.attachments.AssertExpectations(t)
		r.rules.AssertExpectations(t)
		r.store.AssertExpectations(t)
	})
	return r
}

func (r *repos) taskService() *taskService {
	return NewTaskService(TaskDeps{
		Tasks:       r.tasks,
		Projects:    r.projects,
		Sections:    r.sections,
		Columns:     r.columns,
		Attachments: r.attachments,
		Rules:       r.rules,
	}, r.store, quietLog(), nil).(*taskService)
}
