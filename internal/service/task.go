package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"taskboard/internal/export"
	"taskboard/internal/model"
	"taskboard/internal/recurrence"
	"taskboard/internal/repository"
	"taskboard/internal/storage"
)

// TaskQuery selects tasks for a listing. Without flags it returns the open
// tasks of a list plus those completed today.
type TaskQuery struct {
	Section       *string `json:"section" validate:"omitempty,oneof=inbox"`
	ProjectID     *string `json:"projectId" validate:"omitempty,uuid"`
	BoardColumnID *string `json:"boardColumnId" validate:"omitempty,uuid"`
	Today         bool    `json:"today"`
	Archived      bool    `json:"archived"`
	Deleted       bool    `json:"deleted"`
}

// TaskCreate is the input of TaskService.Create. Without a project or
// section the task goes to the inbox.
type TaskCreate struct {
	Title            string     `json:"title" validate:"required,min=1,max=500"`
	Description      *string    `json:"description" validate:"omitempty,max=10000"`
	Priority         int        `json:"priority" validate:"min=0,max=4"`
	Tags             []string   `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	Section          *string    `json:"section" validate:"omitempty,oneof=inbox"`
	ProjectID        *string    `json:"projectId" validate:"omitempty,uuid"`
	ProjectSectionID *string    `json:"projectSectionId" validate:"omitempty,uuid"`
	BoardColumnID    *string    `json:"boardColumnId" validate:"omitempty,uuid"`
	DueDate          *time.Time `json:"dueDate"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
}

// TaskPatch carries the non-location task fields to change. Nullable fields
// can be cleared with an explicit null.
type TaskPatch struct {
	Title          *string             `json:"title" validate:"omitempty,min=1,max=500"`
	Description    Nullable[string]    `json:"description"`
	Priority       *int                `json:"priority" validate:"omitempty,min=0,max=4"`
	Tags           []string            `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	DueDate        Nullable[time.Time] `json:"dueDate"`
	StartDate      Nullable[time.Time] `json:"startDate"`
	EndDate        Nullable[time.Time] `json:"endDate"`
	CompletionNote Nullable[string]    `json:"completionNote"`
}

// TaskService defines the use cases for tasks.
type TaskService interface {
	List(ctx context.Context, userID string, q TaskQuery) ([]model.Task, error)
	Calendar(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error)
	Get(ctx context.Context, userID, id string) (*model.TaskDetail, error)
	Create(ctx context.Context, userID string, in TaskCreate) (*model.Task, error)
	Update(ctx context.Context, userID, id string, in TaskPatch) (*model.Task, error)

	// Move changes the task's list. With index the task is inserted at that
	// index of the destination, otherwise it goes to the end.
	Move(ctx context.Context, userID, id string, dest model.Placement, index *int) (*model.Task, error)

	Complete(ctx context.Context, userID, id string, note *string) (*model.Task, error)
	Uncomplete(ctx context.Context, userID, id string) (*model.Task, error)
	SoftDelete(ctx context.Context, userID, id string) error
	Restore(ctx context.Context, userID, id string) error

	// HardDelete removes the task, its attachment rows and their objects.
	HardDelete(ctx context.Context, userID, id string) error

	BulkComplete(ctx context.Context, userID string, ids []string) (int, error)
	BulkDelete(ctx context.Context, userID string, ids []string) (int, error)
	BulkMove(ctx context.Context, userID string, ids []string, dest model.Placement) (int, error)
	BulkSetDueDate(ctx context.Context, userID string, ids []string, due *time.Time) (int, error)
	Reorder(ctx context.Context, userID string, ids []string) error

	// Export renders the tasks of a listing as text or YAML.
	Export(ctx context.Context, userID string, q TaskQuery, format export.Format) ([]byte, error)
}

type taskService struct {
	repo        repository.TaskRepository
	attachments repository.AttachmentRepository
	rules       repository.RecurrenceRepository
	placement   placementResolver
	sweeper     objectSweeper
	loc         *time.Location
	now         func() time.Time
}

// TaskDeps groups the repositories a TaskService needs.
type TaskDeps struct {
	Tasks       repository.TaskRepository
	Projects    repository.ProjectRepository
	Sections    repository.SectionRepository
	Columns     repository.ColumnRepository
	Attachments repository.AttachmentRepository
	Rules       repository.RecurrenceRepository
}

// NewTaskService constructs a new TaskService. loc defines the calendar day
// used by the today filter.
func NewTaskService(deps TaskDeps, store storage.Storage, log logrus.FieldLogger, loc *time.Location) TaskService {
	if loc == nil {
		loc = time.UTC
	}
	return &taskService{
		repo:        deps.Tasks,
		attachments: deps.Attachments,
		rules:       deps.Rules,
		placement:   placementResolver{projects: deps.Projects, sections: deps.Sections, columns: deps.Columns},
		sweeper:     objectSweeper{store: store, log: log},
		loc:         loc,
		now:         time.Now,
	}
}

func (s *taskService) filter(q TaskQuery) model.TaskFilter {
	start := recurrence.DayStart(s.now(), s.loc)
	return model.TaskFilter{
		Section:       q.Section,
		ProjectID:     q.ProjectID,
		BoardColumnID: q.BoardColumnID,
		Today:         q.Today,
		Archived:      q.Archived,
		Deleted:       q.Deleted,
		DayStart:      start,
		DayEnd:        start.AddDate(0, 0, 1),
	}
}

func (s *taskService) List(ctx context.Context, userID string, q TaskQuery) ([]model.Task, error) {
	return s.repo.List(ctx, userID, s.filter(q))
}

func (s *taskService) Calendar(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error) {
	if !to.After(from) {
		return nil, invalidInput("calendar range end must be after its start")
	}
	return s.repo.Calendar(ctx, userID, from, to)
}

func (s *taskService) Get(ctx context.Context, userID, id string) (*model.TaskDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	t, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound("task", err)
	}
	atts, err := s.attachments.ListByTask(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	detail := &model.TaskDetail{Task: *t, Attachments: atts}
	if t.RecurrenceRuleID != nil {
		rule, err := s.rules.FindByID(ctx, userID, *t.RecurrenceRuleID)
		switch {
		case err == nil:
			detail.RecurrenceRule = rule
		case !errors.Is(err, sql.ErrNoRows):
			return nil, err
		}
	}
	return detail, nil
}

func checkRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return invalidInput("end date is before start date")
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, userID string, in TaskCreate) (*model.Task, error) {
	if err := checkRange(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	place, err := s.placement.resolve(ctx, userID, model.Placement{
		Section:          in.Section,
		ProjectID:        in.ProjectID,
		ProjectSectionID: in.ProjectSectionID,
		BoardColumnID:    in.BoardColumnID,
	})
	if err != nil {
		return nil, err
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	t := &model.Task{
		UserID:           userID,
		Title:            in.Title,
		Description:      in.Description,
		Priority:         in.Priority,
		Tags:             tags,
		Section:          place.Section,
		ProjectID:        place.ProjectID,
		ProjectSectionID: place.ProjectSectionID,
		BoardColumnID:    place.BoardColumnID,
		DueDate:          in.DueDate,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
	}
	return s.repo.Create(ctx, t)
}

func (s *taskService) Update(ctx context.Context, userID, id string, in TaskPatch) (*model.Task, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	t, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound("task", err)
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Tags != nil {
		t.Tags = in.Tags
	}
	in.Description.apply(&t.Description)
	in.DueDate.apply(&t.DueDate)
	in.StartDate.apply(&t.StartDate)
	in.EndDate.apply(&t.EndDate)
	in.CompletionNote.apply(&t.CompletionNote)
	if err := checkRange(t.StartDate, t.EndDate); err != nil {
		return nil, err
	}

	out, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, notFound("task", err)
	}
	return out, nil
}

func (s *taskService) Move(ctx context.Context, userID, id string, dest model.Placement, index *int) (*model.Task, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if index != nil && *index < 0 {
		return nil, invalidInput("index must not be negative")
	}
	place, err := s.placement.resolve(ctx, userID, dest)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.Move(ctx, userID, id, place, index)
	if err != nil {
		return nil, notFound("task", err)
	}
	return t, nil
}

func (s *taskService) setCompleted(ctx context.Context, userID, id string, at *time.Time, note *string) (*model.Task, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	n, err := s.repo.SetCompleted(ctx, userID, []string{id}, at, note)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, &NotFoundError{Resource: "task"}
	}
	t, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound("task", err)
	}
	return t, nil
}

func (s *taskService) Complete(ctx context.Context, userID, id string, note *string) (*model.Task, error) {
	now := s.now().UTC()
	return s.setCompleted(ctx, userID, id, &now, note)
}

func (s *taskService) Uncomplete(ctx context.Context, userID, id string) (*model.Task, error) {
	return s.setCompleted(ctx, userID, id, nil, nil)
}

func (s *taskService) SoftDelete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	n, err := s.repo.SoftDelete(ctx, userID, []string{id}, s.now().UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return &NotFoundError{Resource: "task"}
	}
	return nil
}

func (s *taskService) Restore(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return notFound("task", s.repo.Restore(ctx, userID, id))
}

func (s *taskService) HardDelete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	keys, err := s.attachments.KeysByTasks(ctx, userID, []string{id})
	if err != nil {
		return err
	}
	n, err := s.repo.Delete(ctx, userID, []string{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return &NotFoundError{Resource: "task"}
	}
	s.sweeper.sweep(ctx, keys)
	return nil
}

func (s *taskService) BulkComplete(ctx context.Context, userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	now := s.now().UTC()
	return s.repo.SetCompleted(ctx, userID, ids, &now, nil)
}

func (s *taskService) BulkDelete(ctx context.Context, userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.repo.SoftDelete(ctx, userID, ids, s.now().UTC())
}

func (s *taskService) BulkMove(ctx context.Context, userID string, ids []string, dest model.Placement) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	place, err := s.placement.resolve(ctx, userID, dest)
	if err != nil {
		return 0, err
	}
	return s.repo.MoveMany(ctx, userID, ids, place)
}

func (s *taskService) BulkSetDueDate(ctx context.Context, userID string, ids []string, due *time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.repo.SetDueDate(ctx, userID, ids, due)
}

func (s *taskService) Reorder(ctx context.Context, userID string, ids []string) error {
	return orderError("task", s.repo.Reorder(ctx, userID, ids))
}

func (s *taskService) Export(ctx context.Context, userID string, q TaskQuery, format export.Format) ([]byte, error) {
	tasks, err := s.repo.List(ctx, userID, s.filter(q))
	if err != nil {
		return nil, err
	}
	out, err := export.Render(tasks, format)
	if err != nil {
		return nil, invalidInput("%v", err)
	}
	return out, nil
}
