package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"taskboard/internal/export"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// PlacementInput names a destination list in request bodies.
type PlacementInput struct {
	Section          *string `json:"section" validate:"omitempty,oneof=inbox"`
	ProjectID        *string `json:"projectId" validate:"omitempty,uuid"`
	ProjectSectionID *string `json:"projectSectionId" validate:"omitempty,uuid"`
	BoardColumnID    *string `json:"boardColumnId" validate:"omitempty,uuid"`
}

func (p PlacementInput) placement() model.Placement {
	return model.Placement{
		Section:          p.Section,
		ProjectID:        p.ProjectID,
		ProjectSectionID: p.ProjectSectionID,
		BoardColumnID:    p.BoardColumnID,
	}
}

type taskUpdateInput struct {
	ID string `json:"id" validate:"required,uuid"`
	service.TaskPatch
}

type taskMoveInput struct {
	ID string `json:"id" validate:"required,uuid"`
	PlacementInput
	Index *int `json:"index" validate:"omitempty,min=0"`
}

type taskCompleteInput struct {
	ID   string  `json:"id" validate:"required,uuid"`
	Note *string `json:"note" validate:"omitempty,max=5000"`
}

type bulkMoveInput struct {
	IDs []string `json:"ids" validate:"required,dive,uuid"`
	PlacementInput
}

type bulkDueDateInput struct {
	IDs     []string   `json:"ids" validate:"required,dive,uuid"`
	DueDate *time.Time `json:"dueDate"`
}

type calendarInput struct {
	From time.Time `json:"from" validate:"required"`
	To   time.Time `json:"to" validate:"required"`
}

type exportInput struct {
	Format export.Format `json:"format" validate:"omitempty,oneof=text yaml"`
	service.TaskQuery
}

type exportResult struct {
	Format      export.Format `json:"format"`
	ContentType string        `json:"contentType"`
	Content     string        `json:"content"`
}

type countResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

func counted(n int, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return countResult{Success: true, Count: n}, nil
}

func (r *RPC) registerTasks() {
	tasks := r.svc.Tasks

	r.handle("tasks.list", call(func(c *fiber.Ctx, userID string, in service.TaskQuery) (any, error) {
		return tasks.List(c.UserContext(), userID, in)
	}))
	r.handle("tasks.getById", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return tasks.Get(c.UserContext(), userID, in.ID)
	}))
	r.handle("tasks.create", call(func(c *fiber.Ctx, userID string, in service.TaskCreate) (any, error) {
		return tasks.Create(c.UserContext(), userID, in)
	}))
	r.handle("tasks.update", call(func(c *fiber.Ctx, userID string, in taskUpdateInput) (any, error) {
		return tasks.Update(c.UserContext(), userID, in.ID, in.TaskPatch)
	}))
	r.handle("tasks.move", call(func(c *fiber.Ctx, userID string, in taskMoveInput) (any, error) {
		return tasks.Move(c.UserContext(), userID, in.ID, in.placement(), in.Index)
	}))
	r.handle("tasks.complete", call(func(c *fiber.Ctx, userID string, in taskCompleteInput) (any, error) {
		return tasks.Complete(c.UserContext(), userID, in.ID, in.Note)
	}))
	r.handle("tasks.uncomplete", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return tasks.Uncomplete(c.UserContext(), userID, in.ID)
	}))
	r.handle("tasks.softDelete", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return done(tasks.SoftDelete(c.UserContext(), userID, in.ID))
	}))
	r.handle("tasks.restore", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return done(tasks.Restore(c.UserContext(), userID, in.ID))
	}))
	r.handle("tasks.hardDelete", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return done(tasks.HardDelete(c.UserContext(), userID, in.ID))
	}))
	r.handle("tasks.bulkComplete", call(func(c *fiber.Ctx, userID string, in idsInput) (any, error) {
		return counted(tasks.BulkComplete(c.UserContext(), userID, in.IDs))
	}))
	r.handle("tasks.bulkDelete", call(func(c *fiber.Ctx, userID string, in idsInput) (any, error) {
		return counted(tasks.BulkDelete(c.UserContext(), userID, in.IDs))
	}))
	r.handle("tasks.bulkMove", call(func(c *fiber.Ctx, userID string, in bulkMoveInput) (any, error) {
		return counted(tasks.BulkMove(c.UserContext(), userID, in.IDs, in.placement()))
	}))
	r.handle("tasks.bulkSetDueDate", call(func(c *fiber.Ctx, userID string, in bulkDueDateInput) (any, error) {
		return counted(tasks.BulkSetDueDate(c.UserContext(), userID, in.IDs, in.DueDate))
	}))
	r.handle("tasks.reorder", call(func(c *fiber.Ctx, userID string, in idsInput) (any, error) {
		return done(tasks.Reorder(c.UserContext(), userID, in.IDs))
	}))
	r.handle("tasks.calendar", call(func(c *fiber.Ctx, userID string, in calendarInput) (any, error) {
		return tasks.Calendar(c.UserContext(), userID, in.From, in.To)
	}))
	r.handle("tasks.export", call(func(c *fiber.Ctx, userID string, in exportInput) (any, error) {
		format := in.Format
		if format == "" {
			format = export.FormatText
		}
		body, err := tasks.Export(c.UserContext(), userID, in.TaskQuery, format)
		if err != nil {
			return nil, err
		}
		return exportResult{Format: format, ContentType: format.ContentType(), Content: string(body)}, nil
	}))
}
