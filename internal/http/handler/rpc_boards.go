package handler

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

type columnListInput struct {
	ProjectID *string `json:"projectId" validate:"omitempty,uuid"`
	Section   *string `json:"section" validate:"omitempty,oneof=inbox"`
}

type columnUpdateInput struct {
	ID string `json:"id" validate:"required,uuid"`
	service.ColumnPatch
}

type sectionListInput struct {
	ProjectID string `json:"projectId" validate:"required,uuid"`
}

type sectionCreateInput struct {
	ProjectID string `json:"projectId" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=100"`
}

type sectionUpdateInput struct {
	ID   string `json:"id" validate:"required,uuid"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type sectionDeleteInput struct {
	ID   string                  `json:"id" validate:"required,uuid"`
	Mode model.SectionDeleteMode `json:"mode" validate:"omitempty,oneof=MOVE_TO_NONE TRASH"`
}

func (r *RPC) registerColumns() {
	columns := r.svc.Columns

	r.handle("columns.list", call(func(c *fiber.Ctx, userID string, in columnListInput) (any, error) {
		if in.ProjectID != nil && in.Section != nil {
			return nil, service.ErrInvalidPlacement
		}
		return columns.List(c.UserContext(), userID, in.ProjectID)
	}))
	r.handle("columns.create", call(func(c *fiber.Ctx, userID string, in service.ColumnCreate) (any, error) {
		return columns.Create(c.UserContext(), userID, in)
	}))
	r.handle("columns.update", call(func(c *fiber.Ctx, userID string, in columnUpdateInput) (any, error) {
		return columns.Update(c.UserContext(), userID, in.ID, in.ColumnPatch)
	}))
	r.handle("columns.delete", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return done(columns.Delete(c.UserContext(), userID, in.ID))
	}))
	r.handle("columns.reorder", call(func(c *fiber.Ctx, userID string, in idsInput) (any, error) {
		return done(columns.Reorder(c.UserContext(), userID, in.IDs))
	}))
}

func (r *RPC) registerSections() {
	sections := r.svc.Sections

	r.handle("sections.list", call(func(c *fiber.Ctx, userID string, in sectionListInput) (any, error) {
		return sections.List(c.UserContext(), userID, in.ProjectID)
	}))
	r.handle("sections.create", call(func(c *fiber.Ctx, userID string, in sectionCreateInput) (any, error) {
		return sections.Create(c.UserContext(), userID, in.ProjectID, in.Name)
	}))
	r.handle("sections.update", call(func(c *fiber.Ctx, userID string, in sectionUpdateInput) (any, error) {
		return sections.Rename(c.UserContext(), userID, in.ID, in.Name)
	}))
	r.handle("sections.delete", call(func(c *fiber.Ctx, userID string, in sectionDeleteInput) (any, error) {
		return done(sections.Delete(c.UserContext(), userID, in.ID, in.Mode))
	}))
	r.handle("sections.reorder", call(func(c *fiber.Ctx, userID string, in idsInput) (any, error) {
		return done(sections.Reorder(c.UserContext(), userID, in.IDs))
	}))
}
