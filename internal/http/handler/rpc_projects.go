package handler

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

type projectUpdateInput struct {
	ID string `json:"id" validate:"required,uuid"`
	service.ProjectPatch
}

type projectHardDeleteInput struct {
	ID   string                      `json:"id" validate:"required,uuid"`
	Mode model.ProjectHardDeleteMode `json:"mode" validate:"omitempty,oneof=TRASH_TASKS DELETE_ALL"`
}

func (r *RPC) registerProjects() {
	projects := r.svc.Projects

	r.handle("projects.list", func(c *fiber.Ctx, userID string) (any, error) {
		return projects.List(c.UserContext(), userID)
	})
	r.handle("projects.listTrashed", func(c *fiber.Ctx, userID string) (any, error) {
		return projects.ListTrashed(c.UserContext(), userID)
	})
	r.handle("projects.getById", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return projects.Get(c.UserContext(), userID, in.ID)
	}))
	r.handle("projects.create", call(func(c *fiber.Ctx, userID string, in service.ProjectCreate) (any, error) {
		return projects.Create(c.UserContext(), userID, in)
	}))
	r.handle("projects.update", call(func(c *fiber.Ctx, userID string, in projectUpdateInput) (any, error) {
		return projects.Update(c.UserContext(), userID, in.ID, in.ProjectPatch)
	}))
	r.handle("projects.softDelete", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return done(projects.SoftDelete(c.UserContext(), userID, in.ID))
	}))
	r.handle("projects.restore", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return done(projects.Restore(c.UserContext(), userID, in.ID))
	}))
	r.handle("projects.hardDelete", call(func(c *fiber.Ctx, userID string, in projectHardDeleteInput) (any, error) {
		return done(projects.HardDelete(c.UserContext(), userID, in.ID, in.Mode))
	}))
	r.handle("projects.reorder", call(func(c *fiber.Ctx, userID string, in idsInput) (any, error) {
		return done(projects.Reorder(c.UserContext(), userID, in.IDs))
	}))
}
