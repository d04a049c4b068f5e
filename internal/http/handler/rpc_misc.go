package handler

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

type ruleUpdateInput struct {
	ID string `json:"id" validate:"required,uuid"`
	service.RuleInput
}

type statsInput struct {
	ProjectID *string `json:"projectId" validate:"omitempty,uuid"`
}

type viewPreferenceSetInput struct {
	service.ViewTarget
	ViewMode model.ViewMode `json:"viewMode" validate:"required,oneof=list kanban"`
}

func (r *RPC) registerRecurrence() {
	rules := r.svc.Recurrence

	r.handle("recurrence.list", func(c *fiber.Ctx, userID string) (any, error) {
		return rules.List(c.UserContext(), userID)
	})
	r.handle("recurrence.create", call(func(c *fiber.Ctx, userID string, in service.RuleInput) (any, error) {
		return rules.Create(c.UserContext(), userID, in)
	}))
	r.handle("recurrence.update", call(func(c *fiber.Ctx, userID string, in ruleUpdateInput) (any, error) {
		return rules.Update(c.UserContext(), userID, in.ID, in.RuleInput)
	}))
	r.handle("recurrence.delete", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return done(rules.Delete(c.UserContext(), userID, in.ID))
	}))
}

func (r *RPC) registerStats() {
	r.handle("stats.overview", call(func(c *fiber.Ctx, userID string, in statsInput) (any, error) {
		return r.svc.Stats.Overview(c.UserContext(), userID, in.ProjectID)
	}))
}

func (r *RPC) registerViewPreferences() {
	prefs := r.svc.ViewPreferences

	r.handle("viewPreferences.get", call(func(c *fiber.Ctx, userID string, in service.ViewTarget) (any, error) {
		return prefs.Get(c.UserContext(), userID, in)
	}))
	r.handle("viewPreferences.set", call(func(c *fiber.Ctx, userID string, in viewPreferenceSetInput) (any, error) {
		return prefs.Set(c.UserContext(), userID, in.ViewTarget, in.ViewMode)
	}))
}
