package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"taskboard/internal/http/middleware"
	"taskboard/internal/service"
)

// Services groups the application services served over RPC.
type Services struct {
	Projects        service.ProjectService
	Tasks           service.TaskService
	Columns         service.ColumnService
	Sections        service.SectionService
	Attachments     service.AttachmentService
	Recurrence      service.RecurrenceService
	Stats           service.StatsService
	ViewPreferences service.ViewPreferenceService
}

// procedure handles one RPC call for the authenticated user.
type procedure func(c *fiber.Ctx, userID string) (any, error)

// RPC dispatches POST /rpc/:procedure calls by name.
type RPC struct {
	svc   Services
	log   logrus.FieldLogger
	procs map[string]procedure
}

// success is returned by procedures that have no result.
var success = fiber.Map{"success": true}

type idInput struct {
	ID string `json:"id" validate:"required,uuid"`
}

type idsInput struct {
	IDs []string `json:"ids" validate:"required,dive,uuid"`
}

func NewRPC(svc Services, log logrus.FieldLogger) *RPC {
	r := &RPC{svc: svc, log: log}
	r.procs = make(map[string]procedure)
	r.registerProjects()
	r.registerTasks()
	r.registerColumns()
	r.registerSections()
	r.registerAttachments()
	r.registerRecurrence()
	r.registerStats()
	r.registerViewPreferences()
	return r
}

func (r *RPC) handle(name string, p procedure) {
	r.procs[name] = p
}

// Procedures returns the registered procedure names.
func (r *RPC) Procedures() []string {
	out := make([]string, 0, len(r.procs))
	for name := range r.procs {
		out = append(out, name)
	}
	return out
}

// Dispatch runs the procedure named by the :procedure route parameter.
func (r *RPC) Dispatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := r.procs[c.Params("procedure")]
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "unknown procedure")
		}
		out, err := p(c, middleware.UserID(c))
		if err != nil {
			return fail(c, r.log, err)
		}
		return c.JSON(out)
	}
}

// call adapts a typed procedure body to the dispatcher: it binds and
// validates the input before fn runs.
func call[T any](fn func(c *fiber.Ctx, userID string, in T) (any, error)) procedure {
	return func(c *fiber.Ctx, userID string) (any, error) {
		in, err := bind[T](c)
		if err != nil {
			return nil, err
		}
		return fn(c, userID, in)
	}
}

// done turns an error-only service call into a procedure result.
func done(err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return success, nil
}
