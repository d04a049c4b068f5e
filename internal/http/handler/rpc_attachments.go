package handler

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/internal/http/middleware"
	"taskboard/internal/service"
)

type taskIDInput struct {
	TaskID string `json:"taskId" validate:"required,uuid"`
}

func (r *RPC) registerAttachments() {
	attachments := r.svc.Attachments

	r.handle("attachments.getUploadUrl", call(func(c *fiber.Ctx, userID string, in service.UploadRequest) (any, error) {
		return attachments.UploadURL(c.UserContext(), userID, in)
	}))
	r.handle("attachments.getDownloadUrl", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return attachments.DownloadURL(c.UserContext(), userID, in.ID)
	}))
	r.handle("attachments.listByTask", call(func(c *fiber.Ctx, userID string, in taskIDInput) (any, error) {
		return attachments.ListByTask(c.UserContext(), userID, in.TaskID)
	}))
	r.handle("attachments.delete", call(func(c *fiber.Ctx, userID string, in idInput) (any, error) {
		return done(attachments.Delete(c.UserContext(), userID, in.ID))
	}))
}

// Upload handles attachments.upload: a multipart form with a taskId field
// and the content under "file".
func (r *RPC) Upload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := taskIDInput{TaskID: c.FormValue("taskId")}
		if err := check(in); err != nil {
			return fail(c, r.log, err)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeErrorFields(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "validation failed",
				map[string]string{"file": "is required"})
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		att, err := r.svc.Attachments.Upload(c.UserContext(), middleware.UserID(c), in.TaskID, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return fail(c, r.log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(att)
	}
}

// Download streams an attachment's content as a file download.
func (r *RPC) Download() fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := idInput{ID: c.Params("id")}
		if err := check(in); err != nil {
			return fail(c, r.log, err)
		}

		rc, att, err := r.svc.Attachments.Open(c.UserContext(), middleware.UserID(c), in.ID)
		if err != nil {
			return fail(c, r.log, err)
		}

		c.Attachment(att.Filename)
		if att.MimeType != nil && *att.MimeType != "" {
			c.Set(fiber.HeaderContentType, *att.MimeType)
		}
		if att.Size != nil {
			return c.SendStream(rc, int(*att.Size))
		}
		return c.SendStream(rc)
	}
}
