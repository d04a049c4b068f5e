package model

import "time"

// Attachment is a file stored in object storage and linked to a task.
type Attachment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Filename  string    `json:"filename"`
	MimeType  *string   `json:"mime_type,omitempty"`
	Size      *int64    `json:"size,omitempty"`
	S3Key     string    `json:"s3_key"`
	CreatedAt time.Time `json:"created_at"`
}
