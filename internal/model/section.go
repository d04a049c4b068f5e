package model

import "time"

// ProjectSection is a swimlane inside a project, orthogonal to board columns.
type ProjectSection struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// SectionDeleteMode selects what happens to a section's tasks when it is deleted.
type SectionDeleteMode string

const (
	// SectionMoveToNone keeps the tasks in the project without a section.
	SectionMoveToNone SectionDeleteMode = "MOVE_TO_NONE"
	// SectionTrash moves the tasks to the trash.
	SectionTrash SectionDeleteMode = "TRASH"
)
