package model

import "time"

// DefaultProjectColor is used when a project is created without a color.
const DefaultProjectColor = "#6366f1"

// Project groups tasks, board columns and sections for one user.
type Project struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Color       string     `json:"color"`
	Position    int        `json:"position"`
	Archived    bool       `json:"archived"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// OpenTaskCount is only populated by listings.
	OpenTaskCount int `json:"open_task_count"`
}

// ProjectDetail is a project with its board columns and sections, both in position order.
type ProjectDetail struct {
	Project
	Columns  []BoardColumn    `json:"columns"`
	Sections []ProjectSection `json:"sections"`
}

// ProjectHardDeleteMode selects what happens to a project's tasks on permanent deletion.
type ProjectHardDeleteMode string

const (
	// HardDeleteTrashTasks detaches the tasks and moves them to the trash.
	HardDeleteTrashTasks ProjectHardDeleteMode = "TRASH_TASKS"
	// HardDeleteAll deletes the tasks together with the project.
	HardDeleteAll ProjectHardDeleteMode = "DELETE_ALL"
)
