package model

// ViewMode is how a list is rendered.
type ViewMode string

const (
	ViewList   ViewMode = "list"
	ViewKanban ViewMode = "kanban"
)

// ViewPreference remembers the view mode a user picked for the inbox or a project.
type ViewPreference struct {
	ID        string   `json:"id,omitempty"`
	UserID    string   `json:"user_id,omitempty"`
	Section   *string  `json:"section,omitempty"`
	ProjectID *string  `json:"project_id,omitempty"`
	ViewMode  ViewMode `json:"view_mode"`
}
