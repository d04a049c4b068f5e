package model

import "time"

// BoardColumn is a Kanban stage inside a project or the inbox.
// Exactly one of ProjectID and Section is set.
type BoardColumn struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProjectID *string   `json:"project_id,omitempty"`
	Section   *string   `json:"section,omitempty"`
	Name      string    `json:"name"`
	Color     *string   `json:"color,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`

	// OpenTaskCount is only populated by listings.
	OpenTaskCount int `json:"open_task_count"`
}

// ColumnTemplate describes a column created by default for new boards.
type ColumnTemplate struct {
	Name  string
	Color string
}

// DefaultColumns are created, in order, for every new project and for a user's inbox.
// The last column is the terminal one that stale completed tasks are archived into.
var DefaultColumns = []ColumnTemplate{
	{Name: "Idea", Color: "#a78bfa"},
	{Name: "To do", Color: "#60a5fa"},
	{Name: "In progress", Color: "#fbbf24"},
	{Name: "Testing", Color: "#fb923c"},
	{Name: "Done", Color: "#34d399"},
}
