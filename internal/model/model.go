// Package model contains the domain models shared across layers.
// Models are plain structs with JSON tags only; persistence details live in the repositories.
package model

// SectionInbox is the only global section: the default, project-less task container.
const SectionInbox = "inbox"

// Priority bounds for tasks and recurrence templates.
const (
	PriorityMin = 0
	PriorityMax = 4
)

// ProjectRef is the trimmed project view embedded in task listings.
type ProjectRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ColumnRef is the trimmed board column view embedded in task listings.
type ColumnRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}
