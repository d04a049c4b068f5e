package model

import "time"

// Task is a single work item. It lives either in the inbox (Section set) or in a
// project (ProjectID set), optionally in one project section and one board column.
type Task struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"user_id"`
	Title                string     `json:"title"`
	Description          *string    `json:"description,omitempty"`
	Priority             int        `json:"priority"`
	Tags                 []string   `json:"tags"`
	Section              *string    `json:"section,omitempty"`
	ProjectID            *string    `json:"project_id,omitempty"`
	ProjectSectionID     *string    `json:"project_section_id,omitempty"`
	BoardColumnID        *string    `json:"board_column_id,omitempty"`
	DueDate              *time.Time `json:"due_date,omitempty"`
	StartDate            *time.Time `json:"start_date,omitempty"`
	EndDate              *time.Time `json:"end_date,omitempty"`
	Position             int        `json:"position"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	CompletionNote       *string    `json:"completion_note,omitempty"`
	DeletedAt            *time.Time `json:"deleted_at,omitempty"`
	DeletedFromProjectID *string    `json:"deleted_from_project_id,omitempty"`
	RecurrenceRuleID     *string    `json:"recurrence_rule_id,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	// Populated by listings.
	Project         *ProjectRef `json:"project,omitempty"`
	BoardColumn     *ColumnRef  `json:"board_column,omitempty"`
	AttachmentCount int         `json:"attachment_count"`
}

// Placement identifies the list a task belongs to: inbox or project, plus the
// optional project section and board column.
type Placement struct {
	Section          *string `json:"section,omitempty"`
	ProjectID        *string `json:"project_id,omitempty"`
	ProjectSectionID *string `json:"project_section_id,omitempty"`
	BoardColumnID    *string `json:"board_column_id,omitempty"`
}

// Placement returns the list the task currently belongs to.
func (t *Task) Placement() Placement {
	return Placement{
		Section:          t.Section,
		ProjectID:        t.ProjectID,
		ProjectSectionID: t.ProjectSectionID,
		BoardColumnID:    t.BoardColumnID,
	}
}

// TaskDetail is a task with its project, column, attachments and recurrence rule.
type TaskDetail struct {
	Task
	Attachments    []Attachment    `json:"attachments"`
	RecurrenceRule *RecurrenceRule `json:"recurrence_rule,omitempty"`
}

// TaskFilter selects tasks for listings.
type TaskFilter struct {
	Section       *string
	ProjectID     *string
	BoardColumnID *string
	Today         bool
	Archived      bool
	Deleted       bool
	// DayStart and DayEnd bound "today" in the caller's time zone.
	DayStart time.Time
	DayEnd   time.Time
}
