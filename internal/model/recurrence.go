package model

import "time"

// Frequency is how often a recurrence rule fires.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// DefaultRuleTimezone is applied when a rule is created without a time zone.
const DefaultRuleTimezone = "Europe/Amsterdam"

// RecurrenceRule is a template that periodically spawns a new task.
type RecurrenceRule struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Frequency       Frequency  `json:"frequency"`
	Interval        int        `json:"interval"`
	DaysOfWeek      []int      `json:"days_of_week"`
	DayOfMonth      *int       `json:"day_of_month,omitempty"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Priority        int        `json:"priority"`
	Tags            []string   `json:"tags"`
	Section         *string    `json:"section,omitempty"`
	ProjectID       *string    `json:"project_id,omitempty"`
	Timezone        string     `json:"timezone"`
	LastGeneratedAt *time.Time `json:"last_generated_at,omitempty"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`

	// ProjectTrashed is set by ListActive when ProjectID points at a soft-deleted project.
	ProjectTrashed bool `json:"-"`
}
