package model

// PriorityCount is the number of open tasks with a given priority.
type PriorityCount struct {
	Priority int `json:"priority"`
	Count    int `json:"count"`
}

// DailyActivity is the number of tasks created and completed on one calendar day.
type DailyActivity struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// TaskCounters are the scalar counters of the statistics overview.
type TaskCounters struct {
	TotalOpen          int `json:"total_open"`
	TotalCompleted     int `json:"total_completed"`
	CreatedThisWeek    int `json:"created_this_week"`
	CompletedThisWeek  int `json:"completed_this_week"`
	CreatedThisMonth   int `json:"created_this_month"`
	CompletedThisMonth int `json:"completed_this_month"`
	TotalDeleted       int `json:"total_deleted"`
}

// StatsOverview is the statistics page payload.
type StatsOverview struct {
	TaskCounters
	ByPriority []PriorityCount `json:"by_priority"`
	DailyData  []DailyActivity `json:"daily_data"`
}
