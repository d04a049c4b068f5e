package repository

import "time"

// Package repository contains data access layer abstractions.
// Implementations can live in subpackages (e.g., postgres, mongo) inside this directory.
// Every lookup is scoped to the owning user; rows of other users behave as missing
// and surface sql.ErrNoRows.

// PurgeResult reports what a trash purge removed.
type PurgeResult struct {
	Deleted        int
	AttachmentKeys []string
}

// StatsWindow bounds the rolling windows of the statistics overview.
type StatsWindow struct {
	WeekStart  time.Time
	MonthStart time.Time
	DailyFrom  time.Time
	Timezone   string
}
