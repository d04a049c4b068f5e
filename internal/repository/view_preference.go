package repository

import (
	"context"

	"taskboard/internal/model"
)

// ViewPreferenceRepository stores one view mode per user and list.
type ViewPreferenceRepository interface {
	Get(ctx context.Context, userID string, section, projectID *string) (*model.ViewPreference, error)
	Upsert(ctx context.Context, p *model.ViewPreference) (*model.ViewPreference, error)
}
