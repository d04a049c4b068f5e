package service

import (
	"context"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// RuleInput is the input of RecurrenceService.Create and Update. A rule
// targets the inbox unless ProjectID is set.
type RuleInput struct {
	Frequency   model.Frequency `json:"frequency" validate:"required,oneof=daily weekly monthly custom"`
	Interval    int             `json:"interval" validate:"omitempty,min=1,max=365"`
	DaysOfWeek  []int           `json:"daysOfWeek" validate:"omitempty,max=7,dive,min=0,max=6"`
	DayOfMonth  *int            `json:"dayOfMonth" validate:"omitempty,min=1,max=31"`
	Title       string          `json:"title" validate:"required,min=1,max=500"`
	Description *string         `json:"description" validate:"omitempty,max=10000"`
	Priority    int             `json:"priority" validate:"min=0,max=4"`
	Tags        []string        `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	Section     *string         `json:"section" validate:"omitempty,oneof=inbox"`
	ProjectID   *string         `json:"projectId" validate:"omitempty,uuid"`
	Timezone    string          `json:"timezone" validate:"omitempty,timezone"`
	Active      *bool           `json:"active"`
}

// RecurrenceService defines the use cases for recurrence rules.
type RecurrenceService interface {
	List(ctx context.Context, userID string) ([]model.RecurrenceRule, error)
	Create(ctx context.Context, userID string, in RuleInput) (*model.RecurrenceRule, error)
	Update(ctx context.Context, userID, id string, in RuleInput) (*model.RecurrenceRule, error)
	Delete(ctx context.Context, userID, id string) error
}

type recurrenceService struct {
	repo     repository.RecurrenceRepository
	projects repository.ProjectRepository
}

// NewRecurrenceService constructs a new RecurrenceService.
func NewRecurrenceService(repo repository.RecurrenceRepository, projects repository.ProjectRepository) RecurrenceService {
	return &recurrenceService{repo: repo, projects: projects}
}

func (s *recurrenceService) List(ctx context.Context, userID string) ([]model.RecurrenceRule, error) {
	return s.repo.List(ctx, userID)
}

// apply validates in against the user's data and copies it onto r.
func (s *recurrenceService) apply(ctx context.Context, userID string, in RuleInput, r *model.RecurrenceRule) error {
	switch in.Frequency {
	case model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyMonthly, model.FrequencyCustom:
	default:
		return invalidInput("unknown frequency %q", in.Frequency)
	}
	for _, d := range in.DaysOfWeek {
		if d < 0 || d > 6 {
			return invalidInput("day of week %d out of range", d)
		}
	}
	if in.DayOfMonth != nil && (*in.DayOfMonth < 1 || *in.DayOfMonth > 31) {
		return invalidInput("day of month %d out of range", *in.DayOfMonth)
	}

	tz := in.Timezone
	if tz == "" {
		tz = model.DefaultRuleTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return invalidInput("unknown time zone %q", tz)
	}

	r.Section, r.ProjectID = nil, nil
	switch {
	case in.ProjectID != nil && in.Section != nil:
		return invalidPlacement("a rule targets a project or the inbox, not both")
	case in.ProjectID != nil:
		p, err := s.projects.FindByID(ctx, userID, *in.ProjectID)
		if err != nil {
			return notFound("project", err)
		}
		if p.DeletedAt != nil {
			return invalidPlacement("project is in the trash")
		}
		r.ProjectID = in.ProjectID
	default:
		inbox := model.SectionInbox
		r.Section = &inbox
	}

	r.Frequency = in.Frequency
	r.Interval = in.Interval
	if r.Interval < 1 {
		r.Interval = 1
	}
	r.DaysOfWeek = in.DaysOfWeek
	if r.DaysOfWeek == nil {
		r.DaysOfWeek = []int{}
	}
	r.DayOfMonth = in.DayOfMonth
	r.Title = in.Title
	r.Description = in.Description
	r.Priority = in.Priority
	r.Tags = in.Tags
	if r.Tags == nil {
		r.Tags = []string{}
	}
	r.Timezone = tz
	if in.Active != nil {
		r.Active = *in.Active
	}
	return nil
}

func (s *recurrenceService) Create(ctx context.Context, userID string, in RuleInput) (*model.RecurrenceRule, error) {
	r := &model.RecurrenceRule{UserID: userID, Active: true}
	if err := s.apply(ctx, userID, in, r); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, r)
}

func (s *recurrenceService) Update(ctx context.Context, userID, id string, in RuleInput) (*model.RecurrenceRule, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	r, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound("recurrence rule", err)
	}
	if err := s.apply(ctx, userID, in, r); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(ctx, r)
	if err != nil {
		return nil, notFound("recurrence rule", err)
	}
	return out, nil
}

func (s *recurrenceService) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return notFound("recurrence rule", s.repo.Delete(ctx, userID, id))
}
