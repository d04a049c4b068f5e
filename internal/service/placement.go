package service

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// placementResolver checks that a task destination is consistent and owned by
// the user.
type placementResolver struct {
	projects repository.ProjectRepository
	sections repository.SectionRepository
	columns  repository.ColumnRepository
}

// resolve returns p normalized: a project section implies its project, and a
// destination without a project is the inbox.
func (r placementResolver) resolve(ctx context.Context, userID string, p model.Placement) (model.Placement, error) {
	out := model.Placement{ProjectSectionID: p.ProjectSectionID, BoardColumnID: p.BoardColumnID}
	projectID := p.ProjectID

	if p.Section != nil {
		if *p.Section != model.SectionInbox {
			return out, invalidPlacement("unknown section %q", *p.Section)
		}
		if projectID != nil || p.ProjectSectionID != nil {
			return out, invalidPlacement("a task cannot be in the inbox and in a project")
		}
	}

	if p.ProjectSectionID != nil {
		s, err := r.sections.FindByID(ctx, userID, *p.ProjectSectionID)
		if err != nil {
			return out, notFound("section", err)
		}
		if projectID != nil && *projectID != s.ProjectID {
			return out, invalidPlacement("section belongs to another project")
		}
		projectID = &s.ProjectID
	}

	if projectID != nil {
		proj, err := r.projects.FindByID(ctx, userID, *projectID)
		if err != nil {
			return out, notFound("project", err)
		}
		if proj.DeletedAt != nil {
			return out, invalidPlacement("project is in the trash")
		}
		out.ProjectID = projectID
	} else {
		inbox := model.SectionInbox
		out.Section = &inbox
	}

	if p.BoardColumnID != nil {
		c, err := r.columns.FindByID(ctx, userID, *p.BoardColumnID)
		if err != nil {
			return out, notFound("column", err)
		}
		switch {
		case out.ProjectID != nil && (c.ProjectID == nil || *c.ProjectID != *out.ProjectID):
			return out, invalidPlacement("column belongs to another board")
		case out.ProjectID == nil && c.ProjectID != nil:
			return out, invalidPlacement("column belongs to a project board")
		}
	}
	return out, nil
}
