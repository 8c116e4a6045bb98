package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/service/roster"
)

// Groups implements GroupsUseCase: fetch the roster, parse it, and join
// in the stored queue statuses by group number.
type Groups struct {
	source interfaces.RosterSource
	repo   interfaces.Repository
}

// NewGroups creates a Groups use case. A nil source means the roster URL
// is unconfigured; List then fails with a configuration error.
func NewGroups(source interfaces.RosterSource, repo interfaces.Repository) *Groups {
	return &Groups{
		source: source,
		repo:   repo,
	}
}

// List returns the current roster with statuses merged in
func (u *Groups) List(ctx context.Context) ([]model.Group, error) {
	if u.source == nil {
		return nil, goerr.New("Roster source URL not configured",
			goerr.T(model.ErrTagConfig))
	}

	text, err := u.source.Fetch(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch roster")
	}

	groups := roster.ParseRoster(ctx, text)

	statuses, err := u.repo.ListStatuses(ctx)
	if err != nil {
		// The roster is still usable; statuses just fall back to waiting
		ctxlog.From(ctx).Warn("Failed to load group statuses", "error", err)
		return groups, nil
	}

	for i := range groups {
		if status, ok := statuses[groups[i].GroupNumber]; ok {
			groups[i].Status = status
		}
	}

	return groups, nil
}
