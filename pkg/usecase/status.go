package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
	"github.com/wedlock-lab/mandap/pkg/utils/async"
)

// Status implements StatusUseCase over the repository, with watcher
// fan-out on every successful Set. Transitions are operator-driven: any
// status may be set to any other.
type Status struct {
	repo interfaces.Repository

	mu       sync.RWMutex
	watchers []func(types.GroupNumber, types.QueueStatus)
}

// NewStatus creates a Status use case
func NewStatus(repo interfaces.Repository) *Status {
	return &Status{
		repo: repo,
	}
}

// Get returns the status for a group, defaulting to waiting
func (u *Status) Get(ctx context.Context, groupNumber types.GroupNumber) (types.QueueStatus, error) {
	status, err := u.repo.GetStatus(ctx, groupNumber)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get group status",
			goerr.V("groupNumber", groupNumber))
	}
	return status, nil
}

// Set records a new status for a group and notifies watchers
func (u *Status) Set(ctx context.Context, groupNumber types.GroupNumber, status types.QueueStatus) error {
	if !status.IsValid() {
		return goerr.New("invalid queue status",
			goerr.V("status", status),
			goerr.T(model.ErrTagValidation))
	}

	if err := u.repo.SetStatus(ctx, groupNumber, status); err != nil {
		return goerr.Wrap(err, "failed to set group status",
			goerr.V("groupNumber", groupNumber))
	}

	u.mu.RLock()
	watchers := make([]func(types.GroupNumber, types.QueueStatus), len(u.watchers))
	copy(watchers, u.watchers)
	u.mu.RUnlock()

	for _, fn := range watchers {
		fn := fn
		async.Dispatch(ctx, func(ctx context.Context) error {
			fn(groupNumber, status)
			return nil
		})
	}

	return nil
}

// List returns every recorded group status
func (u *Status) List(ctx context.Context) (map[types.GroupNumber]types.QueueStatus, error) {
	statuses, err := u.repo.ListStatuses(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list group statuses")
	}
	return statuses, nil
}

// Subscribe registers a watcher invoked asynchronously after every
// successful Set. Watchers must not block on the caller's lifetime.
func (u *Status) Subscribe(fn func(types.GroupNumber, types.QueueStatus)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.watchers = append(u.watchers, fn)
}
