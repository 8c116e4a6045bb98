package usecase

import (
	"context"

	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
)

// AuthUseCase defines the interface for dashboard authentication
type AuthUseCase interface {
	// Login checks the shared password and issues a token
	Login(ctx context.Context, password string) (string, error)

	// Verify reports whether a token was issued against the current password
	Verify(ctx context.Context, token string) bool
}

// GroupsUseCase defines the interface for roster access
type GroupsUseCase interface {
	// List fetches the roster and joins in stored queue statuses
	List(ctx context.Context) ([]model.Group, error)
}

// NotifyUseCase defines the interface for notification dispatch
type NotifyUseCase interface {
	// Dispatch fans a go-time notification out to every member of a group
	Dispatch(ctx context.Context, req *model.NotificationRequest) (*model.NotificationResponse, error)

	// RecentDispatches lists audit records, newest first
	RecentDispatches(ctx context.Context, limit int) ([]*model.DispatchRecord, error)

	// DryRun reports whether the dispatcher is in dry-run mode
	DryRun() bool
}

// StatusUseCase defines the interface for the group status store
type StatusUseCase interface {
	Get(ctx context.Context, groupNumber types.GroupNumber) (types.QueueStatus, error)
	Set(ctx context.Context, groupNumber types.GroupNumber, status types.QueueStatus) error
	List(ctx context.Context) (map[types.GroupNumber]types.QueueStatus, error)

	// Subscribe registers a watcher invoked after every successful Set
	Subscribe(fn func(types.GroupNumber, types.QueueStatus))
}
