package interfaces

import (
	"context"

	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	// Status operations. GetStatus returns QueueStatusWaiting for any
	// group number that has never been set.
	GetStatus(ctx context.Context, groupNumber types.GroupNumber) (types.QueueStatus, error)
	SetStatus(ctx context.Context, groupNumber types.GroupNumber, status types.QueueStatus) error
	ListStatuses(ctx context.Context) (map[types.GroupNumber]types.QueueStatus, error)

	// Dispatch audit operations
	SaveDispatch(ctx context.Context, record *model.DispatchRecord) error
	ListDispatches(ctx context.Context, limit int) ([]*model.DispatchRecord, error)

	// Close closes the repository connection
	Close() error
}
