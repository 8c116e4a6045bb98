package interfaces

import (
	"context"

	"github.com/wedlock-lab/mandap/pkg/domain/model"
)

// Sender delivers one message over one channel. It returns the
// provider-native delivery status on success. A failed attempt returns an
// error and must not affect sibling channels; the caller records it as
// "failed" and moves on.
type Sender interface {
	Send(ctx context.Context, member model.GroupMember, text string) (string, error)
}

// OpsNotifier posts operator-facing notices (dispatch summaries, status
// changes) to an internal channel. Implementations must be safe to call
// when unconfigured.
type OpsNotifier interface {
	NotifyDispatch(ctx context.Context, record *model.DispatchRecord)
	NotifyStatusChange(ctx context.Context, group string, status string)
}
