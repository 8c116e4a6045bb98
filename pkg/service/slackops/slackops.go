package slackops

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/slack-go/slack"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/utils/async"
)

// messagePoster is the slice of the Slack client the service needs
type messagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Service posts operator notices to a Slack channel. All posts are
// fire-and-forget: a Slack outage must never surface to API callers.
type Service struct {
	client  messagePoster
	channel string
}

// New creates a Slack ops notifier
func New(token, channel string) *Service {
	return &Service{
		client:  slack.New(token),
		channel: channel,
	}
}

// NotifyDispatch posts a summary of one notification dispatch
func (s *Service) NotifyDispatch(ctx context.Context, record *model.DispatchRecord) {
	if record == nil {
		return
	}

	var b strings.Builder
	mode := "LIVE"
	if record.DryRun {
		mode = "DRY RUN"
	}
	outcome := "all channels delivered"
	if !record.Success {
		outcome = "some notifications failed"
	}
	fmt.Fprintf(&b, "*Group %s notified* (%s, %s)\n", record.GroupNumber, mode, outcome)
	for _, r := range record.Results {
		fmt.Fprintf(&b, "• %s: SMS %s, WhatsApp %s, Email %s\n",
			r.Member, r.SMSStatus, r.WhatsAppStatus, r.EmailStatus)
	}

	s.post(ctx, b.String())
}

// NotifyStatusChange posts a note when an operator moves a group
func (s *Service) NotifyStatusChange(ctx context.Context, group string, status string) {
	s.post(ctx, fmt.Sprintf("Group %s moved to *%s*", group, status))
}

func (s *Service) post(ctx context.Context, text string) {
	channel := s.channel
	client := s.client
	async.Dispatch(ctx, func(ctx context.Context) error {
		_, _, err := client.PostMessageContext(ctx, channel,
			slack.MsgOptionText(text, false),
		)
		if err != nil {
			ctxlog.From(ctx).Warn("Failed to post ops notice to Slack",
				"channel", channel,
				"error", err,
			)
		}
		return nil
	})
}

// Nop is an OpsNotifier that does nothing, used when Slack is not
// configured
type Nop struct{}

// NotifyDispatch implements interfaces.OpsNotifier
func (Nop) NotifyDispatch(ctx context.Context, record *model.DispatchRecord) {}

// NotifyStatusChange implements interfaces.OpsNotifier
func (Nop) NotifyStatusChange(ctx context.Context, group string, status string) {}

var _ interfaces.OpsNotifier = (*Service)(nil)
var _ interfaces.OpsNotifier = Nop{}
