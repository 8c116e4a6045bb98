package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
	"github.com/wedlock-lab/mandap/pkg/utils/apperr"
)

const (
	dryRunBanner   = "TEST MODE: Notifications simulated (no credits used)"
	partialFailure = "Some notifications failed to send"
)

// Notify implements NotifyUseCase. It walks the group's members in order
// and attempts every channel for each one; a channel failure is recorded
// and never aborts sibling channels or members.
type Notify struct {
	sms      interfaces.Sender
	whatsapp interfaces.Sender
	email    interfaces.Sender
	repo     interfaces.Repository
	ops      interfaces.OpsNotifier
	event    *model.EventConfig
	dryRun   bool
}

// NewNotify creates the notification dispatcher. Senders may be nil when
// their provider is unconfigured; affected channels then report failed.
func NewNotify(
	sms, whatsapp, email interfaces.Sender,
	repo interfaces.Repository,
	ops interfaces.OpsNotifier,
	event *model.EventConfig,
	dryRun bool,
) *Notify {
	return &Notify{
		sms:      sms,
		whatsapp: whatsapp,
		email:    email,
		repo:     repo,
		ops:      ops,
		event:    event,
		dryRun:   dryRun,
	}
}

// DryRun reports whether the dispatcher simulates deliveries
func (u *Notify) DryRun() bool {
	return u.dryRun
}

// Dispatch sends the go-time notification to every member over SMS,
// WhatsApp, and email. Whether a member counts as reached is decided by
// MemberResult.Reached; if any member comes out unreached the overall
// result is marked unsuccessful.
func (u *Notify) Dispatch(ctx context.Context, req *model.NotificationRequest) (*model.NotificationResponse, error) {
	if req == nil || len(req.Members) == 0 {
		return nil, goerr.Wrap(model.ErrNoMembers, "dispatch rejected",
			goerr.T(model.ErrTagValidation))
	}

	logger := ctxlog.From(ctx)
	resp := &model.NotificationResponse{
		Success: true,
		Results: make([]model.MemberResult, 0, len(req.Members)),
	}

	for _, member := range req.Members {
		text, err := u.event.Render(u.event.MessageText, member.Name)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to render notification text",
				goerr.V("member", member.Name))
		}

		result := model.MemberResult{Member: member.Name}

		if u.dryRun {
			logger.Info("DRY RUN: would send notifications",
				"member", member.Name,
				"phone", member.Phone,
				"email", member.Email,
				"text", text,
			)
			result.SMSStatus = types.DeliverySimulated
			result.WhatsAppStatus = types.DeliverySimulated
			result.EmailStatus = types.DeliverySimulated
		} else {
			result.SMSStatus = u.attempt(ctx, types.ChannelSMS, u.sms, member, text)
			result.WhatsAppStatus = u.attempt(ctx, types.ChannelWhatsApp, u.whatsapp, member, text)
			result.EmailStatus = u.attempt(ctx, types.ChannelEmail, u.email, member, text)
		}

		if !result.Reached() {
			resp.Success = false
		}
		resp.Results = append(resp.Results, result)
	}

	switch {
	case u.dryRun:
		resp.Message = dryRunBanner
	case !resp.Success:
		resp.Message = partialFailure
	default:
		resp.Message = fmt.Sprintf("Notifications sent to %d member(s)", len(req.Members))
	}

	u.record(ctx, req.GroupNumber, resp)
	return resp, nil
}

// attempt runs a single channel send, mapping any failure to the
// "failed" status. Every attempt is logged before and after since live
// sends hit paid provider APIs.
func (u *Notify) attempt(ctx context.Context, channel types.Channel, sender interfaces.Sender, member model.GroupMember, text string) string {
	logger := ctxlog.From(ctx)
	logger.Info("Sending notification",
		"channel", channel,
		"member", member.Name,
	)

	if sender == nil {
		logger.Warn("Notification channel not configured",
			"channel", channel,
			"member", member.Name,
		)
		return types.DeliveryFailed
	}

	deliveryStatus, err := sender.Send(ctx, member, text)
	if err != nil {
		logger.Error("Notification channel failed",
			"channel", channel,
			"member", member.Name,
			"error", err,
		)
		return types.DeliveryFailed
	}

	logger.Info("Notification delivered to provider",
		"channel", channel,
		"member", member.Name,
		"status", deliveryStatus,
	)
	return deliveryStatus
}

// record persists the dispatch audit entry and posts the ops summary.
// Audit failures are logged, never surfaced to the caller.
func (u *Notify) record(ctx context.Context, groupNumber types.GroupNumber, resp *model.NotificationResponse) {
	logger := ctxlog.From(ctx)

	id, err := types.NewDispatchID()
	if err != nil {
		logger.Error("Failed to generate dispatch ID", "error", err)
		return
	}

	rec := &model.DispatchRecord{
		ID:          id,
		GroupNumber: groupNumber,
		DryRun:      u.dryRun,
		Success:     resp.Success,
		Results:     resp.Results,
		CreatedAt:   time.Now(),
	}

	if err := u.repo.SaveDispatch(ctx, rec); err != nil {
		// Log error but don't fail - the notification itself already went out
		apperr.Handle(ctx, goerr.Wrap(err, "failed to save dispatch record",
			goerr.V("dispatchID", id)))
	}

	u.ops.NotifyDispatch(ctx, rec)
}

// RecentDispatches lists audit records, newest first
func (u *Notify) RecentDispatches(ctx context.Context, limit int) ([]*model.DispatchRecord, error) {
	records, err := u.repo.ListDispatches(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list dispatch records")
	}
	return records, nil
}
