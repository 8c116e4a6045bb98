package types

import "github.com/m-mizutani/goerr/v2"

// QueueStatus represents a group's progress through the photo session.
// Transitions are operator-driven; any status may be set to any other.
type QueueStatus string

const (
	QueueStatusWaiting   QueueStatus = "waiting"
	QueueStatusQueued    QueueStatus = "queued"
	QueueStatusNotified  QueueStatus = "notified"
	QueueStatusCompleted QueueStatus = "completed"
)

// String returns the string representation of the status
func (s QueueStatus) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s QueueStatus) IsValid() bool {
	switch s {
	case QueueStatusWaiting, QueueStatusQueued, QueueStatusNotified, QueueStatusCompleted:
		return true
	default:
		return false
	}
}

// ParseQueueStatus parses a status string
func ParseQueueStatus(s string) (QueueStatus, error) {
	status := QueueStatus(s)
	if !status.IsValid() {
		return "", goerr.New("invalid queue status", goerr.V("status", s))
	}
	return status, nil
}
