package types

import (
	"strconv"

	"github.com/google/uuid"
)

// GroupNumber identifies a photo group. It is the join key between the
// roster source and the status store, unique within one roster parse.
type GroupNumber int

// String returns the string representation
func (n GroupNumber) String() string {
	return strconv.Itoa(int(n))
}

// Int returns the int representation
func (n GroupNumber) Int() int {
	return int(n)
}

// ParseGroupNumber parses a decimal group number string
func ParseGroupNumber(s string) (GroupNumber, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return GroupNumber(n), nil
}

// DispatchID identifies one notification dispatch for the audit log
type DispatchID string

// String returns the string representation
func (id DispatchID) String() string {
	return string(id)
}

// NewDispatchID creates a new DispatchID using UUID v7
func NewDispatchID() (DispatchID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return DispatchID(id.String()), nil
}
