package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
)

// GroupMember is one person in a photo group. Immutable once parsed;
// Phone is already in canonical dialable form.
type GroupMember struct {
	Name  string `json:"name" firestore:"name"`
	Phone string `json:"phone" firestore:"phone"`
	Email string `json:"email" firestore:"email"`
}

// Group is one photo group from the roster joined with its queue status
type Group struct {
	GroupNumber types.GroupNumber `json:"groupNumber"`
	Members     []GroupMember     `json:"members"`
	Status      types.QueueStatus `json:"status"`
}

// Validate checks group invariants
func (g *Group) Validate() error {
	if len(g.Members) == 0 {
		return goerr.New("group has no members",
			goerr.V("groupNumber", g.GroupNumber),
			goerr.T(ErrTagValidation))
	}
	if !g.Status.IsValid() {
		return goerr.New("invalid group status",
			goerr.V("status", g.Status),
			goerr.T(ErrTagValidation))
	}
	return nil
}
