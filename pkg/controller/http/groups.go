package http

import (
	"net/http"

	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/usecase"
)

// GroupsHandler handles roster endpoints
type GroupsHandler struct {
	groupsUC usecase.GroupsUseCase
}

// NewGroupsHandler creates a new groups handler
func NewGroupsHandler(groupsUC usecase.GroupsUseCase) *GroupsHandler {
	return &GroupsHandler{
		groupsUC: groupsUC,
	}
}

type groupsResponse struct {
	Groups []model.Group `json:"groups"`
}

// HandleList returns the current roster with queue statuses merged in
func (h *GroupsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groups, err := h.groupsUC.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if groups == nil {
		groups = []model.Group{}
	}

	writeJSON(ctx, w, http.StatusOK, groupsResponse{Groups: groups})
}
