package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
	"github.com/wedlock-lab/mandap/pkg/usecase"
)

// StatusHandler handles the group status store endpoints
type StatusHandler struct {
	statusUC usecase.StatusUseCase
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(statusUC usecase.StatusUseCase) *StatusHandler {
	return &StatusHandler{
		statusUC: statusUC,
	}
}

type statusListResponse struct {
	Statuses map[string]types.QueueStatus `json:"statuses"`
}

// HandleList returns every recorded group status keyed by group number
func (h *StatusHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	statuses, err := h.statusUC.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	byNumber := make(map[string]types.QueueStatus, len(statuses))
	for n, s := range statuses {
		byNumber[n.String()] = s
	}

	writeJSON(ctx, w, http.StatusOK, statusListResponse{Statuses: byNumber})
}

type statusSetRequest struct {
	Status string `json:"status"`
}

type statusSetResponse struct {
	GroupNumber types.GroupNumber `json:"groupNumber"`
	Status      types.QueueStatus `json:"status"`
}

// HandleSet records an operator-assigned status for a group
func (h *StatusHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groupNumber, err := types.ParseGroupNumber(chi.URLParam(r, "groupNumber"))
	if err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid group number",
			goerr.T(model.ErrTagValidation)))
		return
	}

	var req statusSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid status request body",
			goerr.T(model.ErrTagValidation)))
		return
	}

	status, err := types.ParseQueueStatus(req.Status)
	if err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid status value",
			goerr.T(model.ErrTagValidation)))
		return
	}

	if err := h.statusUC.Set(ctx, groupNumber, status); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, statusSetResponse{
		GroupNumber: groupNumber,
		Status:      status,
	})
}
