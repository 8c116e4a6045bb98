package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/usecase"
)

// NotifyHandler handles the notification dispatch endpoints
type NotifyHandler struct {
	notifyUC usecase.NotifyUseCase
}

// NewNotifyHandler creates a new notify handler
func NewNotifyHandler(notifyUC usecase.NotifyUseCase) *NotifyHandler {
	return &NotifyHandler{
		notifyUC: notifyUC,
	}
}

// HandleNotify fans out go-time notifications to a group's members
func (h *NotifyHandler) HandleNotify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, model.NotificationResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	resp, err := h.notifyUC.Dispatch(ctx, &req)
	if err != nil {
		if errors.Is(err, model.ErrNoMembers) {
			writeJSON(ctx, w, http.StatusBadRequest, model.NotificationResponse{
				Success: false,
				Message: "No group members provided",
			})
			return
		}
		writeJSON(ctx, w, http.StatusInternalServerError, model.NotificationResponse{
			Success: false,
			Message: "Failed to send notifications",
		})
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

type testModeResponse struct {
	TestMode bool `json:"testMode"`
}

// HandleTestMode reports whether the dispatcher is in dry-run mode; the
// dashboard probes this to show a banner
func (h *NotifyHandler) HandleTestMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, testModeResponse{
		TestMode: h.notifyUC.DryRun(),
	})
}

type dispatchesResponse struct {
	Dispatches []*model.DispatchRecord `json:"dispatches"`
}

const defaultDispatchLimit = 50

// HandleDispatches lists recent dispatch audit records
func (h *NotifyHandler) HandleDispatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultDispatchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(ctx, w, goerr.New("invalid limit parameter",
				goerr.V("limit", raw),
				goerr.T(model.ErrTagValidation)))
			return
		}
		limit = n
	}

	records, err := h.notifyUC.RecentDispatches(ctx, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if records == nil {
		records = []*model.DispatchRecord{}
	}

	writeJSON(ctx, w, http.StatusOK, dispatchesResponse{Dispatches: records})
}
