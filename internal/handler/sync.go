package handler

import (
	"net/http"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/ledger"
)

// VerifyAuthResponse identifies the meet a relay agent's credentials belong to
type VerifyAuthResponse struct {
	MeetID   int64  `json:"meet_id"`
	MeetName string `json:"meet_name"`
}

// PendingFilesResponse lists race files the relay agent has not acknowledged
type PendingFilesResponse struct {
	Pending []domain.PendingFile `json:"pending"`
}

// ReceiptRequest acknowledges files the relay agent wrote. File names are
// checked by the ledger once the credentials are accepted.
type ReceiptRequest struct {
	AccessCode string   `json:"access_code"`
	AdminPIN   string   `json:"admin_pin"`
	Filenames  []string `json:"filenames" validate:"max=1000"`
}

// ReceiptResponse reports how many receipts were new
type ReceiptResponse struct {
	Acknowledged int `json:"acknowledged"`
}

// SyncHandlers serves the relay agent
type SyncHandlers struct {
	svc ledger.Service
}

// NewSyncHandlers creates the relay agent handlers
func NewSyncHandlers(svc ledger.Service) *SyncHandlers {
	return &SyncHandlers{svc: svc}
}

func credentials(r *http.Request) (string, string) {
	q := r.URL.Query()
	return q.Get(ParamAccessCode), q.Get(ParamAdminPIN)
}

// HandleVerifyAuth checks a relay agent's credentials
// @Summary Verify relay credentials
// @Tags sync
// @Produce json
// @Param access_code query string true "Meet access code"
// @Param admin_pin query string true "Admin PIN"
// @Success 200 {object} VerifyAuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/sync/verify-auth [get]
func (h *SyncHandlers) HandleVerifyAuth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, pin := credentials(r)
		meet, err := h.svc.VerifyAuth(r.Context(), code, pin)
		if err != nil {
			respondServiceError(w, r, OpVerifyAuth, err)
			return
		}
		respondJSON(w, http.StatusOK, VerifyAuthResponse{MeetID: meet.ID, MeetName: meet.Name})
	}
}

// HandlePendingFiles lists race files not yet acknowledged
// @Summary Pending race files
// @Tags sync
// @Produce json
// @Param access_code query string true "Meet access code"
// @Param admin_pin query string true "Admin PIN"
// @Success 200 {object} PendingFilesResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/sync/pending-files [get]
func (h *SyncHandlers) HandlePendingFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, pin := credentials(r)
		files, err := h.svc.Pending(r.Context(), code, pin)
		if err != nil {
			respondServiceError(w, r, OpPendingFiles, err)
			return
		}
		if files == nil {
			files = []domain.PendingFile{}
		}
		respondJSON(w, http.StatusOK, PendingFilesResponse{Pending: files})
	}
}

// HandleReceipt records receipts for files the relay agent wrote
// @Summary Acknowledge race files
// @Tags sync
// @Accept json
// @Produce json
// @Param request body ReceiptRequest true "Receipt"
// @Success 200 {object} ReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/sync/receipt [post]
func (h *SyncHandlers) HandleReceipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReceiptRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpReceipt); err != nil {
			return
		}
		n, err := h.svc.Receipt(r.Context(), req.AccessCode, req.AdminPIN, req.Filenames)
		if err != nil {
			respondServiceError(w, r, OpReceipt, err)
			return
		}
		respondJSON(w, http.StatusOK, ReceiptResponse{Acknowledged: n})
	}
}
