package handler

import (
	"net/http"

	"github.com/mcfadden20/Swim-meet-timer/internal/results"
)

// SubmitDQRequest is an official's DQ call. The PIN is checked by the
// service so a missing PIN answers 401 rather than 400.
type SubmitDQRequest struct {
	MeetID           int64  `json:"meet_id" validate:"required,gt=0"`
	AdminPIN         string `json:"admin_pin"`
	SessionNumber    int    `json:"session_number" validate:"gte=0"`
	EventNumber      int    `json:"event_number" validate:"required,gt=0"`
	HeatNumber       int    `json:"heat_number" validate:"required,gt=0"`
	Lane             int    `json:"lane" validate:"required,gt=0"`
	DQCode           string `json:"dq_code" validate:"required,max=20"`
	DQDescription    string `json:"dq_description" validate:"max=500"`
	OfficialInitials string `json:"official_initials" validate:"max=10"`
	TimeMS           *int64 `json:"time_ms" validate:"omitempty,gte=0"`
}

// VerifyPINRequest checks an official's PIN for a meet
type VerifyPINRequest struct {
	MeetID   int64  `json:"meet_id" validate:"required,gt=0"`
	AdminPIN string `json:"admin_pin"`
}

// HandleSubmitDQ records or overwrites a lane's DQ
// @Summary Submit a DQ
// @Tags official
// @Accept json
// @Produce json
// @Param request body SubmitDQRequest true "DQ call"
// @Success 200 {object} domain.ResultRecord
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/official/submit-dq [post]
func HandleSubmitDQ(svc results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitDQRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpSubmitDQ); err != nil {
			return
		}

		rec, err := svc.SubmitDQ(r.Context(), results.DQSubmission{
			MeetID:           req.MeetID,
			AdminPIN:         req.AdminPIN,
			SessionNumber:    req.SessionNumber,
			EventNumber:      req.EventNumber,
			HeatNumber:       req.HeatNumber,
			Lane:             req.Lane,
			DQCode:           req.DQCode,
			DQDescription:    req.DQDescription,
			OfficialInitials: req.OfficialInitials,
			TimeMS:           req.TimeMS,
		})
		if err != nil {
			respondServiceError(w, r, OpSubmitDQ, err)
			return
		}

		respondJSON(w, http.StatusOK, rec)
	}
}

// HandleVerifyPIN checks an official's PIN
// @Summary Verify an official PIN
// @Tags official
// @Accept json
// @Produce json
// @Param request body VerifyPINRequest true "PIN"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/official/verify-pin [post]
func HandleVerifyPIN(svc results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyPINRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpVerifyPIN); err != nil {
			return
		}
		if err := svc.VerifyOfficialPIN(r.Context(), req.MeetID, req.AdminPIN); err != nil {
			respondServiceError(w, r, OpVerifyPIN, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPINVerified})
	}
}
