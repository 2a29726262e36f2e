package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mcfadden20/Swim-meet-timer/internal/results"
)

// SubmitTimeRequest is the body of a timer's lane time
type SubmitTimeRequest struct {
	MeetID          int64      `json:"meet_id" validate:"required,gt=0"`
	SessionNumber   int        `json:"session_number" validate:"gte=0"`
	EventNumber     int        `json:"event_number" validate:"required,gt=0"`
	HeatNumber      int        `json:"heat_number" validate:"required,gt=0"`
	Lane            int        `json:"lane" validate:"required,gt=0"`
	TimeMS          int64      `json:"time_ms" validate:"gte=0"`
	IsNoShow        bool       `json:"is_no_show"`
	SwimmerName     string     `json:"swimmer_name" validate:"max=100,excludesall=\x00\n\r\t"`
	ClientTimestamp *time.Time `json:"client_timestamp"`
}

// CorrectResultRequest edits a timing record; omitted fields are unchanged.
type CorrectResultRequest struct {
	MeetID      int64  `json:"meet_id" validate:"required,gt=0"`
	AdminPIN    string `json:"admin_pin"`
	EventNumber *int   `json:"event_number" validate:"omitempty,gt=0"`
	HeatNumber  *int   `json:"heat_number" validate:"omitempty,gt=0"`
	Lane        *int   `json:"lane" validate:"omitempty,gt=0"`
	TimeMS      *int64 `json:"time_ms" validate:"omitempty,gte=0"`
	IsNoShow    *bool  `json:"is_no_show"`
}

// HandleSubmitTime records a lane time
// @Summary Submit a lane time
// @Tags results
// @Accept json
// @Produce json
// @Param request body SubmitTimeRequest true "Lane time"
// @Success 201 {object} domain.ResultRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/results [post]
func HandleSubmitTime(svc results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitTimeRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpSubmitTime); err != nil {
			return
		}

		rec, err := svc.SubmitTime(r.Context(), results.TimeSubmission{
			MeetID:          req.MeetID,
			SessionNumber:   req.SessionNumber,
			EventNumber:     req.EventNumber,
			HeatNumber:      req.HeatNumber,
			Lane:            req.Lane,
			TimeMS:          req.TimeMS,
			IsNoShow:        req.IsNoShow,
			SwimmerName:     req.SwimmerName,
			ClientTimestamp: req.ClientTimestamp,
		})
		if err != nil {
			respondServiceError(w, r, OpSubmitTime, err)
			return
		}

		respondJSON(w, http.StatusCreated, rec)
	}
}

// HandleCorrectResult edits an existing timing record
// @Summary Correct a result
// @Tags results
// @Accept json
// @Produce json
// @Param id path int true "Result ID"
// @Param request body CorrectResultRequest true "Correction"
// @Success 200 {object} domain.ResultRecord
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/results/{id} [put]
func HandleCorrectResult(svc results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidResultID)
			return
		}

		var req CorrectResultRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpCorrect); err != nil {
			return
		}

		rec, err := svc.CorrectResult(r.Context(), results.Correction{
			MeetID:      req.MeetID,
			AdminPIN:    req.AdminPIN,
			ResultID:    id,
			EventNumber: req.EventNumber,
			HeatNumber:  req.HeatNumber,
			Lane:        req.Lane,
			TimeMS:      req.TimeMS,
			IsNoShow:    req.IsNoShow,
		})
		if err != nil {
			respondServiceError(w, r, OpCorrect, err)
			return
		}

		respondJSON(w, http.StatusOK, rec)
	}
}
