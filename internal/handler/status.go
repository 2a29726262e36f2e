package handler

import (
	"net/http"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

// StatusSource returns the last parsed configuration of a meet.
type StatusSource interface {
	Snapshot(meetID int64) domain.ConfigSnapshot
}

// HandleMeetStatus returns the meet program configuration for a meet, or an
// empty one when nothing has been parsed yet.
// @Summary Meet program configuration
// @Tags status
// @Produce json
// @Param meet_id query int true "Meet ID"
// @Success 200 {object} domain.ConfigSnapshot
// @Failure 400 {object} ErrorResponse
// @Router /api/maestro/status [get]
func HandleMeetStatus(src StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meetID, ok := GetPositiveIntQueryParam(r, w, ParamMeetID)
		if !ok {
			return
		}
		respondJSON(w, http.StatusOK, src.Snapshot(meetID))
	}
}
