// Package results applies timing submissions, DQ calls and corrections to the
// record store and snapshots the affected heats for the meet program.
package results

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
	"github.com/mcfadden20/Swim-meet-timer/internal/metrics"
	"github.com/mcfadden20/Swim-meet-timer/internal/repository"
	"github.com/mcfadden20/Swim-meet-timer/internal/snapshot"
)

// Service defines result mutations
type Service interface {
	SubmitTime(ctx context.Context, sub TimeSubmission) (*domain.ResultRecord, error)
	SubmitDQ(ctx context.Context, sub DQSubmission) (*domain.ResultRecord, error)
	CorrectResult(ctx context.Context, c Correction) (*domain.ResultRecord, error)
	VerifyOfficialPIN(ctx context.Context, meetID int64, pin string) error
}

type service struct {
	meets   repository.Meets
	results repository.Results
	writer  snapshot.HeatWriter
}

// NewService creates a new results service
func NewService(meets repository.Meets, results repository.Results, writer snapshot.HeatWriter) Service {
	return &service{
		meets:   meets,
		results: results,
		writer:  writer,
	}
}

func (s *service) SubmitTime(ctx context.Context, sub TimeSubmission) (*domain.ResultRecord, error) {
	if err := validateLane(sub.MeetID, sub.SessionNumber, sub.EventNumber, sub.HeatNumber, sub.Lane); err != nil {
		return nil, err
	}
	if sub.TimeMS < 0 {
		return nil, invalid(ErrMsgTimeNegative)
	}
	if _, err := s.loadMeet(ctx, sub.MeetID); err != nil {
		return nil, err
	}

	rec := &domain.ResultRecord{
		MeetID:          sub.MeetID,
		SessionNumber:   sessionOrDefault(sub.SessionNumber),
		EventNumber:     sub.EventNumber,
		HeatNumber:      sub.HeatNumber,
		Lane:            sub.Lane,
		TimeMS:          sub.TimeMS,
		IsNoShow:        sub.IsNoShow,
		SwimmerName:     sub.SwimmerName,
		ClientTimestamp: sub.ClientTimestamp,
	}
	if err := s.results.InsertResult(ctx, rec); err != nil {
		return nil, fmt.Errorf(ErrContextInsertTiming, err)
	}

	metrics.ResultsSubmitted.WithLabelValues(metrics.KindTime).Inc()
	logger.FromContext(ctx).Info(LogMsgTimeSubmitted,
		LogKeyResultID, rec.ID, LogKeyHeat, rec.Heat().String(), LogKeyLane, rec.Lane)

	s.snapshotHeat(ctx, rec.Heat(), false)
	return rec, nil
}

// SubmitDQ records a DQ for a lane. A lane holds at most one DQ: a repeat call
// overwrites the existing row and keeps its id and raw_time.
func (s *service) SubmitDQ(ctx context.Context, sub DQSubmission) (*domain.ResultRecord, error) {
	if err := validateLane(sub.MeetID, sub.SessionNumber, sub.EventNumber, sub.HeatNumber, sub.Lane); err != nil {
		return nil, err
	}
	if sub.DQCode == "" {
		return nil, invalid(ErrMsgDQCodeRequired)
	}
	if sub.TimeMS != nil && *sub.TimeMS < 0 {
		return nil, invalid(ErrMsgTimeNegative)
	}
	if err := s.VerifyOfficialPIN(ctx, sub.MeetID, sub.AdminPIN); err != nil {
		return nil, err
	}

	existing, err := s.results.FindLatestDQ(ctx, sub.MeetID, sub.EventNumber, sub.HeatNumber, sub.Lane)
	if err != nil {
		return nil, fmt.Errorf(ErrContextFindDQ, err)
	}

	log := logger.FromContext(ctx)
	if existing != nil {
		existing.DQCode = sub.DQCode
		existing.DQDescription = sub.DQDescription
		existing.OfficialInitials = sub.OfficialInitials
		if sub.TimeMS != nil {
			existing.TimeMS = *sub.TimeMS
		}
		if err := s.results.UpdateResult(ctx, existing); err != nil {
			return nil, fmt.Errorf(ErrContextStoreDQ, err)
		}

		metrics.ResultsSubmitted.WithLabelValues(metrics.KindDQRevision).Inc()
		log.Info(LogMsgDQUpdated, LogKeyResultID, existing.ID, LogKeyHeat, existing.Heat().String(), LogKeyLane, existing.Lane)

		s.snapshotHeat(ctx, existing.Heat(), true)
		return existing, nil
	}

	session := sessionOrDefault(sub.SessionNumber)
	timing, err := s.results.FindLatestTiming(ctx, sub.MeetID, session, sub.EventNumber, sub.HeatNumber, sub.Lane)
	if err != nil {
		return nil, fmt.Errorf(ErrContextFindTiming, err)
	}

	rec := &domain.ResultRecord{
		MeetID:           sub.MeetID,
		SessionNumber:    session,
		EventNumber:      sub.EventNumber,
		HeatNumber:       sub.HeatNumber,
		Lane:             sub.Lane,
		IsDQ:             true,
		DQCode:           sub.DQCode,
		DQDescription:    sub.DQDescription,
		OfficialInitials: sub.OfficialInitials,
	}
	if timing != nil {
		raw := timing.TimeMS
		rec.RawTimeMS = &raw
		rec.TimeMS = timing.TimeMS
		rec.SwimmerName = timing.SwimmerName
	}
	if sub.TimeMS != nil {
		rec.TimeMS = *sub.TimeMS
	}
	if err := s.results.InsertResult(ctx, rec); err != nil {
		return nil, fmt.Errorf(ErrContextStoreDQ, err)
	}

	metrics.ResultsSubmitted.WithLabelValues(metrics.KindDQ).Inc()
	log.Info(LogMsgDQInserted, LogKeyResultID, rec.ID, LogKeyHeat, rec.Heat().String(), LogKeyLane, rec.Lane)

	s.snapshotHeat(ctx, rec.Heat(), false)
	return rec, nil
}

// CorrectResult edits a timing record. The time held before the first edit is
// kept in raw_time and never overwritten afterwards.
func (s *service) CorrectResult(ctx context.Context, c Correction) (*domain.ResultRecord, error) {
	if c.MeetID <= 0 {
		return nil, invalid(ErrMsgMeetIDRequired)
	}
	if c.ResultID <= 0 {
		return nil, invalid(ErrMsgResultIDRequired)
	}
	if c.EventNumber != nil && *c.EventNumber <= 0 {
		return nil, invalid(ErrMsgEventRequired)
	}
	if c.HeatNumber != nil && *c.HeatNumber <= 0 {
		return nil, invalid(ErrMsgHeatRequired)
	}
	if c.Lane != nil && *c.Lane <= 0 {
		return nil, invalid(ErrMsgLaneRequired)
	}
	if c.TimeMS != nil && *c.TimeMS < 0 {
		return nil, invalid(ErrMsgTimeNegative)
	}
	if err := s.VerifyOfficialPIN(ctx, c.MeetID, c.AdminPIN); err != nil {
		return nil, err
	}

	rec, err := s.results.GetResult(ctx, c.MeetID, c.ResultID)
	if err != nil {
		return nil, fmt.Errorf(ErrContextLoadResult, c.ResultID, err)
	}
	if rec.IsDQ {
		return nil, invalid(ErrMsgCorrectDQRecord)
	}

	before := rec.Heat()
	if rec.RawTimeMS == nil {
		raw := rec.TimeMS
		rec.RawTimeMS = &raw
	}
	if c.EventNumber != nil {
		rec.EventNumber = *c.EventNumber
	}
	if c.HeatNumber != nil {
		rec.HeatNumber = *c.HeatNumber
	}
	if c.Lane != nil {
		rec.Lane = *c.Lane
	}
	if c.TimeMS != nil {
		rec.TimeMS = *c.TimeMS
	}
	if c.IsNoShow != nil {
		rec.IsNoShow = *c.IsNoShow
	}

	if err := s.results.UpdateResult(ctx, rec); err != nil {
		return nil, fmt.Errorf(ErrContextStoreCorrection, rec.ID, err)
	}

	metrics.ResultsSubmitted.WithLabelValues(metrics.KindCorrection).Inc()
	logger.FromContext(ctx).Info(LogMsgResultCorrected, LogKeyResultID, rec.ID, LogKeyHeat, rec.Heat().String())

	after := rec.Heat()
	s.snapshotHeat(ctx, after, true)
	if after != before {
		s.snapshotHeat(ctx, before, true)
	}
	return rec, nil
}

// VerifyOfficialPIN checks pin against the meet's admin PIN.
func (s *service) VerifyOfficialPIN(ctx context.Context, meetID int64, pin string) error {
	if meetID <= 0 {
		return invalid(ErrMsgMeetIDRequired)
	}
	meet, err := s.loadMeet(ctx, meetID)
	if err != nil {
		return err
	}
	if pin == "" || subtle.ConstantTimeCompare([]byte(pin), []byte(meet.AdminPIN)) != 1 {
		logger.FromContext(ctx).Warn(LogMsgOfficialPINInvalid, logger.AttrKeyMeetID, meetID)
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *service) loadMeet(ctx context.Context, meetID int64) (*domain.Meet, error) {
	meet, err := s.meets.GetMeetByID(ctx, meetID)
	if err != nil {
		return nil, fmt.Errorf(ErrContextLookupMeet, meetID, err)
	}
	return meet, nil
}

// snapshotHeat hands the heat's current records to the writer. Failures are
// logged by the writer and do not affect the mutation that triggered them.
func (s *service) snapshotHeat(ctx context.Context, heat domain.HeatKey, revision bool) {
	records, err := s.results.ListHeatResults(ctx, heat)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgHeatListFailed, LogKeyHeat, heat.String(), LogKeyError, err)
		return
	}
	_, _ = s.writer.WriteHeat(ctx, domain.HeatSnapshot{
		HeatKey:  heat,
		Results:  records,
		Revision: revision,
	})
}

func validateLane(meetID int64, session, event, heat, lane int) error {
	switch {
	case meetID <= 0:
		return invalid(ErrMsgMeetIDRequired)
	case session < 0:
		return invalid(ErrMsgSessionInvalid)
	case event <= 0:
		return invalid(ErrMsgEventRequired)
	case heat <= 0:
		return invalid(ErrMsgHeatRequired)
	case lane <= 0:
		return invalid(ErrMsgLaneRequired)
	}
	return nil
}

func sessionOrDefault(session int) int {
	if session <= 0 {
		return domain.DefaultSessionNumber
	}
	return session
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}
