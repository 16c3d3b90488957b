package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/carrentapp/carrent/internal/models"
	"github.com/carrentapp/carrent/internal/reservation"
)

// ReservationGateway defines the reservation calls required from the rental
// API, plus the vehicle read needed to open a wizard.
type ReservationGateway interface {
	VehicleByID(ctx context.Context, id int64) (*models.Vehicle, error)
	CreateReservation(ctx context.Context, p reservation.Payload) error
	CancelReservation(ctx context.Context, id int64) error
	ClientReservations(ctx context.Context, clientID int64) ([]models.ReservationSummary, error)
}

// ReservationService owns the per-session wizard machines and orchestrates
// submission against the rental API.
type ReservationService struct {
	gw  ReservationGateway
	log *zap.Logger

	mu     sync.Mutex
	drafts map[string]*reservation.Machine
}

// NewReservationService constructs a ReservationService.
func NewReservationService(gw ReservationGateway, log *zap.Logger) *ReservationService {
	return &ReservationService{gw: gw, log: log, drafts: make(map[string]*reservation.Machine)}
}

// Open returns the session's wizard for the given vehicle, starting a fresh
// draft when there is none yet or when the session last reserved a different
// vehicle. Reopening the same vehicle resumes the in-progress draft.
func (s *ReservationService) Open(ctx context.Context, sid string, user models.User, vehicleID int64) (*reservation.Machine, error) {
	vehicle, err := s.gw.VehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.drafts[sid]; ok && m.VehicleID() == vehicleID && m.State() != reservation.StateConfirmed {
		return m, nil
	}
	m := reservation.New(user.ID, *vehicle)
	s.drafts[sid] = m
	s.log.Info("reservation draft opened",
		zap.String("draft_id", m.ID()),
		zap.Int64("vehicle_id", vehicleID))
	return m, nil
}

// Machine returns the session's current wizard, if any.
func (s *ReservationService) Machine(sid string) (*reservation.Machine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.drafts[sid]
	return m, ok
}

// Discard drops the session's wizard. Called when the user navigates away
// or after a confirmed submission has been acknowledged.
func (s *ReservationService) Discard(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sid)
}

// Submit runs the two-phase submission: validate and enter Submitting, call
// the backend, then record the outcome. On failure the machine lands in
// Failed with the draft intact; the error is returned for presentation.
func (s *ReservationService) Submit(ctx context.Context, sid string) (*reservation.Machine, error) {
	m, ok := s.Machine(sid)
	if !ok {
		return nil, reservation.ErrTerminalState
	}

	payload, err := m.BeginSubmit()
	if err != nil {
		return m, err
	}

	err = s.gw.CreateReservation(ctx, payload)
	m.FinishSubmit(err)
	if err != nil {
		s.log.Warn("reservation submission failed",
			zap.String("draft_id", m.ID()),
			zap.Error(err))
		return m, err
	}

	s.log.Info("reservation confirmed",
		zap.String("draft_id", m.ID()),
		zap.Int64("vehicle_id", payload.VehicleID))
	return m, nil
}

// Bookings lists the client's reservations.
func (s *ReservationService) Bookings(ctx context.Context, clientID int64) ([]models.ReservationSummary, error) {
	return s.gw.ClientReservations(ctx, clientID)
}

// Cancel cancels one reservation.
func (s *ReservationService) Cancel(ctx context.Context, id int64) error {
	return s.gw.CancelReservation(ctx, id)
}
