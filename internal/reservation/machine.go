// Package reservation drives the three-step booking wizard as an explicit
// state machine, decoupled from any rendering concern. The machine owns the
// in-progress draft; transitions are guarded, backward navigation is free,
// and submission is a two-phase Begin/Finish so the remote call stays outside
// the machine.
package reservation

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carrentapp/carrent/internal/models"
	"github.com/carrentapp/carrent/internal/pricing"
)

// State is the wizard position. Confirmed is terminal; Failed returns to the
// payment step via Retry.
type State string

const (
	StateDates      State = "dates"
	StateOptions    State = "options"
	StatePayment    State = "payment"
	StateSubmitting State = "submitting"
	StateConfirmed  State = "confirmed"
	StateFailed     State = "failed"
)

// Payment methods accepted by the wizard.
const (
	PayByCard = "card"
	PayByCash = "cash"
)

// Validation and transition errors. Guard failures leave the machine where
// it was.
var (
	ErrDatesRequired     = errors.New("start and end dates are required")
	ErrDatesOutOfOrder   = errors.New("end date must not precede start date")
	ErrInsuranceRequired = errors.New("an insurance tier must be chosen")
	ErrContactRequired   = errors.New("all contact fields are required")
	ErrCardRequired      = errors.New("card number, expiry and CVV are required")
	ErrSubmitInFlight    = errors.New("a submission is already in progress")
	ErrNotAtPayment      = errors.New("submission is only possible from the payment step")
	ErrAtFirstStep       = errors.New("already at the first step")
	ErrTerminalState     = errors.New("the wizard has finished")
	ErrUnknownField      = errors.New("unknown form field")
)

// Draft is the wizard-scoped aggregate of everything the user entered. It is
// never persisted across reloads; a fresh machine means a fresh draft.
type Draft struct {
	StartDate     time.Time             `json:"start_date"`
	EndDate       time.Time             `json:"end_date"`
	InsuranceTier pricing.InsuranceTier `json:"insurance_tier"`
	Extras        []pricing.Extra       `json:"extras"`
	FirstName     string                `json:"first_name"`
	LastName      string                `json:"last_name"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	PaymentMethod string                `json:"payment_method"`
	CardNumber    string                `json:"-"`
	CardExpiry    string                `json:"-"`
	CardCVV       string                `json:"-"`
}

// Payload is what actually goes to the rental API on submission. Card
// details are deliberately absent: they are captured locally and this layer
// never transmits them.
type Payload struct {
	ClientID      int64    `json:"clientId"`
	VehicleID     int64    `json:"vehicleId"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Insurance     string   `json:"insurance"`
	Extras        []string `json:"extras"`
	PaymentMethod string   `json:"paymentMethod"`
}

// Machine is one wizard run for one client and one vehicle. It is safe for
// concurrent use: the handler layer can field simultaneous requests for the
// same session, and the submit guard must be an atomic check-and-set or a
// double click books twice.
type Machine struct {
	id       string
	clientID int64
	vehicle  models.Vehicle

	mu    sync.Mutex
	state State
	draft Draft
}

// New starts a wizard at the dates step with an empty draft, paying by card
// by default.
func New(clientID int64, vehicle models.Vehicle) *Machine {
	return &Machine{
		id:       uuid.NewString(),
		clientID: clientID,
		vehicle:  vehicle,
		state:    StateDates,
		draft:    Draft{PaymentMethod: PayByCard},
	}
}

// ID is the draft's unique identifier.
func (m *Machine) ID() string { return m.id }

// VehicleID identifies the vehicle being reserved.
func (m *Machine) VehicleID() int64 { return m.vehicle.ID }

// Vehicle returns the vehicle being reserved.
func (m *Machine) Vehicle() models.Vehicle { return m.vehicle }

// State reports the current wizard position.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Draft returns a copy of the current draft.
func (m *Machine) Draft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := m.draft
	d.Extras = append([]pricing.Extra(nil), m.draft.Extras...)
	return d
}

// Quote prices the current draft against the vehicle's daily rate.
func (m *Machine) Quote() pricing.Breakdown {
	m.mu.Lock()
	defer m.mu.Unlock()
	return pricing.Quote(m.draft.StartDate, m.draft.EndDate, m.vehicle.DailyRate,
		m.draft.InsuranceTier, m.draft.Extras)
}

// SetDates records the rental window. Ordering is checked by the step guard,
// not here, so a user can correct either field in any order.
func (m *Machine) SetDates(start, end time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.StartDate = start
	m.draft.EndDate = end
}

// SetInsurance records the chosen tier.
func (m *Machine) SetInsurance(tier pricing.InsuranceTier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.InsuranceTier = tier
}

// ToggleExtra adds the extra if absent and removes it if present, so
// toggling twice restores the original selection.
func (m *Machine) ToggleExtra(e pricing.Extra) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, have := range m.draft.Extras {
		if have == e {
			m.draft.Extras = append(m.draft.Extras[:i], m.draft.Extras[i+1:]...)
			return
		}
	}
	m.draft.Extras = append(m.draft.Extras, e)
}

// UpdateField routes a single named form input into the draft, applying the
// card input sanitizers where they belong.
func (m *Machine) UpdateField(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch name {
	case "firstName":
		m.draft.FirstName = value
	case "lastName":
		m.draft.LastName = value
	case "email":
		m.draft.Email = value
	case "phone":
		m.draft.Phone = value
	case "paymentMethod":
		m.draft.PaymentMethod = value
	case "cardNumber":
		m.draft.CardNumber = FormatCardNumber(value)
	case "cardExpiry":
		m.draft.CardExpiry = FormatCardExpiry(value)
	case "cardCVV":
		m.draft.CardCVV = FormatCVV(value)
	default:
		return ErrUnknownField
	}
	return nil
}

// Next advances one step if the current step's guard passes.
func (m *Machine) Next() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateDates:
		if m.draft.StartDate.IsZero() || m.draft.EndDate.IsZero() {
			return ErrDatesRequired
		}
		if m.draft.EndDate.Before(m.draft.StartDate) {
			return ErrDatesOutOfOrder
		}
		m.state = StateOptions
	case StateOptions:
		if m.draft.InsuranceTier == "" {
			return ErrInsuranceRequired
		}
		m.state = StatePayment
	case StatePayment:
		return ErrNotAtPayment
	case StateSubmitting:
		return ErrSubmitInFlight
	default:
		return ErrTerminalState
	}
	return nil
}

// Back moves one step backward. It is unguarded and never clears data
// entered in later steps.
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateDates:
		return ErrAtFirstStep
	case StateOptions:
		m.state = StateDates
	case StatePayment:
		m.state = StateOptions
	case StateSubmitting:
		return ErrSubmitInFlight
	default:
		return ErrTerminalState
	}
	return nil
}

// BeginSubmit validates the payment step, moves to Submitting and returns
// the payload to send. The check and the transition happen under the lock,
// so of two concurrent calls exactly one gets the payload; the other is
// rejected and a double click cannot double-book.
func (m *Machine) BeginSubmit() (Payload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateSubmitting:
		return Payload{}, ErrSubmitInFlight
	case StatePayment:
	default:
		return Payload{}, ErrNotAtPayment
	}

	d := m.draft
	if strings.TrimSpace(d.FirstName) == "" || strings.TrimSpace(d.LastName) == "" ||
		strings.TrimSpace(d.Email) == "" || strings.TrimSpace(d.Phone) == "" {
		return Payload{}, ErrContactRequired
	}
	if d.PaymentMethod == PayByCard {
		if d.CardNumber == "" || d.CardExpiry == "" || d.CardCVV == "" {
			return Payload{}, ErrCardRequired
		}
	}

	m.state = StateSubmitting

	extras := make([]string, len(d.Extras))
	for i, e := range d.Extras {
		extras[i] = string(e)
	}
	return Payload{
		ClientID:      m.clientID,
		VehicleID:     m.vehicle.ID,
		StartDate:     d.StartDate.Format("2006-01-02"),
		EndDate:       d.EndDate.Format("2006-01-02"),
		Insurance:     string(d.InsuranceTier),
		Extras:        extras,
		PaymentMethod: d.PaymentMethod,
	}, nil
}

// FinishSubmit records the remote outcome: nil lands in Confirmed, anything
// else in Failed with the draft intact.
func (m *Machine) FinishSubmit(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateSubmitting {
		return
	}
	if err != nil {
		m.state = StateFailed
		return
	}
	m.state = StateConfirmed
}

// Retry returns a failed wizard to the payment step for correction. Only
// Failed can retry; Confirmed needs a new draft.
func (m *Machine) Retry() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateFailed {
		return ErrTerminalState
	}
	m.state = StatePayment
	return nil
}
