package handler

import (
	"sync"

	"github.com/medgram/medgram/internal/domain"
	"github.com/shopspring/decimal"
)

type FormKind string

const (
	FormLogin          FormKind = "login"
	FormRegisterPhone  FormKind = "register_phone"
	FormRegisterDoctor FormKind = "register_doctor"
	FormCard           FormKind = "card"
	FormTopUp          FormKind = "topup"
	FormReviewComment  FormKind = "review_comment"
	FormDoctorEdit     FormKind = "doctor_edit"
	FormAvatar         FormKind = "avatar"
	FormUploadDoc      FormKind = "upload_doc"
)

// Form is the per-chat multi-step input state. The bot equivalent of an
// on-screen form: one active form per chat, advanced by text replies and
// callbacks.
type Form struct {
	Kind   FormKind
	Step   int
	Fields map[string]string

	DoctorID    int64
	ProfileID   int64
	ChatID      int64
	ServiceType domain.ServiceType
	Amount      decimal.Decimal
	Rating      int

	// InFlight blocks duplicate submission while a workflow call settles.
	InFlight bool
}

type FormStore struct {
	mu sync.Mutex
	m  map[int64]*Form
}

func NewFormStore() *FormStore {
	return &FormStore{m: make(map[int64]*Form)}
}

func (s *FormStore) Get(chatID int64) *Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[chatID]
}

func (s *FormStore) Start(chatID int64, kind FormKind) *Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &Form{Kind: kind, Fields: make(map[string]string)}
	s.m[chatID] = f
	return f
}

func (s *FormStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, chatID)
}

// BeginSubmit marks the form in flight. Returns false when a submission is
// already running, so double taps do not fire the workflow twice.
func (s *FormStore) BeginSubmit(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.m[chatID]
	if !ok || f.InFlight {
		return false
	}
	f.InFlight = true
	return true
}

func (s *FormStore) EndSubmit(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.m[chatID]; ok {
		f.InFlight = false
	}
}
