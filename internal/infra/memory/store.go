package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Store keeps every record in process memory behind one lock. It satisfies
// the same repository contracts as the gorm implementations.
type Store struct {
	mu sync.RWMutex

	users        map[uint]models.User
	appointments map[uint]models.Appointment
	messages     []models.Message
	auditLogs    []models.AuditLog

	nextUserID        uint
	nextAppointmentID uint
	nextMessageID     uint
	nextAuditID       uint

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:        make(map[uint]models.User),
		appointments: make(map[uint]models.Appointment),
		now:          time.Now,
	}
}

// SetClock replaces the timestamp source.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Ping(context.Context) error {
	return nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return httperr.ErrValidation("email_taken")
		}
	}

	s.nextUserID++
	now := s.now()
	u.ID = s.nextUserID
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, httperr.ErrNotFound("user_not_found")
}

func (s *Store) ListUsers(context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *Store) UpdateUserAdmin(_ context.Context, id uint, isAdmin bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	u.IsAdmin = isAdmin
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func (s *Store) DeleteUser(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return httperr.ErrNotFound("user_not_found")
	}

	for apID, ap := range s.appointments {
		if ap.UserID == id {
			s.deleteThreadLocked(apID)
			delete(s.appointments, apID)
		}
	}
	for i := range s.messages {
		if s.messages[i].SenderID != nil && *s.messages[i].SenderID == id {
			s.messages[i].SenderID = nil
		}
	}
	delete(s.users, id)
	return nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[ap.UserID]; !ok {
		return httperr.ErrNotFound("owner_not_found")
	}
	if ap.GuestToken == "" {
		ap.GuestToken = uuid.NewString()
	}

	s.nextAppointmentID++
	now := s.now()
	ap.ID = s.nextAppointmentID
	ap.CreatedAt = now
	ap.UpdatedAt = now

	stored := *ap
	stored.User = models.User{}
	stored.Messages = nil
	s.appointments[ap.ID] = stored
	return nil
}

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return &ap, nil
}

func (s *Store) GetAppointmentByGuestToken(_ context.Context, token string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ap := range s.appointments {
		if ap.GuestToken == token {
			return &ap, nil
		}
	}
	return nil, httperr.ErrNotFound("appointment_not_found")
}

func (s *Store) GetAppointmentDetail(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	detailed := s.withThreadLocked(ap)
	return &detailed, nil
}

func (s *Store) ListAppointments(_ context.Context, ownerID *uint) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Appointment, 0, len(s.appointments))
	for _, ap := range s.appointments {
		if ownerID != nil && ap.UserID != *ownerID {
			continue
		}
		list = append(list, s.withThreadLocked(ap))
	}

	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.ID < b.ID
	})
	return list, nil
}

func (s *Store) UpdateAppointmentStatus(_ context.Context, id uint, status domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return httperr.ErrNotFound("appointment_not_found")
	}
	ap.Status = status
	ap.UpdatedAt = s.now()
	s.appointments[id] = ap
	return nil
}

func (s *Store) UpdateAppointmentPhoto(_ context.Context, id uint, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return httperr.ErrNotFound("appointment_not_found")
	}
	ap.PhotoKey = key
	ap.UpdatedAt = s.now()
	s.appointments[id] = ap
	return nil
}

func (s *Store) DeleteAppointmentCascade(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return httperr.ErrNotFound("appointment_not_found")
	}
	s.deleteThreadLocked(id)
	delete(s.appointments, id)
	return nil
}

// --------------------------------------------------
// Messages
// --------------------------------------------------

func (s *Store) AppendMessage(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[msg.AppointmentID]; !ok {
		return httperr.ErrNotFound("appointment_not_found")
	}

	s.nextMessageID++
	msg.ID = s.nextMessageID
	msg.CreatedAt = s.now()

	stored := *msg
	stored.Sender = nil
	s.messages = append(s.messages, stored)
	return nil
}

func (s *Store) ListMessages(_ context.Context, appointmentID uint) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.threadLocked(appointmentID), nil
}

func (s *Store) threadLocked(appointmentID uint) []models.Message {
	thread := make([]models.Message, 0)
	for _, m := range s.messages {
		if m.AppointmentID != appointmentID {
			continue
		}
		if m.SenderID != nil {
			if u, ok := s.users[*m.SenderID]; ok {
				m.Sender = &u
			}
		}
		thread = append(thread, m)
	}

	sort.SliceStable(thread, func(i, j int) bool {
		if !thread[i].CreatedAt.Equal(thread[j].CreatedAt) {
			return thread[i].CreatedAt.Before(thread[j].CreatedAt)
		}
		return thread[i].ID < thread[j].ID
	})
	return thread
}

func (s *Store) withThreadLocked(ap models.Appointment) models.Appointment {
	ap.User = s.users[ap.UserID]
	ap.Messages = s.threadLocked(ap.ID)
	return ap
}

func (s *Store) deleteThreadLocked(appointmentID uint) {
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.AppointmentID != appointmentID {
			kept = append(kept, m)
		}
	}
	s.messages = kept
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *Store) SaveAuditLog(_ context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAuditID++
	log.ID = s.nextAuditID
	log.CreatedAt = s.now()
	s.auditLogs = append(s.auditLogs, *log)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.AuditLog
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		l := s.auditLogs[i]
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !l.CreatedAt.Before(f.To.Add(24*time.Hour)) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}
