package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"mentorpath/internal/model"
)

var (
	ErrDuplicateSession = errors.New("session id already exists")
	ErrSessionNotFound  = errors.New("session not found")
)

// SessionStore persists booked sessions one record at a time.
type SessionStore interface {
	Upsert(ctx context.Context, session *model.BookedSession) error
	Get(ctx context.Context, userID uint, id string) (*model.BookedSession, error)
	// Exists reports whether any user's ledger holds id.
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, userID uint, id string) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]model.BookedSession, error)
	ListMissingMeetingLink(ctx context.Context, limit int) ([]model.BookedSession, error)
}

// LedgerView is what a ledger read returns. A storage failure yields an
// empty list with Error set instead of an error return.
type LedgerView struct {
	Sessions []model.BookedSession `json:"sessions"`
	Error    string                `json:"error,omitempty"`
}

type LedgerService struct {
	store SessionStore
	links LinkProvisioner
	now   func() time.Time
}

func NewLedgerService(store SessionStore, links LinkProvisioner) *LedgerService {
	if links == nil {
		links = NoopLinkProvisioner{}
	}
	return &LedgerService{store: store, links: links, now: time.Now}
}

func (s *LedgerService) Create(ctx context.Context, userID uint, session model.BookedSession) (*model.BookedSession, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	session.ID = strings.TrimSpace(session.ID)
	if session.ID == "" {
		session.ID = uuid.NewString()
	} else {
		taken, err := s.store.Exists(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateSession
		}
	}
	session.UserID = userID
	if strings.TrimSpace(session.Status) == "" {
		session.Status = model.SessionStatusConfirmed
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now().UTC()
	}
	if session.MeetingLink == "" {
		link, err := s.links.Provision(ctx, session)
		if err != nil {
			log.Printf("provision meeting link for session %s failed: %v", session.ID, err)
		}
		session.MeetingLink = link
	}

	if err := s.store.Upsert(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *LedgerService) List(ctx context.Context, userID uint) LedgerView {
	sessions, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("load ledger of user %d failed: %v", userID, err)
		return LedgerView{Sessions: []model.BookedSession{}, Error: "failed to load booked sessions"}
	}
	if sessions == nil {
		sessions = []model.BookedSession{}
	}
	sortSessions(sessions)
	return LedgerView{Sessions: sessions}
}

func (s *LedgerService) Get(ctx context.Context, userID uint, id string) (*model.BookedSession, error) {
	session, err := s.store.Get(ctx, userID, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *LedgerService) Cancel(ctx context.Context, userID uint, id string) error {
	removed, err := s.store.Delete(ctx, userID, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !removed {
		return ErrSessionNotFound
	}
	return nil
}

// ProvisionPending assigns links to sessions that still lack one and
// reports how many were updated. A cancel landing between the reload and the
// write can bring that one session back.
func (s *LedgerService) ProvisionPending(ctx context.Context, limit int) (int, error) {
	pending, err := s.store.ListMissingMeetingLink(ctx, limit)
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, session := range pending {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}
		link, err := s.links.Provision(ctx, session)
		if err != nil {
			log.Printf("provision meeting link for session %s failed: %v", session.ID, err)
			continue
		}
		if link == "" {
			continue
		}
		current, err := s.store.Get(ctx, session.UserID, session.ID)
		if err != nil {
			return updated, fmt.Errorf("reload session %s failed: %w", session.ID, err)
		}
		if current == nil || current.MeetingLink != "" {
			continue
		}
		current.MeetingLink = link
		if err := s.store.Upsert(ctx, current); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
