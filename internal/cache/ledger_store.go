package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	redisv9 "github.com/redis/go-redis/v9"

	"mentorpath/internal/model"
)

const (
	ledgerUsersKey  = "ledger:users"
	ledgerOwnersKey = "ledger:owners"
)

// LedgerStore keeps one redis hash per user, keyed by session id. Every
// write touches a single field, never the whole ledger.
type LedgerStore struct {
	client *redisv9.Client
}

func NewLedgerStore(client *redisv9.Client) *LedgerStore {
	return &LedgerStore{client: client}
}

func (s *LedgerStore) Upsert(ctx context.Context, session *model.BookedSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal booked session failed: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
		pipe.HSet(ctx, s.ledgerKey(session.UserID), session.ID, payload)
		pipe.SAdd(ctx, ledgerUsersKey, session.UserID)
		pipe.HSet(ctx, ledgerOwnersKey, session.ID, session.UserID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis upsert booked session failed: %w", err)
	}
	return nil
}

func (s *LedgerStore) Get(ctx context.Context, userID uint, id string) (*model.BookedSession, error) {
	raw, err := s.client.HGet(ctx, s.ledgerKey(userID), id).Result()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get booked session failed: %w", err)
	}
	var session model.BookedSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("unmarshal booked session failed: %w", err)
	}
	return &session, nil
}

// Exists checks the id index shared by all users.
func (s *LedgerStore) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.HExists(ctx, ledgerOwnersKey, id).Result()
	if err != nil {
		return false, fmt.Errorf("redis check booked session id failed: %w", err)
	}
	return ok, nil
}

func (s *LedgerStore) Delete(ctx context.Context, userID uint, id string) (bool, error) {
	removed, err := s.client.HDel(ctx, s.ledgerKey(userID), id).Result()
	if err != nil {
		return false, fmt.Errorf("redis delete booked session failed: %w", err)
	}
	if removed > 0 {
		if err := s.client.HDel(ctx, ledgerOwnersKey, id).Err(); err != nil {
			log.Printf("drop owner index of booked session %s failed: %v", id, err)
		}
	}
	return removed > 0, nil
}

func (s *LedgerStore) ListByUser(ctx context.Context, userID uint) ([]model.BookedSession, error) {
	raw, err := s.client.HGetAll(ctx, s.ledgerKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list booked sessions failed: %w", err)
	}
	sessions := make([]model.BookedSession, 0, len(raw))
	for id, item := range raw {
		var session model.BookedSession
		if err := json.Unmarshal([]byte(item), &session); err != nil {
			log.Printf("skip corrupt booked session %s of user %d: %v", id, userID, err)
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *LedgerStore) ListMissingMeetingLink(ctx context.Context, limit int) ([]model.BookedSession, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	members, err := s.client.SMembers(ctx, ledgerUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list ledger users failed: %w", err)
	}

	var pending []model.BookedSession
	for _, member := range members {
		userID, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		sessions, err := s.ListByUser(ctx, uint(userID))
		if err != nil {
			return nil, err
		}
		for _, session := range sessions {
			if session.MeetingLink != "" {
				continue
			}
			pending = append(pending, session)
			if len(pending) >= limit {
				return pending, nil
			}
		}
	}
	return pending, nil
}

func (s *LedgerStore) ledgerKey(userID uint) string {
	return fmt.Sprintf("ledger:%d", userID)
}
