package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mentorpath/internal/model"
)

// ErrForeignSession is returned when an upsert targets an id owned by
// another user.
var ErrForeignSession = errors.New("booked session belongs to another user")

// BookedSessionRepository keeps the ledger in SQL, one row per session.
type BookedSessionRepository struct {
	db *gorm.DB
}

func NewBookedSessionRepository(db *gorm.DB) *BookedSessionRepository {
	return &BookedSessionRepository{db: db}
}

// Upsert inserts or replaces the row with session.ID. A row with the same id
// but another owner is left untouched.
func (r *BookedSessionRepository) Upsert(ctx context.Context, session *model.BookedSession) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner model.BookedSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "user_id").
			Where("id = ?", session.ID).
			First(&owner).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(session).Error
		case err != nil:
			return err
		case owner.UserID != session.UserID:
			return ErrForeignSession
		}
		return tx.Save(session).Error
	})
	if err != nil {
		return fmt.Errorf("upsert booked session failed: %w", err)
	}
	return nil
}

func (r *BookedSessionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.BookedSession{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check booked session id failed: %w", err)
	}
	return count > 0, nil
}

func (r *BookedSessionRepository) Get(ctx context.Context, userID uint, id string) (*model.BookedSession, error) {
	var session model.BookedSession
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booked session failed: %w", err)
	}
	return &session, nil
}

func (r *BookedSessionRepository) Delete(ctx context.Context, userID uint, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.BookedSession{})
	if result.Error != nil {
		return false, fmt.Errorf("delete booked session failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *BookedSessionRepository) ListByUser(ctx context.Context, userID uint) ([]model.BookedSession, error) {
	var sessions []model.BookedSession
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list booked sessions failed: %w", err)
	}
	return sessions, nil
}

func (r *BookedSessionRepository) ListMissingMeetingLink(ctx context.Context, limit int) ([]model.BookedSession, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var sessions []model.BookedSession
	if err := r.db.WithContext(ctx).
		Where("meeting_link = ? OR meeting_link IS NULL", "").
		Order("created_at ASC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions without meeting link failed: %w", err)
	}
	return sessions, nil
}
