package model

import "time"

const (
	SessionStatusConfirmed = "confirmed"
	SessionStatusPending   = "pending"
)

// BookedSession is one mentor session in a user's ledger.
type BookedSession struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	MentorID    string    `gorm:"size:128;not null" json:"mentor_id"`
	MentorName  string    `gorm:"size:128" json:"mentor_name"`
	Date        string    `gorm:"size:32;not null" json:"date"`
	Time        string    `gorm:"size:16;not null" json:"time"`
	Duration    int       `gorm:"not null" json:"duration"`
	Topic       string    `gorm:"size:255" json:"topic"`
	Goals       string    `gorm:"type:text" json:"goals"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Status      string    `gorm:"size:32;not null;index" json:"status"`
	MeetingLink string    `gorm:"size:512" json:"meeting_link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
