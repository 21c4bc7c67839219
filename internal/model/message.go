package model

import "time"

type Attachment struct {
	Name string `json:"name"`
	Ref  string `json:"ref"`
	MIME string `json:"mime"`
}

// ChatMessage belongs to a booked session. Attachment content is never
// stored, only the reference handed out by the attachment store.
type ChatMessage struct {
	ID          string       `gorm:"primaryKey;size:64" json:"id"`
	SessionID   string       `gorm:"size:64;not null;index" json:"session_id"`
	SenderID    string       `gorm:"size:64;not null" json:"sender_id"`
	SenderName  string       `gorm:"size:128" json:"sender_name"`
	Content     string       `gorm:"type:text;not null" json:"content"`
	Attachments []Attachment `gorm:"serializer:json;type:text" json:"attachments,omitempty"`
	Timestamp   time.Time    `gorm:"not null;index" json:"timestamp"`
}
