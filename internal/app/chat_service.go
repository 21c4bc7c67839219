package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"mentorpath/internal/attachment"
	"mentorpath/internal/model"
)

var (
	ErrMessageEmpty      = errors.New("message content is empty")
	ErrAttachmentTooBig  = errors.New("attachment exceeds size limit")
	ErrAttachmentMissing = errors.New("attachment is empty")
)

// TranscriptStore is the append-only primary store of session chats.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msg model.ChatMessage) error
	List(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	Fill(ctx context.Context, sessionID string, messages []model.ChatMessage) error
	Delete(ctx context.Context, sessionID string) error
}

// MessageArchive is the durable copy written by the archive worker.
type MessageArchive interface {
	ListBySessionID(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

type AsyncMessagePublisher interface {
	Publish(ctx context.Context, msg model.ChatMessage) error
}

// AttachmentStore keeps uploaded file content and returns a reference to it.
type AttachmentStore interface {
	Put(ctx context.Context, name, mime string, data []byte) (string, error)
	Get(ctx context.Context, ref string) (*attachment.Blob, error)
}

// SessionLookup finds a session in a user's ledger.
type SessionLookup interface {
	Get(ctx context.Context, userID uint, id string) (*model.BookedSession, error)
}

type SendMessageInput struct {
	SenderID   string
	SenderName string
	Content    string
}

type UploadInput struct {
	SenderID   string
	SenderName string
	FileName   string
	MIME       string
	Data       []byte
}

type ChatService struct {
	sessions    SessionLookup
	transcripts TranscriptStore
	archive     MessageArchive
	publisher   AsyncMessagePublisher
	attachments AttachmentStore
	maxBytes    int
	now         func() time.Time
}

func NewChatService(
	sessions SessionLookup,
	transcripts TranscriptStore,
	archive MessageArchive,
	publisher AsyncMessagePublisher,
	attachments AttachmentStore,
	maxBytes int,
) *ChatService {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &ChatService{
		sessions:    sessions,
		transcripts: transcripts,
		archive:     archive,
		publisher:   publisher,
		attachments: attachments,
		maxBytes:    maxBytes,
		now:         time.Now,
	}
}

func (s *ChatService) Send(ctx context.Context, userID uint, sessionID string, input SendMessageInput) (*model.ChatMessage, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrMessageEmpty
	}
	if err := s.ensureSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.append(ctx, sessionID, userID, input.SenderID, input.SenderName, content, nil)
}

// Upload stores the file and posts a message referencing it. Only the name,
// reference and MIME type end up in the transcript.
func (s *ChatService) Upload(ctx context.Context, userID uint, sessionID string, input UploadInput) (*model.ChatMessage, error) {
	if len(input.Data) == 0 {
		return nil, ErrAttachmentMissing
	}
	if len(input.Data) > s.maxBytes {
		return nil, ErrAttachmentTooBig
	}
	if err := s.ensureSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	mime := strings.TrimSpace(input.MIME)
	if mime == "" {
		mime = "application/octet-stream"
	}
	ref, err := s.attachments.Put(ctx, input.FileName, mime, input.Data)
	if err != nil {
		return nil, err
	}
	attachments := []model.Attachment{{Name: input.FileName, Ref: ref, MIME: mime}}
	return s.append(ctx, sessionID, userID, input.SenderID, input.SenderName, "Shared a file", attachments)
}

// Attachment returns a file shared in the session. The reference must appear
// on one of the session's messages.
func (s *ChatService) Attachment(ctx context.Context, userID uint, sessionID, ref string) (*attachment.Blob, error) {
	history, err := s.History(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	for _, msg := range history {
		for _, att := range msg.Attachments {
			if att.Ref == ref {
				return s.attachments.Get(ctx, ref)
			}
		}
	}
	return nil, attachment.ErrNotFound
}

// History reads the live transcript. An empty transcript is rebuilt from the
// archive, which covers a flushed or restarted redis.
func (s *ChatService) History(ctx context.Context, userID uint, sessionID string) ([]model.ChatMessage, error) {
	if err := s.ensureSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.restore(ctx, sessionID)
}

// restore returns the live transcript, refilling it from the archive when
// the live list is gone. Archive errors are logged and leave it empty.
func (s *ChatService) restore(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	messages, err := s.transcripts.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(messages) > 0 || s.archive == nil {
		return messages, nil
	}

	archived, err := s.archive.ListBySessionID(ctx, sessionID)
	if err != nil {
		log.Printf("load archived chat of session %s failed: %v", sessionID, err)
		return []model.ChatMessage{}, nil
	}
	if len(archived) == 0 {
		return []model.ChatMessage{}, nil
	}
	if err := s.transcripts.Fill(ctx, sessionID, archived); err != nil {
		log.Printf("backfill chat of session %s failed: %v", sessionID, err)
	}
	return archived, nil
}

// Clear drops both copies of a session transcript.
func (s *ChatService) Clear(ctx context.Context, sessionID string) error {
	if err := s.transcripts.Delete(ctx, sessionID); err != nil {
		return err
	}
	if s.archive != nil {
		if err := s.archive.DeleteBySessionID(ctx, sessionID); err != nil {
			return err
		}
	}
	return nil
}

func (s *ChatService) ensureSession(ctx context.Context, userID uint, sessionID string) error {
	if userID == 0 || strings.TrimSpace(sessionID) == "" {
		return ErrInvalidInput
	}
	session, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	return nil
}

func (s *ChatService) append(
	ctx context.Context,
	sessionID string,
	userID uint,
	senderID, senderName, content string,
	attachments []model.Attachment,
) (*model.ChatMessage, error) {
	if senderID == "" {
		senderID = fmt.Sprintf("%d", userID)
	}
	msg := model.ChatMessage{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		SenderID:    senderID,
		SenderName:  senderName,
		Content:     content,
		Attachments: attachments,
		Timestamp:   s.now().UTC(),
	}
	// A lost live list must be refilled first or the push would start a new
	// one that hides the archived messages.
	if _, err := s.restore(ctx, sessionID); err != nil {
		return nil, err
	}
	if err := s.transcripts.Append(ctx, sessionID, msg); err != nil {
		return nil, err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, msg); err != nil {
			log.Printf("enqueue chat message %s for archive failed: %v", msg.ID, err)
		}
	}
	return &msg, nil
}
