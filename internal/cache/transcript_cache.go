package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"mentorpath/internal/model"
)

// TranscriptCache keeps each session's chat log as a redis list. Appends are
// RPUSHes, so concurrent writers never drop each other's messages.
type TranscriptCache struct {
	client *redisv9.Client
}

func NewTranscriptCache(client *redisv9.Client) *TranscriptCache {
	return &TranscriptCache{client: client}
}

func (c *TranscriptCache) Append(ctx context.Context, sessionID string, message model.ChatMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal chat message failed: %w", err)
	}
	if err := c.client.RPush(ctx, c.transcriptKey(sessionID), payload).Err(); err != nil {
		return fmt.Errorf("redis append chat message failed: %w", err)
	}
	return nil
}

// List returns the transcript in append order. Entries that no longer decode
// are skipped.
func (c *TranscriptCache) List(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	raw, err := c.client.LRange(ctx, c.transcriptKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list chat messages failed: %w", err)
	}

	messages := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var message model.ChatMessage
		if err := json.Unmarshal([]byte(item), &message); err != nil {
			log.Printf("skip corrupt chat message in session %s: %v", sessionID, err)
			continue
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// Fill seeds an empty transcript from the archive. It does nothing when the
// list already exists, so it never races an append into a duplicate.
func (c *TranscriptCache) Fill(ctx context.Context, sessionID string, messages []model.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	payloads := make([]interface{}, 0, len(messages))
	for _, message := range messages {
		payload, err := json.Marshal(message)
		if err != nil {
			return fmt.Errorf("marshal chat message failed: %w", err)
		}
		payloads = append(payloads, payload)
	}

	key := c.transcriptKey(sessionID)
	err := c.client.Watch(ctx, func(tx *redisv9.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
			pipe.RPush(ctx, key, payloads...)
			return nil
		})
		return err
	}, key)
	if err != nil && err != redisv9.TxFailedErr {
		return fmt.Errorf("redis fill transcript failed: %w", err)
	}
	return nil
}

func (c *TranscriptCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, c.transcriptKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete transcript failed: %w", err)
	}
	return nil
}

func (c *TranscriptCache) transcriptKey(sessionID string) string {
	return fmt.Sprintf("chat:%s", sessionID)
}
