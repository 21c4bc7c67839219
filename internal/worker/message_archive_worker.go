package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"mentorpath/internal/model"
	"mentorpath/internal/platform/rabbitmq"
)

// MessageSaver persists one archived chat message.
type MessageSaver interface {
	Save(ctx context.Context, message *model.ChatMessage) error
}

// MessageArchiveWorker drains the archive queue into SQL.
type MessageArchiveWorker struct {
	conn      *amqp.Connection
	saver     MessageSaver
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMessageArchiveWorker(conn *amqp.Connection, saver MessageSaver, queueName string) *MessageArchiveWorker {
	return &MessageArchiveWorker{
		conn:      conn,
		saver:     saver,
		queueName: queueName,
	}
}

func (w *MessageArchiveWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}
	if err := ch.Qos(32, 0, false); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("set worker prefetch failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := archive(workerCtx, w.saver, d.Body); err != nil {
					log.Printf("archive worker: %v", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *MessageArchiveWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func archive(ctx context.Context, saver MessageSaver, body []byte) error {
	var msg model.ChatMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("decode message failed: %w", err)
	}
	if msg.ID == "" || msg.SessionID == "" {
		return fmt.Errorf("message without id or session dropped")
	}
	if err := saver.Save(ctx, &msg); err != nil {
		return fmt.Errorf("persist message %s failed: %w", msg.ID, err)
	}
	return nil
}
