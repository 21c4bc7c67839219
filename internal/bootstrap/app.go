package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mentorpath/internal/app"
	"mentorpath/internal/cache"
	"mentorpath/internal/career"
	"mentorpath/internal/config"
	"mentorpath/internal/model"
	"mentorpath/internal/payments"
	"mentorpath/internal/platform/database"
	rabbitmqClient "mentorpath/internal/platform/rabbitmq"
	redisClient "mentorpath/internal/platform/redis"
	"mentorpath/internal/repository"
	"mentorpath/internal/worker"
)

// Services are the use cases the HTTP layer serves.
type Services struct {
	Auth    *app.AuthService
	Career  *career.Synthesizer
	Ledger  *app.LedgerService
	Booking *app.BookingService
	Payment *app.PaymentService
	Mentor  *app.MentorService
	Chat    *app.ChatService
	Resume  *app.ResumeService
}

type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	MQConn   *amqp.Connection
	Payments *payments.Registry
	Services Services

	MessageWorker    *worker.MessageArchiveWorker
	BalancePoller    *worker.BalancePoller
	SessionRefresher *worker.SessionRefresher

	closeCompleter func() error
	StartedAt      time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	a := &App{Config: cfg, StartedAt: time.Now()}
	if err := a.init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	db, err := database.New(ctx, cfg.Database.Driver, cfg.DatabaseDSN())
	if err != nil {
		return err
	}
	a.DB = db
	if err := db.AutoMigrate(&model.User{}, &model.BookedSession{}, &model.ChatMessage{}); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}

	a.Redis, err = redisClient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}

	a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MessageArchiveQueue)
	if err != nil {
		return err
	}

	completer, closeCompleter, err := NewCompleter(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	a.closeCompleter = closeCompleter

	a.Payments, err = newRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	attachments, err := newAttachmentStore(ctx, cfg.Attachments)
	if err != nil {
		return err
	}

	var sessions app.SessionStore
	switch cfg.Ledger.Backend {
	case "redis":
		sessions = cache.NewLedgerStore(a.Redis)
	default:
		sessions = repository.NewBookedSessionRepository(db)
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	balanceTTL := time.Duration(cfg.Redis.BalanceTTLSeconds) * time.Second

	ledger := app.NewLedgerService(sessions, newLinkProvisioner(cfg.Ledger))
	paymentService := app.NewPaymentService(
		a.Payments,
		payments.NewStructuredInterpreter(payments.NewKeywordInterpreter()),
		cache.NewBalanceCache(a.Redis, balanceTTL),
		cfg.Payments.Source,
	)
	a.Services = Services{
		Auth: app.NewAuthService(
			userRepo,
			a.Payments,
			cfg.Auth.JWTSecret,
			time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute,
		),
		Career:  career.NewSynthesizer(completer),
		Ledger:  ledger,
		Booking: app.NewBookingService(paymentService, ledger),
		Payment: paymentService,
		Mentor:  app.NewMentorService(paymentService),
		Chat: app.NewChatService(
			sessions,
			cache.NewTranscriptCache(a.Redis),
			messageRepo,
			rabbitmqClient.NewMessagePublisher(a.MQConn, cfg.RabbitMQ.MessageArchiveQueue),
			attachments,
			cfg.Attachments.MaxBytes,
		),
		Resume: app.NewResumeService(),
	}

	a.MessageWorker = worker.NewMessageArchiveWorker(a.MQConn, messageRepo, cfg.RabbitMQ.MessageArchiveQueue)
	if err := a.MessageWorker.Start(ctx); err != nil {
		return fmt.Errorf("start message worker failed: %w", err)
	}
	a.BalancePoller = worker.NewBalancePoller(a.Payments, paymentService, cfg.BalanceInterval())
	a.BalancePoller.Start(ctx)
	a.SessionRefresher = worker.NewSessionRefresher(ledger, cfg.SessionInterval())
	a.SessionRefresher.Start(ctx)

	log.Printf("bootstrap done: db=%s ledger=%s llm=%s attachments=%s",
		cfg.Database.Driver, cfg.Ledger.Backend, cfg.LLM.Provider, cfg.Attachments.Backend)
	return nil
}

func (a *App) Close() error {
	var closeErr error
	if a.BalancePoller != nil {
		a.BalancePoller.Close()
	}
	if a.SessionRefresher != nil {
		a.SessionRefresher.Close()
	}
	if a.MessageWorker != nil {
		a.MessageWorker.Close()
	}
	if a.closeCompleter != nil {
		if err := a.closeCompleter(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
