package bootstrap

import (
	"context"
	"fmt"
	"time"

	"mentorpath/internal/ai"
	"mentorpath/internal/app"
	"mentorpath/internal/attachment"
	"mentorpath/internal/config"
	"mentorpath/internal/payments"
	s3Client "mentorpath/internal/platform/s3"
)

// NewCompleter picks the completion backend named by cfg.Provider. The
// returned close func is never nil.
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (ai.Completer, func() error, error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("llm api key is not configured")
	}
	switch cfg.Provider {
	case "sdk":
		client, err := ai.NewGeminiSDKClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		client := ai.NewGeminiRESTClient(ai.GeminiConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		})
		return client, func() error { return nil }, nil
	}
}

// newRegistry builds the per-user payments registry. Configured server-side
// credentials become the shared gateway for users without their own.
func newRegistry(ctx context.Context, cfg *config.Config) (*payments.Registry, error) {
	gatewayCfg := payments.Config{
		BaseURL:  cfg.Payments.BaseURL,
		TokenURL: cfg.Payments.TokenURL,
		Source:   cfg.Payments.Source,
	}
	var shared payments.Gateway
	if cfg.PaymentsConfigured() {
		client, err := payments.NewClient(ctx, gatewayCfg, payments.Credentials{
			ClientID:     cfg.Payments.ClientID,
			ClientSecret: cfg.Payments.ClientSecret,
		})
		if err != nil {
			return nil, fmt.Errorf("create shared payments client failed: %w", err)
		}
		shared = client
	}
	return payments.NewRegistry(payments.HTTPFactory(gatewayCfg), shared), nil
}

func newAttachmentStore(ctx context.Context, cfg config.AttachmentsConfig) (app.AttachmentStore, error) {
	if cfg.Backend != "s3" {
		return attachment.NewMemoryStore(), nil
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("attachments bucket is not configured")
	}
	client, err := s3Client.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return attachment.NewS3Store(client, cfg.Bucket), nil
}

func newLinkProvisioner(cfg config.LedgerConfig) app.LinkProvisioner {
	switch cfg.MeetingLink {
	case "calendar":
		return app.CalendarLinkProvisioner{}
	case "none":
		return app.NoopLinkProvisioner{}
	default:
		return app.StaticLinkProvisioner{Link: cfg.StaticMeetingLink}
	}
}
