// Package payments talks to the external payments agent that owns payees,
// wallet balances and transfers.
package payments

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

type RequestType string

const (
	RequestBookSession     RequestType = "book_session"
	RequestMakePayment     RequestType = "make_payment"
	RequestGetTransactions RequestType = "get_transactions"
	RequestCreatePayee     RequestType = "create_payee"
	RequestListPayees      RequestType = "list_payees"
	RequestGetBalance      RequestType = "get_balance"
)

var ErrGateway = errors.New("payments gateway request failed")

type Credentials struct {
	ClientID     string
	ClientSecret string
}

type Config struct {
	BaseURL  string
	TokenURL string
	Source   string
	Timeout  time.Duration
}

// Metadata travels with every instruction so the gateway can route it.
type Metadata map[string]any

// Gateway is the single natural-language operation the gateway offers.
// onUpdate, when set, receives intermediate messages before the final one.
type Gateway interface {
	Ask(ctx context.Context, instruction string, metadata Metadata, onUpdate func(*Response)) (*Response, error)
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

type askRequest struct {
	Instruction string   `json:"instruction"`
	Metadata    Metadata `json:"metadata,omitempty"`
}

// NewClient builds a client whose HTTP transport fetches and refreshes an
// OAuth2 token with the given client credentials.
func NewClient(ctx context.Context, cfg Config, creds Credentials) (*Client, error) {
	if strings.TrimSpace(creds.ClientID) == "" || strings.TrimSpace(creds.ClientSecret) == "" {
		return nil, ErrMissingCredentials
	}
	oauthCfg := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	httpClient := oauthCfg.Client(ctx)
	return newClient(cfg, httpClient), nil
}

func newClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	httpClient.Timeout = cfg.Timeout
	if cfg.Source == "" {
		cfg.Source = "mentor-booking"
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

func (c *Client) Ask(ctx context.Context, instruction string, metadata Metadata, onUpdate func(*Response)) (*Response, error) {
	meta := Metadata{"source": c.cfg.Source}
	for k, v := range metadata {
		meta[k] = v
	}

	bodyBytes, err := json.Marshal(askRequest{Instruction: instruction, Metadata: meta})
	if err != nil {
		return nil, fmt.Errorf("marshal gateway request failed: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/ask"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("build gateway request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrGateway, resp.StatusCode, string(raw))
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		return readStream(resp.Body, onUpdate)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response failed: %w", err)
	}
	return DecodeResponse(raw)
}

// readStream consumes server-sent events. "result" ends the stream, "error"
// fails it and anything else is an intermediate update. A stream that ends
// without a result yields its last update.
func readStream(body io.Reader, onUpdate func(*Response)) (*Response, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var (
		event string
		data  strings.Builder
		last  *Response
	)

	dispatch := func() (*Response, bool, error) {
		defer func() {
			event = ""
			data.Reset()
		}()
		if data.Len() == 0 {
			return nil, false, nil
		}
		if event == "error" {
			return nil, true, fmt.Errorf("%w: %s", ErrGateway, data.String())
		}
		decoded, err := DecodeResponse([]byte(data.String()))
		if err != nil {
			return nil, false, nil
		}
		if event == "result" {
			return decoded, true, nil
		}
		last = decoded
		if onUpdate != nil {
			onUpdate(decoded)
		}
		return nil, false, nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			if final, done, err := dispatch(); done {
				return final, err
			}
			continue
		}
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan gateway stream failed: %w", err)
	}
	if final, done, err := dispatch(); done {
		return final, err
	}
	if last == nil {
		return &Response{}, nil
	}
	return last, nil
}
