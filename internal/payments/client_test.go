package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AskJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ask", r.URL.Path)
		var req askRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is my balance?", req.Instruction)
		assert.Equal(t, "mentor-booking", req.Metadata["source"])
		assert.Equal(t, string(RequestGetBalance), req.Metadata["requestType"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"artifacts":[{"type":"text","content":"100 TDS"}]}`))
	}))
	defer server.Close()

	client := newClient(Config{BaseURL: server.URL}, server.Client())
	resp, err := client.Ask(context.Background(), "What is my balance?", Metadata{"requestType": string(RequestGetBalance)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "100 TDS", resp.Text())
}

func TestClient_AskStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: \"checking availability\"\n\n"))
		_, _ = w.Write([]byte("event: message\ndata: {\"artifacts\":[{\"type\":\"text\",\"content\":\"reserving\"}]}\n\n"))
		_, _ = w.Write([]byte("event: result\ndata: {\"status\":\"completed\",\"artifacts\":[{\"type\":\"text\",\"content\":\"Session booked\"}]}\n\n"))
	}))
	defer server.Close()

	var updates []string
	client := newClient(Config{BaseURL: server.URL}, server.Client())
	resp, err := client.Ask(context.Background(), "book", nil, func(r *Response) {
		updates = append(updates, r.Text())
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"checking availability", "reserving"}, updates)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "Session booked", resp.Text())
}

func TestClient_AskStreamWithoutResultUsesLastUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: \"first\"\n\ndata: \"Date: 2025-06-01, Amount: 50 TDS\"\n\n"))
	}))
	defer server.Close()

	client := newClient(Config{BaseURL: server.URL}, server.Client())
	resp, err := client.Ask(context.Background(), "history", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Date: 2025-06-01, Amount: 50 TDS", resp.Text())
}

func TestClient_AskErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "non 2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			},
			want: "401",
		},
		{
			name: "stream error event",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				_, _ = w.Write([]byte("event: error\ndata: payee not found\n\n"))
			},
			want: "payee not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newClient(Config{BaseURL: server.URL}, server.Client())
			_, err := client.Ask(context.Background(), "x", nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrGateway)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Config{}, Credentials{ClientID: "id"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}
