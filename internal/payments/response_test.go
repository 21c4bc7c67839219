package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse_Text(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain string", raw: `"  Session booked!  "`, want: "Session booked!"},
		{
			name: "text artifacts only",
			raw:  `{"artifacts":[{"type":"text","content":" line one "},{"type":"image","content":"ignored"},{"type":"text","content":""},{"type":"text","content":"line two"}]}`,
			want: "line one\nline two",
		},
		{name: "kind fallback", raw: `{"artifacts":[{"kind":"text","content":"ok"}]}`, want: "ok"},
		{name: "empty body", raw: ``, want: ""},
		{name: "envelope without artifacts", raw: `{"status":"completed"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeResponse([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Text())
		})
	}
}

func TestDecodeResponse_Invalid(t *testing.T) {
	_, err := DecodeResponse([]byte(`[1,2]`))
	assert.Error(t, err)
}
