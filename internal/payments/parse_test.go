package payments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBalance(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"Your current balance is 1,250.50 TDS.", 1250.5},
		{"1000 TDS", 1000},
		{"You have 42 available", 42},
		{"Balance: 3 USD and 7.25 TDS", 7.25},
		{"Sure, your balance is 1000", 1000},
		{"Hi, you hold 2,500 TDS, nice.", 2500},
	}
	for _, tt := range tests {
		got, err := ParseBalance(tt.text)
		require.NoError(t, err, tt.text)
		assert.InDelta(t, tt.want, got, 0.0001, tt.text)
	}

	_, err := ParseBalance("no idea, sorry")
	assert.ErrorIs(t, err, ErrNoAmount)
	assert.Equal(t, "1250.50 TDS", FormatTDS(1250.5))
}

func TestParsePayees(t *testing.T) {
	text := `Here are your payees:
Payee 1:
- ID: pd-123
- Name: Ada Lovelace
Payee 2:
- Name: Grace Hopper
Payee 3:
- ID: pd-789
`
	payees := ParsePayees(text)
	require.Len(t, payees, 3)

	assert.Equal(t, Payee{ID: "pd-123", Name: "Ada Lovelace"}, payees[0])
	assert.True(t, strings.HasPrefix(payees[1].ID, "mentor-"))
	assert.Equal(t, "Grace Hopper", payees[1].Name)
	assert.Equal(t, Payee{ID: "pd-789", Name: "pd-789"}, payees[2])
}

func TestNormalizeTransactions(t *testing.T) {
	text := "Date:2025-06-01,   Amount:50 TDS\n\n  Recipient:Ada  "
	assert.Equal(t, []string{
		"Date: 2025-06-01, Amount: 50 TDS",
		"Recipient: Ada",
	}, NormalizeTransactions(text))
}
