package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func plain(text string) *Response { return &Response{Plain: text} }

func TestKeywordInterpreter(t *testing.T) {
	k := NewKeywordInterpreter()

	tests := []struct {
		name        string
		requestType RequestType
		text        string
		want        Status
		reason      string
	}{
		{"booked", RequestBookSession, "Your session is BOOKED for Monday", StatusSuccess, ""},
		{"confirmed", RequestBookSession, "Confirmed.", StatusSuccess, ""},
		{"unavailable", RequestBookSession, "That slot is not available", StatusFailure, "The selected time slot is no longer available. Please choose another time."},
		{"invalid", RequestBookSession, "Invalid time", StatusFailure, "The selected time slot is invalid. Please choose another time."},
		{"ambiguous booking", RequestBookSession, "I have forwarded your request", StatusUnknown, ""},
		{"paid", RequestMakePayment, "Amount transferred to Ada", StatusSuccess, ""},
		{"insufficient", RequestMakePayment, "Insufficient funds in wallet", StatusFailure, "Insufficient TDS balance."},
		{"no keyword payment", RequestMakePayment, "Working on it", StatusUnknown, ""},
		{"empty", RequestMakePayment, "", StatusUnknown, ""},
		{"untracked request type", RequestGetBalance, "success", StatusUnknown, ""},
		{"unsuccessful payment", RequestMakePayment, "Payment unsuccessful: insufficient balance", StatusFailure, "Insufficient TDS balance."},
		{"not completed payment", RequestMakePayment, "Payment not completed", StatusFailure, "The request did not go through."},
		{"nothing booked", RequestBookSession, "Slot unavailable, nothing was booked", StatusFailure, "The selected time slot is no longer available. Please choose another time."},
		{"completed with side failure", RequestMakePayment, "Payment completed. We could not send the receipt email.", StatusUnknown, ""},
		{"bare failure hint on payment", RequestMakePayment, "Transferred 50 TDS to Ada; failed to attach memo.", StatusUnknown, ""},
		{"declined beats success word", RequestMakePayment, "Payment could not be completed: card declined", StatusFailure, "The payment was declined."},
		{"bare failure hint on booking", RequestBookSession, "We could not reach the mentor", StatusFailure, "The request did not go through."},
		{"harmless failed", RequestMakePayment, "Payment processed with no failed checks", StatusSuccess, ""},
		{"failed inside a word", RequestCreatePayee, "Payee added to the unfailedqueue", StatusSuccess, ""},
		{"booked with side failure", RequestBookSession, "Session booked, but we were unable to send the invite", StatusUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := k.Interpret(tt.requestType, plain(tt.text))
			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestStructuredInterpreter(t *testing.T) {
	s := NewStructuredInterpreter(nil)

	assert.Equal(t, StatusSuccess, s.Interpret(RequestMakePayment, &Response{Status: "completed"}).Status)

	failed := s.Interpret(RequestMakePayment, &Response{
		Status:    "failed",
		Artifacts: []Artifact{{Type: "text", Content: "card declined"}},
	})
	assert.Equal(t, StatusFailure, failed.Status)
	assert.Equal(t, "card declined", failed.Reason)

	assert.Equal(t, StatusSuccess, s.Interpret(RequestBookSession, plain("booked")).Status)
	assert.Equal(t, StatusUnknown, s.Interpret(RequestMakePayment, &Response{Status: "working"}).Status)
}
