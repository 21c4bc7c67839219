package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"mentorpath/internal/model"
	"mentorpath/internal/payments"
)

type BookingInput struct {
	MentorID   string  `json:"mentorId" validate:"required,max=128"`
	MentorName string  `json:"mentorName" validate:"max=128"`
	Date       string  `json:"date" validate:"required"`
	Time       string  `json:"time" validate:"required"`
	Duration   int     `json:"duration" validate:"gt=0,lte=480"`
	Topic      string  `json:"topic" validate:"max=255"`
	Goals      string  `json:"goals" validate:"max=4000"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	Status     string  `json:"status" validate:"omitempty,max=32"`
}

type BookingResult struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Session *model.BookedSession `json:"session,omitempty"`
}

// Payer is the part of the payment flow a booking needs.
type Payer interface {
	Pay(ctx context.Context, userID uint, input PaymentInput) (*PaymentResult, error)
	BookSession(ctx context.Context, userID uint, instruction string, metadata payments.Metadata) (payments.Outcome, error)
}

type BookingService struct {
	payer  Payer
	ledger *LedgerService
}

func NewBookingService(payer Payer, ledger *LedgerService) *BookingService {
	return &BookingService{payer: payer, ledger: ledger}
}

// Book pays the mentor, asks the gateway to book the slot and records the
// session. A booking reply that cannot be read either way still records the
// session, as pending, because the payment has already gone through.
func (s *BookingService) Book(ctx context.Context, userID uint, input BookingInput) (*BookingResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	mentorName := strings.TrimSpace(input.MentorName)
	if mentorName == "" {
		mentorName = input.MentorID
	}

	if input.Amount > 0 {
		payment, err := s.payer.Pay(ctx, userID, PaymentInput{
			MentorID:   input.MentorID,
			MentorName: mentorName,
			Amount:     input.Amount,
			Date:       input.Date,
			Time:       input.Time,
		})
		if errors.Is(err, ErrInsufficientBalance) {
			return &BookingResult{Success: false, Message: err.Error()}, nil
		}
		if err != nil {
			return nil, err
		}
		if !payment.Paid {
			return &BookingResult{Success: false, Message: payment.Message}, nil
		}
	}

	instruction := fmt.Sprintf("Book a session with payee ID %s for %s at %s for %d minutes. Topic: %s. Goals: %s.",
		input.MentorID, input.Date, input.Time, input.Duration, input.Topic, input.Goals)
	outcome, err := s.payer.BookSession(ctx, userID, instruction, payments.Metadata{
		"mentorId":      input.MentorID,
		"sessionDate":   input.Date,
		"sessionTime":   input.Time,
		"duration":      input.Duration,
		"topic":         input.Topic,
		"goals":         input.Goals,
		"paymentAmount": input.Amount,
		"paymentStatus": "completed",
		"paymentMethod": "TDS",
	})
	if err != nil {
		log.Printf("book session for user %d with mentor %s failed after payment: %v", userID, input.MentorID, err)
		outcome = payments.Outcome{Status: payments.StatusUnknown}
	}

	status := strings.TrimSpace(input.Status)
	message := fmt.Sprintf("Your session with %s has been booked successfully.", mentorName)
	switch outcome.Status {
	case payments.StatusFailure:
		return &BookingResult{Success: false, Message: reasonOr(outcome.Reason, "Failed to book session.")}, nil
	case payments.StatusUnknown:
		status = model.SessionStatusPending
		message = fmt.Sprintf("Your session with %s is pending confirmation.", mentorName)
	}

	session, err := s.ledger.Create(ctx, userID, model.BookedSession{
		MentorID:   input.MentorID,
		MentorName: mentorName,
		Date:       input.Date,
		Time:       input.Time,
		Duration:   input.Duration,
		Topic:      input.Topic,
		Goals:      input.Goals,
		Amount:     input.Amount,
		Status:     status,
	})
	if err != nil && input.Amount > 0 {
		log.Printf("paid booking not recorded: user=%d mentor=%s amount=%.2f date=%s time=%s: %v",
			userID, input.MentorID, input.Amount, input.Date, input.Time, err)
		return &BookingResult{
			Success: false,
			Message: fmt.Sprintf("Payment of %s to %s succeeded but the session could not be recorded. Please contact support.",
				payments.FormatTDS(input.Amount), mentorName),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &BookingResult{Success: true, Message: message, Session: session}, nil
}
