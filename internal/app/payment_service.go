package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"mentorpath/internal/payments"
)

var ErrInsufficientBalance = errors.New("insufficient TDS balance")

// GatewayProvider resolves the payments gateway of a user.
type GatewayProvider interface {
	Connect(ctx context.Context, userID uint, creds payments.Credentials) error
	Disconnect(userID uint)
	Get(userID uint) (payments.Gateway, error)
}

type BalanceCache interface {
	Get(ctx context.Context, userID uint) (float64, bool, error)
	Set(ctx context.Context, userID uint, amount float64) error
	Delete(ctx context.Context, userID uint) error
}

type PaymentInput struct {
	MentorID   string
	MentorName string
	Amount     float64
	Date       string
	Time       string
}

type PaymentResult struct {
	Paid    bool   `json:"paid"`
	Message string `json:"message"`
}

// PayeeResult reports a create_payee request.
type PayeeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type PaymentService struct {
	gateways    GatewayProvider
	interpreter payments.Interpreter
	balances    BalanceCache
	source      string
}

func NewPaymentService(gateways GatewayProvider, interpreter payments.Interpreter, balances BalanceCache, source string) *PaymentService {
	if interpreter == nil {
		interpreter = payments.NewStructuredInterpreter(payments.NewKeywordInterpreter())
	}
	if strings.TrimSpace(source) == "" {
		source = "mentor-booking"
	}
	return &PaymentService{
		gateways:    gateways,
		interpreter: interpreter,
		balances:    balances,
		source:      source,
	}
}

func (s *PaymentService) Connect(ctx context.Context, userID uint, creds payments.Credentials) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	if err := s.gateways.Connect(ctx, userID, creds); err != nil {
		return err
	}
	s.forgetBalance(ctx, userID)
	return nil
}

func (s *PaymentService) Disconnect(ctx context.Context, userID uint) {
	s.gateways.Disconnect(userID)
	s.forgetBalance(ctx, userID)
}

// Balance asks the gateway for the wallet balance and refreshes the cache.
func (s *PaymentService) Balance(ctx context.Context, userID uint) (float64, error) {
	resp, err := s.ask(ctx, userID,
		"What is my current TDS wallet balance? Please respond with just the amount in TDS format (e.g., 1000 TDS, 1000.00 TDS).",
		payments.RequestGetBalance, nil)
	if err != nil {
		return 0, err
	}
	amount, err := payments.ParseBalance(resp.Text())
	if err != nil {
		return 0, fmt.Errorf("read balance failed: %w", err)
	}
	if s.balances != nil {
		if err := s.balances.Set(ctx, userID, amount); err != nil {
			log.Printf("cache balance of user %d failed: %v", userID, err)
		}
	}
	return amount, nil
}

// CachedBalance serves the last polled balance when one is cached.
func (s *PaymentService) CachedBalance(ctx context.Context, userID uint) (float64, error) {
	if s.balances != nil {
		amount, ok, err := s.balances.Get(ctx, userID)
		if err != nil {
			log.Printf("read cached balance of user %d failed: %v", userID, err)
		}
		if ok {
			return amount, nil
		}
	}
	return s.Balance(ctx, userID)
}

// Pay transfers input.Amount to the mentor. When the gateway reply is
// neither a recognised success nor failure, the balance is queried again and
// the payment counts as made only if it went down.
func (s *PaymentService) Pay(ctx context.Context, userID uint, input PaymentInput) (*PaymentResult, error) {
	if input.Amount <= 0 || strings.TrimSpace(input.MentorName) == "" {
		return nil, ErrInvalidInput
	}
	before, err := s.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if before < input.Amount {
		return nil, fmt.Errorf("%w: you have %s but need %s",
			ErrInsufficientBalance, payments.FormatTDS(before), payments.FormatTDS(input.Amount))
	}

	instruction := fmt.Sprintf("Pay %s from my TDS wallet to %s for session on %s at %s",
		payments.FormatTDS(input.Amount), input.MentorName, input.Date, input.Time)
	resp, err := s.ask(ctx, userID, instruction, payments.RequestMakePayment, payments.Metadata{
		"mentorId":    input.MentorID,
		"mentorName":  input.MentorName,
		"amount":      input.Amount,
		"sessionDate": input.Date,
		"sessionTime": input.Time,
	})
	if err != nil {
		return nil, err
	}
	s.forgetBalance(ctx, userID)

	paid := &PaymentResult{
		Paid:    true,
		Message: fmt.Sprintf("Successfully paid %s to %s for your session", payments.FormatTDS(input.Amount), input.MentorName),
	}
	outcome := s.interpreter.Interpret(payments.RequestMakePayment, resp)
	switch outcome.Status {
	case payments.StatusSuccess:
		return paid, nil
	case payments.StatusFailure:
		return &PaymentResult{Paid: false, Message: reasonOr(outcome.Reason, "Payment failed.")}, nil
	}

	after, err := s.Balance(ctx, userID)
	if err != nil {
		log.Printf("confirm payment of user %d by balance failed: %v", userID, err)
		return &PaymentResult{Paid: false, Message: "The payment could not be confirmed."}, nil
	}
	if after < before {
		return paid, nil
	}
	return &PaymentResult{Paid: false, Message: reasonOr(resp.Text(), "The payment could not be confirmed.")}, nil
}

func (s *PaymentService) Transactions(ctx context.Context, userID uint) ([]string, error) {
	resp, err := s.ask(ctx, userID,
		"Show me my recent transaction history in the following format: Date: [date], Amount: [amount], Recipient: [name], Status: [status], Transaction ID: [id]",
		payments.RequestGetTransactions, nil)
	if err != nil {
		return nil, err
	}
	lines := payments.NormalizeTransactions(resp.Text())
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}

func (s *PaymentService) ListPayees(ctx context.Context, userID uint) ([]payments.Payee, error) {
	resp, err := s.ask(ctx, userID,
		"List all payees with their complete details including ID and name. Format each payee as:\nPayee X:\n- ID: ...\n- Name: ...\n",
		payments.RequestListPayees, nil)
	if err != nil {
		return nil, err
	}
	return payments.ParsePayees(resp.Text()), nil
}

func (s *PaymentService) CreatePayee(ctx context.Context, userID uint, name, email string) (*PayeeResult, error) {
	instruction := fmt.Sprintf("Create a new payee named %s with email %s", name, email)
	resp, err := s.ask(ctx, userID, instruction, payments.RequestCreatePayee, payments.Metadata{
		"name":  name,
		"email": email,
	})
	if err != nil {
		return nil, err
	}
	outcome := s.interpreter.Interpret(payments.RequestCreatePayee, resp)
	switch outcome.Status {
	case payments.StatusFailure:
		return &PayeeResult{Success: false, Message: reasonOr(outcome.Reason, "Failed to add mentor.")}, nil
	case payments.StatusSuccess:
		return &PayeeResult{Success: true, Message: fmt.Sprintf("%s has been added as a mentor.", name)}, nil
	}
	return &PayeeResult{Success: false, Message: reasonOr(resp.Text(), "Failed to add mentor.")}, nil
}

// BookSession forwards a booking request and interprets the reply.
func (s *PaymentService) BookSession(ctx context.Context, userID uint, instruction string, metadata payments.Metadata) (payments.Outcome, error) {
	resp, err := s.ask(ctx, userID, instruction, payments.RequestBookSession, metadata)
	if err != nil {
		return payments.Outcome{}, err
	}
	return s.interpreter.Interpret(payments.RequestBookSession, resp), nil
}

func (s *PaymentService) ask(ctx context.Context, userID uint, instruction string, requestType payments.RequestType, extra payments.Metadata) (*payments.Response, error) {
	gateway, err := s.gateways.Get(userID)
	if err != nil {
		return nil, err
	}
	metadata := payments.Metadata{
		"source":      s.source,
		"requestType": string(requestType),
	}
	for k, v := range extra {
		metadata[k] = v
	}
	resp, err := gateway.Ask(ctx, instruction, metadata, func(update *payments.Response) {
		log.Printf("payments %s update for user %d: %s", requestType, userID, update.Text())
	})
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", requestType, err)
	}
	return resp, nil
}

func (s *PaymentService) forgetBalance(ctx context.Context, userID uint) {
	if s.balances == nil {
		return
	}
	if err := s.balances.Delete(ctx, userID); err != nil {
		log.Printf("drop cached balance of user %d failed: %v", userID, err)
	}
}

func reasonOr(reason, fallback string) string {
	if strings.TrimSpace(reason) == "" {
		return fallback
	}
	return strings.TrimSpace(reason)
}
