package app

import (
	"context"
	"net/url"
	"strings"

	"mentorpath/internal/model"
	"mentorpath/internal/payments"
)

const defaultHourlyRate = 2

var (
	defaultAvailableDays  = []string{"Monday", "Wednesday", "Friday"}
	defaultAvailableSlots = []string{"9:00 AM", "10:00 AM", "11:00 AM", "2:00 PM", "3:00 PM", "4:00 PM"}
)

type AddMentorInput struct {
	Name  string `json:"name" validate:"required,max=128"`
	Email string `json:"email" validate:"required,email"`
}

// PayeeDirectory lists and registers payees on the payments gateway.
type PayeeDirectory interface {
	ListPayees(ctx context.Context, userID uint) ([]payments.Payee, error)
	CreatePayee(ctx context.Context, userID uint, name, email string) (*PayeeResult, error)
}

// MentorService presents gateway payees as bookable mentors.
type MentorService struct {
	payees PayeeDirectory
}

func NewMentorService(payees PayeeDirectory) *MentorService {
	return &MentorService{payees: payees}
}

func (s *MentorService) List(ctx context.Context, userID uint) ([]model.Mentor, error) {
	payees, err := s.payees.ListPayees(ctx, userID)
	if err != nil {
		return nil, err
	}
	mentors := make([]model.Mentor, 0, len(payees))
	for _, payee := range payees {
		mentors = append(mentors, mentorFromPayee(payee))
	}
	return mentors, nil
}

func (s *MentorService) Add(ctx context.Context, userID uint, input AddMentorInput) (*PayeeResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.payees.CreatePayee(ctx, userID, input.Name, input.Email)
}

func mentorFromPayee(payee payments.Payee) model.Mentor {
	return model.Mentor{
		ID:         payee.ID,
		Name:       payee.Name,
		Role:       "Professional Mentor",
		Expertise:  []string{"General Mentoring"},
		Experience: "Experienced professional in their field",
		Bio:        "No email/expertise info available.",
		Image:      "https://ui-avatars.com/api/?name=" + url.QueryEscape(payee.Name) + "&background=random",
		HourlyRate: defaultHourlyRate,
		Availability: model.Availability{
			Days:      append([]string(nil), defaultAvailableDays...),
			TimeSlots: append([]string(nil), defaultAvailableSlots...),
		},
	}
}
