// Package career turns a user profile into a structured career roadmap by
// prompting a completion service and parsing its free-text reply.
package career

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"mentorpath/internal/ai"
	"mentorpath/internal/model"
)

var ErrInvalidProfile = errors.New("invalid profile")

var validate = validator.New(validator.WithRequiredStructEnabled())

type Synthesizer struct {
	completer ai.Completer
	now       func() time.Time
}

func NewSynthesizer(completer ai.Completer) *Synthesizer {
	return &Synthesizer{completer: completer, now: time.Now}
}

// Generate returns a fully populated career path. Oversized profiles fail
// with ErrInvalidProfile and completion failures are returned; unparsable
// completions are logged and replaced by Fallback.
func (s *Synthesizer) Generate(ctx context.Context, profile model.Profile) (model.CareerPath, error) {
	profile = CleanProfile(profile)
	if err := validateProfile(profile); err != nil {
		return model.CareerPath{}, err
	}
	prompt := BuildPrompt(profile)

	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return model.CareerPath{}, fmt.Errorf("complete career path prompt failed: %w", err)
	}

	path, err := Parse(text, s.now())
	if err != nil {
		log.Printf("career path response unusable, using fallback: %v", err)
		return Fallback(s.now()), nil
	}
	return path, nil
}

func validateProfile(profile model.Profile) error {
	err := validate.Struct(profile)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Namespace()+" "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(fields, ", "))
}
