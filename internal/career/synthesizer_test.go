package career

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorpath/internal/model"
)

type stubCompleter struct {
	reply  string
	err    error
	prompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func newTestSynthesizer(c *stubCompleter) *Synthesizer {
	s := NewSynthesizer(c)
	s.now = func() time.Time { return fixedNow }
	return s
}

var sampleProfile = model.Profile{
	Education:  "BSc Computer Science",
	Experience: []string{"2 years backend", " ", ""},
	Skills:     []string{"Go", "SQL"},
	Interests:  []string{"distributed systems"},
	Goals:      "Become a staff engineer",
	WorkStyle:  "remote",
}

func TestSynthesizer_PromptCarriesCleanProfile(t *testing.T) {
	c := &stubCompleter{reply: `{"steps":[{"title":"a"}]}`}
	_, err := newTestSynthesizer(c).Generate(context.Background(), sampleProfile)
	require.NoError(t, err)

	assert.Contains(t, c.prompt, "Education: BSc Computer Science\n")
	assert.Contains(t, c.prompt, "Experience: 2 years backend\n")
	assert.Contains(t, c.prompt, "Skills: Go, SQL\n")
	assert.Contains(t, c.prompt, "Preferred Work Style: remote\n")
	assert.Equal(t, BuildPrompt(CleanProfile(sampleProfile)), c.prompt)
}

func TestSynthesizer_EveryStepHasID(t *testing.T) {
	replies := []string{
		`{"steps":[{"title":"a"},{"id":"given"},{}]}`,
		"```json\n{\"title\":\"t\",\"steps\":[{\"description\":\"uses {braces}\"}]}\n```",
		"garbage",
		`{"steps": []}`,
	}
	for _, reply := range replies {
		path, err := newTestSynthesizer(&stubCompleter{reply: reply}).Generate(context.Background(), sampleProfile)
		require.NoError(t, err)
		require.NotEmpty(t, path.Steps, reply)
		for _, step := range path.Steps {
			assert.NotEmpty(t, strings.TrimSpace(step.ID), reply)
		}
	}
}

func TestSynthesizer_NoObjectReturnsExactFallback(t *testing.T) {
	path, err := newTestSynthesizer(&stubCompleter{reply: "Sorry, I can't produce JSON today."}).
		Generate(context.Background(), sampleProfile)
	require.NoError(t, err)
	assert.Equal(t, Fallback(fixedNow), path)
	assert.Equal(t, "Custom Career Path", path.Title)
	assert.Len(t, path.Steps, 2)
}

func TestSynthesizer_CompletionErrorPropagates(t *testing.T) {
	upstream := errors.New("status 503")
	_, err := newTestSynthesizer(&stubCompleter{err: upstream}).Generate(context.Background(), sampleProfile)
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
}

func TestSynthesizer_RejectsOversizedProfile(t *testing.T) {
	completer := &stubCompleter{reply: `{"title":"x"}`}
	profile := sampleProfile
	profile.Skills = []string{"Go", strings.Repeat("k", 201)}

	_, err := newTestSynthesizer(completer).Generate(context.Background(), profile)
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), "Skills")
	assert.Empty(t, completer.prompt, "completion service is not called")
}
