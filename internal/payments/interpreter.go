package payments

import (
	"regexp"
	"strings"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the interpreted result of one gateway call. Reason is a user
// facing explanation for failures.
type Outcome struct {
	Status Status
	Reason string
}

// Interpreter decides whether a gateway reply means the request succeeded.
type Interpreter interface {
	Interpret(requestType RequestType, resp *Response) Outcome
}

type failureRule struct {
	keywords []string
	reason   string
}

type keywordRules struct {
	success  []string
	failures []failureRule

	// hintsUndecided keeps a bare failure hint such as "could not" from
	// settling the outcome; the caller confirms by other means instead.
	hintsUndecided bool
}

var (
	// negatedSuccess matches phrases that negate a success word outright.
	negatedSuccess = regexp.MustCompile(`\b(?:unsuccessful(?:ly)?|not (?:successful(?:ly)?|completed|booked|confirmed|paid|processed|added|created)|nothing was booked)\b`)
	// failureHint matches wording that suggests something went wrong without
	// saying what.
	failureHint = regexp.MustCompile(`\b(?:could not|couldn't|unable to|failed)\b`)
	// harmlessFailure matches phrases like "no failed checks".
	harmlessFailure = regexp.MustCompile(`\b(?:no|zero|without)\s+(?:failed|failures?)\b`)
)

const genericFailureReason = "The request did not go through."

var defaultKeywordRules = map[RequestType]keywordRules{
	RequestBookSession: {
		success: []string{"success", "booked", "confirmed"},
		failures: []failureRule{
			{
				keywords: []string{"unavailable", "not available"},
				reason:   "The selected time slot is no longer available. Please choose another time.",
			},
			{
				keywords: []string{"invalid"},
				reason:   "The selected time slot is invalid. Please choose another time.",
			},
		},
	},
	RequestMakePayment: {
		success: []string{
			"success", "paid", "completed", "payment processed",
			"transaction successful", "amount transferred", "payment confirmed",
		},
		failures: []failureRule{
			{keywords: []string{"insufficient"}, reason: "Insufficient TDS balance."},
			{keywords: []string{"declined"}, reason: "The payment was declined."},
		},
		hintsUndecided: true,
	},
	RequestCreatePayee: {
		success: []string{"created", "success", "added"},
		failures: []failureRule{
			{keywords: []string{"already exists"}, reason: "A payee with these details already exists."},
			{keywords: []string{"invalid"}, reason: "The payee details are invalid."},
		},
	},
}

// KeywordInterpreter sniffs the reply text for known phrases. It is a best
// effort reading of free text:
//   - a success word with no negative wording is StatusSuccess;
//   - an explicit failure phrase is StatusFailure with its reason;
//   - a success word next to negative wording ("completed, but we could not
//     send the receipt") is StatusUnknown;
//   - negative wording alone is a generic StatusFailure, except for
//     payments where a bare hint stays StatusUnknown;
//   - anything else is StatusUnknown.
type KeywordInterpreter struct {
	rules map[RequestType]keywordRules
}

func NewKeywordInterpreter() *KeywordInterpreter {
	return &KeywordInterpreter{rules: defaultKeywordRules}
}

func (k *KeywordInterpreter) Interpret(requestType RequestType, resp *Response) Outcome {
	rules, ok := k.rules[requestType]
	if !ok {
		return Outcome{Status: StatusUnknown}
	}
	text := strings.ToLower(resp.Text())
	if text == "" {
		return Outcome{Status: StatusUnknown}
	}

	negated := negatedSuccess.MatchString(text)
	// Negated success phrases are removed so "unsuccessful" does not read
	// as "successful".
	remainder := negatedSuccess.ReplaceAllString(text, " ")
	hinted := failureHint.MatchString(harmlessFailure.ReplaceAllString(remainder, " "))
	success := containsAny(remainder, rules.success)

	if success && !negated && !hinted {
		return Outcome{Status: StatusSuccess}
	}
	for _, rule := range rules.failures {
		if containsAny(text, rule.keywords) {
			return Outcome{Status: StatusFailure, Reason: rule.reason}
		}
	}
	switch {
	case success:
		return Outcome{Status: StatusUnknown}
	case negated:
		return Outcome{Status: StatusFailure, Reason: genericFailureReason}
	case hinted && !rules.hintsUndecided:
		return Outcome{Status: StatusFailure, Reason: genericFailureReason}
	}
	return Outcome{Status: StatusUnknown}
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// StructuredInterpreter trusts the envelope status when the gateway sends
// one and hands everything else to the fallback interpreter.
type StructuredInterpreter struct {
	fallback Interpreter
}

func NewStructuredInterpreter(fallback Interpreter) *StructuredInterpreter {
	if fallback == nil {
		fallback = NewKeywordInterpreter()
	}
	return &StructuredInterpreter{fallback: fallback}
}

func (s *StructuredInterpreter) Interpret(requestType RequestType, resp *Response) Outcome {
	if resp != nil {
		switch strings.ToLower(strings.TrimSpace(resp.Status)) {
		case "completed", "succeeded", "success", "confirmed":
			return Outcome{Status: StatusSuccess}
		case "failed", "rejected", "error", "canceled", "cancelled":
			return Outcome{Status: StatusFailure, Reason: resp.Text()}
		}
	}
	return s.fallback.Interpret(requestType, resp)
}
