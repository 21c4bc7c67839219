package payments

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

var ErrNoAmount = errors.New("no amount in gateway reply")

var (
	tdsAmountPattern = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*TDS`)
	amountPattern    = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)`)
	payeeSplit       = regexp.MustCompile(`(?i)Payee \d+:`)
	payeeIDPattern   = regexp.MustCompile(`(?i)- ID:\s*([^\n]+)`)
	payeeNamePattern = regexp.MustCompile(`(?i)- Name:\s*([^\n]+)`)
	labelPattern     = regexp.MustCompile(`([A-Za-z]+):`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// ParseBalance reads the first "<amount> TDS" in text, or failing that the
// first number at all.
func ParseBalance(text string) (float64, error) {
	for _, pattern := range []*regexp.Regexp{tdsAmountPattern, amountPattern} {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			amount, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
			if err == nil {
				return amount, nil
			}
		}
	}
	return 0, ErrNoAmount
}

func FormatTDS(amount float64) string {
	return fmt.Sprintf("%.2f TDS", amount)
}

type Payee struct {
	ID   string
	Name string
}

// ParsePayees reads "Payee N:" blocks with "- ID:" and "- Name:" lines.
// Blocks without an ID get a random one; blocks without a name reuse the ID.
func ParsePayees(text string) []Payee {
	var payees []Payee
	for _, block := range payeeSplit.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		idMatch := payeeIDPattern.FindStringSubmatch(block)
		nameMatch := payeeNamePattern.FindStringSubmatch(block)
		if idMatch == nil && nameMatch == nil {
			continue
		}

		id := fmt.Sprintf("mentor-%s", randomSuffix())
		if idMatch != nil {
			id = strings.TrimSpace(idMatch[1])
		}
		name := id
		if nameMatch != nil {
			name = strings.TrimSpace(nameMatch[1])
		}
		payees = append(payees, Payee{ID: id, Name: name})
	}
	return payees
}

// NormalizeTransactions puts one space after every "Label:" and collapses
// runs of whitespace on each non-empty line.
func NormalizeTransactions(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		line = labelPattern.ReplaceAllString(line, "$1: ")
		line = spacePattern.ReplaceAllString(line, " ")
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

func randomSuffix() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 9)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
