package app

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"mentorpath/internal/model"
	"mentorpath/internal/pkg/docextract"
)

var (
	ErrResumeEmpty       = errors.New("resume has no readable text")
	ErrResumeUnsupported = errors.New("resume must be a PDF, DOCX or plain text file")
)

var (
	emailPattern      = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phonePattern      = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	linkPattern       = regexp.MustCompile(`(?i)(https?://|www\.|linkedin\.com|github\.com)`)
	metricPattern     = regexp.MustCompile(`\d+(\.\d+)?\s*(%|k\b|m\b|x\b|\+)|\$\s?\d+`)
	summaryHeading    = regexp.MustCompile(`(?im)^\s*(professional\s+)?(summary|profile|objective|about me)\b`)
	experienceHeading = regexp.MustCompile(`(?im)^\s*(work\s+|professional\s+)?(experience|employment|work history)\b`)
	skillsHeading     = regexp.MustCompile(`(?im)^\s*(technical\s+|core\s+)?(skills|competencies|technologies)\b`)
	educationHeading  = regexp.MustCompile(`(?im)^\s*(education|academic|qualifications)\b`)
	degreePattern     = regexp.MustCompile(`(?i)\b(b\.?sc|m\.?sc|bachelor|master|ph\.?d|mba|diploma|degree|university|college)\b`)
	actionVerbs       = []string{"led", "built", "designed", "launched", "improved", "managed", "delivered", "developed", "reduced", "increased"}
)

type sectionRange struct {
	min, max int
}

var sectionRanges = map[string]sectionRange{
	"contact":    {80, 100},
	"summary":    {70, 100},
	"experience": {75, 100},
	"skills":     {80, 100},
	"education":  {85, 100},
}

// ResumeService scores a resume with text heuristics. The same document
// always gets the same score.
type ResumeService struct{}

func NewResumeService() *ResumeService {
	return &ResumeService{}
}

func (s *ResumeService) Check(filename, declaredMIME string, data []byte) (*model.ResumeScore, error) {
	mime := docextract.DetectMIME(filename, declaredMIME)
	text, err := docextract.ExtractText(mime, data)
	if errors.Is(err, docextract.ErrUnsupportedType) {
		return nil, ErrResumeUnsupported
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrResumeEmpty
	}
	return Score(text), nil
}

// Score grades extracted resume text.
func Score(text string) *model.ResumeScore {
	lower := strings.ToLower(text)
	words := len(strings.Fields(text))

	sections := map[string]int{
		"contact":    scoreContact(text),
		"summary":    scoreSummary(text, words),
		"experience": scoreExperience(text, lower),
		"skills":     scoreSkills(text),
		"education":  scoreEducation(text),
	}

	total := 0
	for name, value := range sections {
		r := sectionRanges[name]
		value = clamp(value, r.min, r.max)
		sections[name] = value
		total += value
	}

	return &model.ResumeScore{
		Overall:     int(math.Round(float64(total) / float64(len(sections)))),
		Sections:    sections,
		Suggestions: suggestionsFor(sections, words),
		WordCount:   words,
	}
}

func scoreContact(text string) int {
	score := 80
	if emailPattern.MatchString(text) {
		score += 8
	}
	if phonePattern.MatchString(text) {
		score += 7
	}
	if linkPattern.MatchString(text) {
		score += 5
	}
	return score
}

func scoreSummary(text string, words int) int {
	score := 70
	if summaryHeading.MatchString(text) {
		score += 18
	}
	switch {
	case words >= 300 && words <= 900:
		score += 12
	case words >= 150:
		score += 6
	}
	return score
}

func scoreExperience(text, lower string) int {
	score := 75
	if experienceHeading.MatchString(text) {
		score += 10
	}
	score += min(len(metricPattern.FindAllString(text, -1))*2, 10)
	verbs := 0
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			verbs++
		}
	}
	return score + min(verbs, 5)
}

func scoreSkills(text string) int {
	score := 80
	if skillsHeading.MatchString(text) {
		score += 10
	}
	return score + min(strings.Count(text, ",")/3, 10)
}

func scoreEducation(text string) int {
	score := 85
	if educationHeading.MatchString(text) {
		score += 10
	}
	if degreePattern.MatchString(text) {
		score += 5
	}
	return score
}

func suggestionsFor(sections map[string]int, words int) []string {
	var out []string
	if sections["experience"] < 90 {
		out = append(out, "Add more quantifiable achievements in your experience section")
	}
	if sections["skills"] < 90 {
		out = append(out, "Add specific technical skills relevant to your field")
	}
	if sections["summary"] < 85 {
		out = append(out, "Consider adding a professional summary at the top")
	}
	if sections["contact"] < 95 {
		out = append(out, "Include an email address, phone number and a professional profile link")
	}
	if sections["education"] < 95 {
		out = append(out, "List your degrees and institutions under an Education heading")
	}
	if words < 150 {
		out = append(out, "Expand your resume with more detail on your roles and impact")
	}
	if len(out) == 0 {
		out = append(out, "Include relevant keywords for your target industry")
	}
	return out
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
