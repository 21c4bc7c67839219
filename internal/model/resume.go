package model

type ResumeScore struct {
	Overall     int            `json:"overall"`
	Sections    map[string]int `json:"sections"`
	Suggestions []string       `json:"suggestions"`
	WordCount   int            `json:"word_count"`
}
