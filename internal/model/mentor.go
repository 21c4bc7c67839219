package model

type Availability struct {
	Days      []string `json:"days"`
	TimeSlots []string `json:"timeSlots"`
}

// Mentor is a payee of the payments gateway shown as a bookable mentor.
type Mentor struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Expertise    []string     `json:"expertise"`
	Experience   string       `json:"experience"`
	Bio          string       `json:"bio"`
	Image        string       `json:"image"`
	HourlyRate   float64      `json:"hourlyRate"`
	Availability Availability `json:"availability"`
}
