package models

// LegalCase represents a legal case entity
type LegalCase struct {
	ID          int64   `json:"case_id"`
	Name        string  `json:"case_name"`
	ClientName  string  `json:"client_name"`
	Status      string  `json:"case_status"`
	StartDate   Date    `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
	Description *string `json:"description"`
}

// CaseInput carries the columns of a new case. Dates are YYYY-MM-DD
// strings and are passed to storage as-is.
type CaseInput struct {
	Name        string
	ClientName  string
	Status      string
	StartDate   string
	EndDate     *string
	Description *string
}
