package models

// Lawyer represents a lawyer entity
type Lawyer struct {
	ID             int64   `json:"lawyer_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Specialization string  `json:"specialization"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone"`
	HireDate       Date    `json:"hire_date"`
}

// FullName joins first and last name
func (l Lawyer) FullName() string {
	return l.FirstName + " " + l.LastName
}

// LawyerName is the two-column sample returned by the connection test
type LawyerName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LawyerInput carries the caller-supplied columns of a new lawyer.
// hire_date is always set by storage.
type LawyerInput struct {
	FirstName      string
	LastName       string
	Specialization string
	Email          string
	Phone          *string
}
