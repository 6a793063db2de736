package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"legal-roster/models"

	"github.com/asaskevich/govalidator"
)

// ErrValidation marks caller input rejected before it reaches storage
var ErrValidation = errors.New("validation failed")

// AddLawyerRequest represents a request to add a lawyer
type AddLawyerRequest struct {
	FirstName      string  `json:"first_name" valid:"required"`
	LastName       string  `json:"last_name" valid:"required"`
	Specialization string  `json:"specialization" valid:"required"`
	Email          string  `json:"email" valid:"required,email"`
	Phone          *string `json:"phone,omitempty"`
}

// Validate checks required fields and the email format
func (r AddLawyerRequest) Validate() error {
	var problems []string
	problems = appendBlank(problems, "first_name", r.FirstName)
	problems = appendBlank(problems, "last_name", r.LastName)
	problems = appendBlank(problems, "specialization", r.Specialization)
	problems = appendBlank(problems, "email", r.Email)
	if len(problems) > 0 {
		return validationError(problems)
	}

	if _, err := govalidator.ValidateStruct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func (r AddLawyerRequest) input() models.LawyerInput {
	return models.LawyerInput{
		FirstName:      strings.TrimSpace(r.FirstName),
		LastName:       strings.TrimSpace(r.LastName),
		Specialization: strings.TrimSpace(r.Specialization),
		Email:          strings.TrimSpace(r.Email),
		Phone:          optional(r.Phone),
	}
}

// AddCaseRequest represents a request to open a case
type AddCaseRequest struct {
	Name        string  `json:"case_name"`
	ClientName  string  `json:"client_name"`
	Status      string  `json:"case_status"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate checks required fields and YYYY-MM-DD dates. An end date may
// not precede the start date.
func (r AddCaseRequest) Validate() error {
	var problems []string
	problems = appendBlank(problems, "case_name", r.Name)
	problems = appendBlank(problems, "client_name", r.ClientName)
	problems = appendBlank(problems, "case_status", r.Status)

	start, err := models.ParseDate(strings.TrimSpace(r.StartDate))
	if err != nil {
		problems = append(problems, fmt.Sprintf("start_date must be YYYY-MM-DD, got %q", r.StartDate))
	}

	if end := optional(r.EndDate); end != nil {
		endDate, endErr := models.ParseDate(*end)
		switch {
		case endErr != nil:
			problems = append(problems, fmt.Sprintf("end_date must be YYYY-MM-DD, got %q", *end))
		case err == nil && endDate.Before(start.Time):
			problems = append(problems, "end_date is before start_date")
		}
	}

	if len(problems) > 0 {
		return validationError(problems)
	}
	return nil
}

func (r AddCaseRequest) input() models.CaseInput {
	return models.CaseInput{
		Name:        strings.TrimSpace(r.Name),
		ClientName:  strings.TrimSpace(r.ClientName),
		Status:      strings.TrimSpace(r.Status),
		StartDate:   strings.TrimSpace(r.StartDate),
		EndDate:     optional(r.EndDate),
		Description: optional(r.Description),
	}
}

// AssignLawyerRequest represents a request to put a lawyer on a case
type AssignLawyerRequest struct {
	CaseID        int64   `json:"case_id"`
	LawyerID      int64   `json:"lawyer_id"`
	Role          string  `json:"role"`
	BillableHours float64 `json:"billable_hours"`
}

// Validate checks ids, role and hours. Whether the case and lawyer exist
// is left to storage.
func (r AssignLawyerRequest) Validate() error {
	var problems []string
	if r.CaseID <= 0 {
		problems = append(problems, "case_id must be positive")
	}
	if r.LawyerID <= 0 {
		problems = append(problems, "lawyer_id must be positive")
	}
	problems = appendBlank(problems, "role", r.Role)
	if math.IsNaN(r.BillableHours) || math.IsInf(r.BillableHours, 0) {
		problems = append(problems, "billable_hours must be a number")
	} else if r.BillableHours < 0 {
		problems = append(problems, "billable_hours must not be negative")
	}

	if len(problems) > 0 {
		return validationError(problems)
	}
	return nil
}

func (r AssignLawyerRequest) assignment() models.CaseAssignment {
	return models.CaseAssignment{
		CaseID:        r.CaseID,
		LawyerID:      r.LawyerID,
		Role:          strings.TrimSpace(r.Role),
		BillableHours: r.BillableHours,
	}
}

func appendBlank(problems []string, field, value string) []string {
	if strings.TrimSpace(value) == "" {
		return append(problems, field+" is required")
	}
	return problems
}

func validationError(problems []string) error {
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
}

// optional turns a blank optional value into NULL
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
