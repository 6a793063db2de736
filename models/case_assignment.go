package models

// CaseAssignment links one lawyer to one case. The same pair may appear
// more than once with different roles.
type CaseAssignment struct {
	CaseID        int64   `json:"case_id"`
	LawyerID      int64   `json:"lawyer_id"`
	Role          string  `json:"role"`
	BillableHours float64 `json:"billable_hours"`
}

// CaseLawyerRow is one row of the case/assignment/lawyer outer join.
// Every field past the case columns is nil when the case has no
// assignments.
type CaseLawyerRow struct {
	CaseID      int64   `json:"case_id"`
	CaseName    string  `json:"case_name"`
	ClientName  string  `json:"client_name"`
	CaseStatus  string  `json:"case_status"`
	StartDate   Date    `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
	Description *string `json:"description"`

	LawyerID       *int64   `json:"lawyer_id"`
	FirstName      *string  `json:"first_name"`
	LastName       *string  `json:"last_name"`
	Specialization *string  `json:"specialization"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	Role           *string  `json:"role"`
	BillableHours  *float64 `json:"billable_hours"`
}

// HasLawyer reports whether the row carries an assignment
func (r CaseLawyerRow) HasLawyer() bool {
	return r.LawyerID != nil
}

// AssignedLawyer is a lawyer as seen from one of their case assignments
type AssignedLawyer struct {
	LawyerID       int64   `json:"lawyer_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Specialization string  `json:"specialization"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone"`
	Role           string  `json:"role"`
	BillableHours  float64 `json:"billable_hours"`
}

// CaseDetail is a case together with everyone assigned to it
type CaseDetail struct {
	Case    LegalCase        `json:"case"`
	Lawyers []AssignedLawyer `json:"lawyers"`
}

// TotalHours sums billable hours across all assignments
func (d CaseDetail) TotalHours() float64 {
	var total float64
	for _, l := range d.Lawyers {
		total += l.BillableHours
	}
	return total
}

// NewCaseDetail groups joined rows. It returns nil for an empty slice,
// which means the case does not exist.
func NewCaseDetail(rows []CaseLawyerRow) *CaseDetail {
	if len(rows) == 0 {
		return nil
	}

	first := rows[0]
	detail := &CaseDetail{
		Case: LegalCase{
			ID:          first.CaseID,
			Name:        first.CaseName,
			ClientName:  first.ClientName,
			Status:      first.CaseStatus,
			StartDate:   first.StartDate,
			EndDate:     first.EndDate,
			Description: first.Description,
		},
		Lawyers: make([]AssignedLawyer, 0, len(rows)),
	}

	for _, row := range rows {
		if !row.HasLawyer() {
			continue
		}
		detail.Lawyers = append(detail.Lawyers, AssignedLawyer{
			LawyerID:       *row.LawyerID,
			FirstName:      deref(row.FirstName),
			LastName:       deref(row.LastName),
			Specialization: deref(row.Specialization),
			Email:          deref(row.Email),
			Phone:          row.Phone,
			Role:           deref(row.Role),
			BillableHours:  derefFloat(row.BillableHours),
		})
	}

	return detail
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
