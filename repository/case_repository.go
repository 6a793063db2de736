package repository

import (
	"context"

	"legal-roster/database"
	"legal-roster/logger"
	"legal-roster/models"
)

// CaseRepository handles database operations for legal cases
type CaseRepository struct {
	pool database.Pool
	log  logger.Logger
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(pool database.Pool, log logger.Logger) *CaseRepository {
	return &CaseRepository{pool: pool, log: log.WithField("repository", "legal_case")}
}

// List retrieves every case in key order
func (r *CaseRepository) List(ctx context.Context) ([]models.LegalCase, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, queryError("list cases: acquire connection", err)
	}
	defer conn.Release()

	query := `
		SELECT case_id, case_name, client_name, case_status, start_date, end_date, description
		FROM legal_case
		ORDER BY case_id`

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, queryError("list cases", err)
	}
	defer rows.Close()

	cases := make([]models.LegalCase, 0)
	for rows.Next() {
		var lc models.LegalCase
		err := rows.Scan(
			&lc.ID,
			&lc.Name,
			&lc.ClientName,
			&lc.Status,
			&lc.StartDate,
			&lc.EndDate,
			&lc.Description,
		)
		if err != nil {
			return nil, queryError("scan case", err)
		}
		cases = append(cases, lc)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError("iterate cases", err)
	}

	return cases, nil
}

// Create inserts a case and returns the generated case_id
func (r *CaseRepository) Create(ctx context.Context, in models.CaseInput) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, writeError("add case: acquire connection", err)
	}
	defer conn.Release()

	query := `
		INSERT INTO legal_case (
			case_name, client_name, case_status, start_date, end_date, description
		) VALUES ($1, $2, $3, $4, $5, $6)`

	id, err := conn.InsertReturning(
		ctx, query, "case_id",
		in.Name,
		in.ClientName,
		in.Status,
		in.StartDate,
		in.EndDate,
		in.Description,
	)
	if err != nil {
		return 0, writeError("add case", err)
	}

	r.log.WithField("case_id", id).Debug("Case inserted")
	return id, nil
}

// GetWithLawyers retrieves a case joined outward to its assignments and
// lawyers. The LEFT JOINs keep an unassigned case as a single row with
// null lawyer columns; an empty result means the case does not exist.
func (r *CaseRepository) GetWithLawyers(ctx context.Context, caseID int64) ([]models.CaseLawyerRow, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, queryError("get case with lawyers: acquire connection", err)
	}
	defer conn.Release()

	query := `
		SELECT
			lc.case_id,
			lc.case_name,
			lc.client_name,
			lc.case_status,
			lc.start_date,
			lc.end_date,
			lc.description,
			l.lawyer_id,
			l.first_name,
			l.last_name,
			l.specialization,
			l.email,
			l.phone,
			cl.role,
			cl.billable_hours
		FROM legal_case lc
		LEFT JOIN case_lawyer_xref cl
			ON lc.case_id = cl.case_id
		LEFT JOIN lawyer l
			ON cl.lawyer_id = l.lawyer_id
		WHERE lc.case_id = $1
		ORDER BY cl.lawyer_id, cl.role`

	rows, err := conn.Query(ctx, query, caseID)
	if err != nil {
		return nil, queryError("get case with lawyers", err)
	}
	defer rows.Close()

	result := make([]models.CaseLawyerRow, 0)
	for rows.Next() {
		var row models.CaseLawyerRow
		err := rows.Scan(
			&row.CaseID,
			&row.CaseName,
			&row.ClientName,
			&row.CaseStatus,
			&row.StartDate,
			&row.EndDate,
			&row.Description,
			&row.LawyerID,
			&row.FirstName,
			&row.LastName,
			&row.Specialization,
			&row.Email,
			&row.Phone,
			&row.Role,
			&row.BillableHours,
		)
		if err != nil {
			return nil, queryError("scan case lawyer row", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError("iterate case lawyer rows", err)
	}

	return result, nil
}
