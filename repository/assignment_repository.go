package repository

import (
	"context"

	"legal-roster/database"
	"legal-roster/logger"
	"legal-roster/models"
)

// AssignmentRepository handles database operations for case_lawyer_xref
type AssignmentRepository struct {
	pool database.Pool
	log  logger.Logger
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(pool database.Pool, log logger.Logger) *AssignmentRepository {
	return &AssignmentRepository{pool: pool, log: log.WithField("repository", "case_lawyer_xref")}
}

// Create links a lawyer to a case. Storage enforces that both exist; a
// violation comes back as ErrWrite wrapping ErrReferenceNotFound.
func (r *AssignmentRepository) Create(ctx context.Context, a models.CaseAssignment) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return writeError("assign lawyer to case: acquire connection", err)
	}
	defer conn.Release()

	query := `
		INSERT INTO case_lawyer_xref (
			case_id, lawyer_id, role, billable_hours
		) VALUES ($1, $2, $3, $4)`

	if _, err := conn.Exec(ctx, query, a.CaseID, a.LawyerID, a.Role, a.BillableHours); err != nil {
		return writeError("assign lawyer to case", err)
	}

	r.log.WithFields(map[string]interface{}{
		"case_id":   a.CaseID,
		"lawyer_id": a.LawyerID,
	}).Debug("Lawyer assigned to case")
	return nil
}

// List retrieves every assignment
func (r *AssignmentRepository) List(ctx context.Context) ([]models.CaseAssignment, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, queryError("list assignments: acquire connection", err)
	}
	defer conn.Release()

	query := `
		SELECT case_id, lawyer_id, role, billable_hours
		FROM case_lawyer_xref
		ORDER BY case_id, lawyer_id`

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, queryError("list assignments", err)
	}
	defer rows.Close()

	assignments := make([]models.CaseAssignment, 0)
	for rows.Next() {
		var a models.CaseAssignment
		if err := rows.Scan(&a.CaseID, &a.LawyerID, &a.Role, &a.BillableHours); err != nil {
			return nil, queryError("scan assignment", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError("iterate assignments", err)
	}

	return assignments, nil
}
