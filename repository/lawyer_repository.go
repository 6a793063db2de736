package repository

import (
	"context"

	"legal-roster/database"
	"legal-roster/logger"
	"legal-roster/models"
)

// LawyerRepository handles database operations for lawyers
type LawyerRepository struct {
	pool database.Pool
	log  logger.Logger
}

// NewLawyerRepository creates a new lawyer repository
func NewLawyerRepository(pool database.Pool, log logger.Logger) *LawyerRepository {
	return &LawyerRepository{pool: pool, log: log.WithField("repository", "lawyer")}
}

// List retrieves every lawyer in key order
func (r *LawyerRepository) List(ctx context.Context) ([]models.Lawyer, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, queryError("list lawyers: acquire connection", err)
	}
	defer conn.Release()

	query := `
		SELECT lawyer_id, first_name, last_name, specialization, email, phone, hire_date
		FROM lawyer
		ORDER BY lawyer_id`

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, queryError("list lawyers", err)
	}
	defer rows.Close()

	lawyers := make([]models.Lawyer, 0)
	for rows.Next() {
		var lawyer models.Lawyer
		err := rows.Scan(
			&lawyer.ID,
			&lawyer.FirstName,
			&lawyer.LastName,
			&lawyer.Specialization,
			&lawyer.Email,
			&lawyer.Phone,
			&lawyer.HireDate,
		)
		if err != nil {
			return nil, queryError("scan lawyer", err)
		}
		lawyers = append(lawyers, lawyer)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError("iterate lawyers", err)
	}

	return lawyers, nil
}

// Create inserts a lawyer hired today and returns the generated lawyer_id
func (r *LawyerRepository) Create(ctx context.Context, in models.LawyerInput) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, writeError("add lawyer: acquire connection", err)
	}
	defer conn.Release()

	query := `
		INSERT INTO lawyer (
			first_name, last_name, specialization, email, phone, hire_date
		) VALUES ($1, $2, $3, $4, $5, CURRENT_DATE)`

	id, err := conn.InsertReturning(
		ctx, query, "lawyer_id",
		in.FirstName,
		in.LastName,
		in.Specialization,
		in.Email,
		in.Phone,
	)
	if err != nil {
		return 0, writeError("add lawyer", err)
	}

	r.log.WithField("lawyer_id", id).Debug("Lawyer inserted")
	return id, nil
}

// Sample returns up to three lawyer names; used to prove connectivity
func (r *LawyerRepository) Sample(ctx context.Context) ([]models.LawyerName, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, queryError("sample lawyers: acquire connection", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT first_name, last_name FROM lawyer LIMIT 3`)
	if err != nil {
		return nil, queryError("sample lawyers", err)
	}
	defer rows.Close()

	names := make([]models.LawyerName, 0, 3)
	for rows.Next() {
		var name models.LawyerName
		if err := rows.Scan(&name.FirstName, &name.LastName); err != nil {
			return nil, queryError("scan lawyer name", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError("iterate lawyer names", err)
	}

	return names, nil
}
