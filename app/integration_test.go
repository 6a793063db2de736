package app

import (
	"context"
	"os"
	"testing"
	"time"

	"legal-roster/config"
	"legal-roster/database"
	"legal-roster/logger"
	"legal-roster/models"
	"legal-roster/repository"
	"legal-roster/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS lawyer (
		lawyer_id INT AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		specialization VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NULL,
		hire_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS legal_case (
		case_id INT AUTO_INCREMENT PRIMARY KEY,
		case_name VARCHAR(255) NOT NULL,
		client_name VARCHAR(255) NOT NULL,
		case_status VARCHAR(50) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NULL,
		description TEXT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS case_lawyer_xref (
		case_id INT NOT NULL,
		lawyer_id INT NOT NULL,
		role VARCHAR(100) NOT NULL,
		billable_hours DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (case_id) REFERENCES legal_case(case_id),
		FOREIGN KEY (lawyer_id) REFERENCES lawyer(lawyer_id)
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS lawyer (
		lawyer_id SERIAL PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		specialization VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		hire_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS legal_case (
		case_id SERIAL PRIMARY KEY,
		case_name VARCHAR(255) NOT NULL,
		client_name VARCHAR(255) NOT NULL,
		case_status VARCHAR(50) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS case_lawyer_xref (
		case_id INTEGER NOT NULL REFERENCES legal_case(case_id),
		lawyer_id INTEGER NOT NULL REFERENCES lawyer(lawyer_id),
		role VARCHAR(100) NOT NULL,
		billable_hours NUMERIC(10,2) NOT NULL
	)`,
}

// setupIntegration opens the database named by ROSTER_TEST_CONFIG
func setupIntegration(t *testing.T) *App {
	t.Helper()

	path := os.Getenv("ROSTER_TEST_CONFIG")
	if path == "" {
		t.Skip("ROSTER_TEST_CONFIG not set, skipping integration test")
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := New(ctx, cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	schema := mysqlSchema
	if cfg.Database.PoolConfig().Driver == database.DriverPostgres {
		schema = postgresSchema
	}

	conn, err := a.Pool.Acquire(ctx)
	require.NoError(t, err)
	defer conn.Release()
	for _, stmt := range schema {
		_, err := conn.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	return a
}

func TestIntegration_RosterScenario(t *testing.T) {
	a := setupIntegration(t)
	ctx := context.Background()

	email := "ada+" + uuid.NewString()[:8] + "@x.com"
	lawyerID, err := a.Records.AddLawyer(ctx, service.AddLawyerRequest{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Specialization: "IP Law",
		Email:          email,
	})
	require.NoError(t, err)

	lawyers, err := a.Records.ListLawyers(ctx)
	require.NoError(t, err)
	var found *models.Lawyer
	for i := range lawyers {
		if lawyers[i].ID == lawyerID {
			found = &lawyers[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Ada", found.FirstName)
	assert.Equal(t, "Lovelace", found.LastName)
	assert.Equal(t, "IP Law", found.Specialization)
	assert.Equal(t, email, found.Email)
	assert.Nil(t, found.Phone)
	assert.False(t, found.HireDate.IsZero())

	caseID, err := a.Records.AddCase(ctx, service.AddCaseRequest{
		Name:       "Smith v. Jones",
		ClientName: "Jones Co",
		Status:     "Open",
		StartDate:  "2024-01-01",
	})
	require.NoError(t, err)

	t.Run("unassigned case yields one row without lawyer", func(t *testing.T) {
		rows, err := a.Records.GetCaseWithLawyers(ctx, caseID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Smith v. Jones", rows[0].CaseName)
		assert.Nil(t, rows[0].EndDate)
		assert.False(t, rows[0].HasLawyer())
		assert.Nil(t, rows[0].Role)
	})

	t.Run("assigned lawyer appears in join", func(t *testing.T) {
		err := a.Records.AssignLawyerToCase(ctx, service.AssignLawyerRequest{
			CaseID:        caseID,
			LawyerID:      lawyerID,
			Role:          "Lead",
			BillableHours: 3.5,
		})
		require.NoError(t, err)

		rows, err := a.Records.GetCaseWithLawyers(ctx, caseID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.NotNil(t, rows[0].Role)
		require.NotNil(t, rows[0].BillableHours)
		assert.Equal(t, "Lead", *rows[0].Role)
		assert.InDelta(t, 3.5, *rows[0].BillableHours, 0.001)
	})

	t.Run("second lawyer adds a row with the same case fields", func(t *testing.T) {
		secondID, err := a.Records.AddLawyer(ctx, service.AddLawyerRequest{
			FirstName:      "Grace",
			LastName:       "Hopper",
			Specialization: "Litigation",
			Email:          "grace+" + uuid.NewString()[:8] + "@x.com",
		})
		require.NoError(t, err)

		err = a.Records.AssignLawyerToCase(ctx, service.AssignLawyerRequest{
			CaseID:        caseID,
			LawyerID:      secondID,
			Role:          "Associate",
			BillableHours: 1.25,
		})
		require.NoError(t, err)

		rows, err := a.Records.GetCaseWithLawyers(ctx, caseID)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		lawyerIDs := make([]int64, 0, len(rows))
		for _, row := range rows {
			assert.Equal(t, caseID, row.CaseID)
			assert.Equal(t, "Smith v. Jones", row.CaseName)
			assert.Equal(t, "Jones Co", row.ClientName)
			assert.Equal(t, "Open", row.CaseStatus)
			assert.Equal(t, "2024-01-01", row.StartDate.String())
			require.True(t, row.HasLawyer())
			lawyerIDs = append(lawyerIDs, *row.LawyerID)
		}
		assert.ElementsMatch(t, []int64{lawyerID, secondID}, lawyerIDs)
	})

	t.Run("failed assignment leaves the table unchanged", func(t *testing.T) {
		tests := []struct {
			name     string
			caseID   int64
			lawyerID int64
		}{
			{name: "missing lawyer", caseID: caseID, lawyerID: 999999999},
			{name: "missing case", caseID: 999999999, lawyerID: lawyerID},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				before := assignmentCount(t, a)

				err := a.Records.AssignLawyerToCase(ctx, service.AssignLawyerRequest{
					CaseID:        tt.caseID,
					LawyerID:      tt.lawyerID,
					Role:          "Lead",
					BillableHours: 1,
				})
				assert.ErrorIs(t, err, repository.ErrWrite)
				assert.ErrorIs(t, err, repository.ErrReferenceNotFound)

				assert.Equal(t, before, assignmentCount(t, a))
			})
		}
	})

	t.Run("missing case yields no rows", func(t *testing.T) {
		rows, err := a.Records.GetCaseWithLawyers(ctx, 999999999)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("pool is fully returned", func(t *testing.T) {
		assert.Zero(t, a.Records.PoolStats().AcquiredConns)
	})
}

func assignmentCount(t *testing.T, a *App) int {
	t.Helper()
	assignments, err := a.Records.ListAssignments(context.Background())
	require.NoError(t, err)
	return len(assignments)
}
