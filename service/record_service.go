package service

import (
	"context"
	"errors"
	"time"

	"legal-roster/database"
	"legal-roster/logger"
	"legal-roster/models"
	"legal-roster/repository"

	"github.com/google/uuid"
)

var (
	errLawyerRepoNotSet     = errors.New("lawyer repository not set")
	errCaseRepoNotSet       = errors.New("case repository not set")
	errAssignmentRepoNotSet = errors.New("assignment repository not set")
	errPoolNotSet           = errors.New("connection pool not set")
)

// RecordService exposes the roster operations. Every call borrows one
// pooled connection for exactly one statement.
//
// Input validation is the caller's job: run the request's Validate method
// before AddLawyer, AddCase or AssignLawyerToCase. RecordService does not
// check its inputs again.
type RecordService struct {
	lawyerRepo     *repository.LawyerRepository
	caseRepo       *repository.CaseRepository
	assignmentRepo *repository.AssignmentRepository
	pool           database.Pool
	log            logger.Logger
	queryTimeout   time.Duration
}

// RecordServiceOption is a functional option for RecordService
type RecordServiceOption func(*RecordService)

// WithLawyerRepository sets the lawyer repository
func WithLawyerRepository(repo *repository.LawyerRepository) RecordServiceOption {
	return func(s *RecordService) {
		s.lawyerRepo = repo
	}
}

// WithCaseRepository sets the case repository
func WithCaseRepository(repo *repository.CaseRepository) RecordServiceOption {
	return func(s *RecordService) {
		s.caseRepo = repo
	}
}

// WithAssignmentRepository sets the assignment repository
func WithAssignmentRepository(repo *repository.AssignmentRepository) RecordServiceOption {
	return func(s *RecordService) {
		s.assignmentRepo = repo
	}
}

// WithPool sets the pool used for health checks and stats
func WithPool(pool database.Pool) RecordServiceOption {
	return func(s *RecordService) {
		s.pool = pool
	}
}

// WithLogger sets the logger
func WithLogger(log logger.Logger) RecordServiceOption {
	return func(s *RecordService) {
		s.log = log
	}
}

// WithQueryTimeout bounds acquire plus execution of each operation.
// Zero leaves operations unbounded.
func WithQueryTimeout(d time.Duration) RecordServiceOption {
	return func(s *RecordService) {
		s.queryTimeout = d
	}
}

// NewRecordService creates a new record service
func NewRecordService(opts ...RecordServiceOption) *RecordService {
	s := &RecordService{log: logger.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRecordServiceForPool builds the three repositories over pool
func NewRecordServiceForPool(pool database.Pool, log logger.Logger, opts ...RecordServiceOption) *RecordService {
	base := []RecordServiceOption{
		WithPool(pool),
		WithLogger(log),
		WithLawyerRepository(repository.NewLawyerRepository(pool, log)),
		WithCaseRepository(repository.NewCaseRepository(pool, log)),
		WithAssignmentRepository(repository.NewAssignmentRepository(pool, log)),
	}
	return NewRecordService(append(base, opts...)...)
}

// ListLawyers returns all lawyers ordered by id
func (s *RecordService) ListLawyers(ctx context.Context) ([]models.Lawyer, error) {
	if s.lawyerRepo == nil {
		return nil, errLawyerRepoNotSet
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	lawyers, err := s.lawyerRepo.List(ctx)
	if err != nil {
		s.opLog("list_lawyers").Error(err.Error())
		return nil, err
	}
	return lawyers, nil
}

// ListCases returns all cases ordered by id
func (s *RecordService) ListCases(ctx context.Context) ([]models.LegalCase, error) {
	if s.caseRepo == nil {
		return nil, errCaseRepoNotSet
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	cases, err := s.caseRepo.List(ctx)
	if err != nil {
		s.opLog("list_cases").Error(err.Error())
		return nil, err
	}
	return cases, nil
}

// GetCaseWithLawyers returns one row per assignment of the case. An
// unassigned case yields a single row with nil lawyer fields; an unknown
// case yields an empty slice and no error.
func (s *RecordService) GetCaseWithLawyers(ctx context.Context, caseID int64) ([]models.CaseLawyerRow, error) {
	if s.caseRepo == nil {
		return nil, errCaseRepoNotSet
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	rows, err := s.caseRepo.GetWithLawyers(ctx, caseID)
	if err != nil {
		s.opLog("get_case_with_lawyers").WithField("case_id", caseID).Error(err.Error())
		return nil, err
	}
	return rows, nil
}

// AddLawyer inserts a lawyer hired today and returns the new lawyer_id.
// The caller must have run req.Validate.
func (s *RecordService) AddLawyer(ctx context.Context, req AddLawyerRequest) (int64, error) {
	if s.lawyerRepo == nil {
		return 0, errLawyerRepoNotSet
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	log := s.opLog("add_lawyer")
	id, err := s.lawyerRepo.Create(ctx, req.input())
	if err != nil {
		log.Error(err.Error())
		return 0, err
	}

	log.WithField("lawyer_id", id).Info("Lawyer added successfully")
	return id, nil
}

// AddCase inserts a case and returns the new case_id. The caller must
// have run req.Validate.
func (s *RecordService) AddCase(ctx context.Context, req AddCaseRequest) (int64, error) {
	if s.caseRepo == nil {
		return 0, errCaseRepoNotSet
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	log := s.opLog("add_case")
	id, err := s.caseRepo.Create(ctx, req.input())
	if err != nil {
		log.Error(err.Error())
		return 0, err
	}

	log.WithField("case_id", id).Info("Case added successfully")
	return id, nil
}

// AssignLawyerToCase records an assignment. An unknown case or lawyer is
// reported as repository.ErrReferenceNotFound. The caller must have run
// req.Validate.
func (s *RecordService) AssignLawyerToCase(ctx context.Context, req AssignLawyerRequest) error {
	if s.assignmentRepo == nil {
		return errAssignmentRepoNotSet
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	log := s.opLog("assign_lawyer").WithFields(map[string]interface{}{
		"case_id":   req.CaseID,
		"lawyer_id": req.LawyerID,
	})
	if err := s.assignmentRepo.Create(ctx, req.assignment()); err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("Lawyer assigned to case successfully")
	return nil
}

// ListAssignments returns every case/lawyer assignment
func (s *RecordService) ListAssignments(ctx context.Context) ([]models.CaseAssignment, error) {
	if s.assignmentRepo == nil {
		return nil, errAssignmentRepoNotSet
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	assignments, err := s.assignmentRepo.List(ctx)
	if err != nil {
		s.opLog("list_assignments").Error(err.Error())
		return nil, err
	}
	return assignments, nil
}

// TestConnection runs a small sample query and logs what came back
func (s *RecordService) TestConnection(ctx context.Context) ([]models.LawyerName, error) {
	if s.lawyerRepo == nil {
		return nil, errLawyerRepoNotSet
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	log := s.opLog("test_connection")
	names, err := s.lawyerRepo.Sample(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	for _, n := range names {
		log.Debug("Sample lawyer: " + n.FirstName + " " + n.LastName)
	}
	log.WithField("rows", len(names)).Info("Test connection successful")
	return names, nil
}

// Ping checks that the pool can reach the database
func (s *RecordService) Ping(ctx context.Context) error {
	if s.pool == nil {
		return errPoolNotSet
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.pool.Ping(ctx)
}

// PoolStats reports current pool usage
func (s *RecordService) PoolStats() database.Stat {
	if s.pool == nil {
		return database.Stat{}
	}
	return s.pool.Stat()
}

func (s *RecordService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return ctx, func() {}
}

// opLog tags log lines of one operation with a fresh request id
func (s *RecordService) opLog(op string) logger.Logger {
	return s.log.WithFields(map[string]interface{}{
		"op":         op,
		"request_id": uuid.NewString(),
	})
}
