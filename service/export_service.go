package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"legal-roster/logger"
	"legal-roster/models"
	"legal-roster/storage"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// ExportFormat selects the snapshot encoding
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatXLSX ExportFormat = "xlsx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrExportFailed      = errors.New("export failed")
)

// ParseExportFormat accepts json or xlsx in any case
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportFormatJSON, ExportFormatXLSX:
		return f, nil
	case "":
		return ExportFormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// SnapshotSource is the read side of the roster used by exports.
// *RecordService satisfies it.
type SnapshotSource interface {
	ListLawyers(ctx context.Context) ([]models.Lawyer, error)
	ListCases(ctx context.Context) ([]models.LegalCase, error)
	ListAssignments(ctx context.Context) ([]models.CaseAssignment, error)
}

// Snapshot is the full roster at one point in time
type Snapshot struct {
	ExportID    uuid.UUID               `json:"export_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Lawyers     []models.Lawyer         `json:"lawyers"`
	Cases       []models.LegalCase      `json:"cases"`
	Assignments []models.CaseAssignment `json:"assignments"`
}

// ExportResult describes a stored snapshot
type ExportResult struct {
	ExportID    uuid.UUID    `json:"export_id"`
	Format      ExportFormat `json:"format"`
	Key         string       `json:"key"`
	Size        int          `json:"size"`
	Lawyers     int          `json:"lawyers"`
	Cases       int          `json:"cases"`
	Assignments int          `json:"assignments"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// ExportService writes roster snapshots to storage
type ExportService struct {
	source  SnapshotSource
	storage storage.Storage
	log     logger.Logger
	now     func() time.Time
}

// ExportServiceOption is a functional option for ExportService
type ExportServiceOption func(*ExportService)

// WithSnapshotSource sets where snapshot rows are read from
func WithSnapshotSource(src SnapshotSource) ExportServiceOption {
	return func(s *ExportService) {
		s.source = src
	}
}

// WithExportStorage sets the storage backend
func WithExportStorage(store storage.Storage) ExportServiceOption {
	return func(s *ExportService) {
		s.storage = store
	}
}

// WithExportLogger sets the logger
func WithExportLogger(log logger.Logger) ExportServiceOption {
	return func(s *ExportService) {
		s.log = log
	}
}

// NewExportService creates a new export service
func NewExportService(opts ...ExportServiceOption) *ExportService {
	s := &ExportService{
		log: logger.NewNopLogger(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Export reads lawyers, cases and assignments and stores them as one
// snapshot object.
func (s *ExportService) Export(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	if s.source == nil {
		return nil, errors.New("snapshot source not set")
	}
	if s.storage == nil {
		return nil, errors.New("export storage not set")
	}
	if format != ExportFormatJSON && format != ExportFormatXLSX {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	snap, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	var body *bytes.Buffer
	switch format {
	case ExportFormatJSON:
		body, err = encodeJSON(snap)
	case ExportFormatXLSX:
		body, err = encodeXLSX(snap)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", ErrExportFailed, format, err)
	}

	size := body.Len()
	filename := fmt.Sprintf("roster_%s.%s", snap.GeneratedAt.Format("20060102T150405Z"), format)
	key, err := s.storage.Upload(ctx, snap.ExportID, filename, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	result := &ExportResult{
		ExportID:    snap.ExportID,
		Format:      format,
		Key:         key,
		Size:        size,
		Lawyers:     len(snap.Lawyers),
		Cases:       len(snap.Cases),
		Assignments: len(snap.Assignments),
		GeneratedAt: snap.GeneratedAt,
	}

	s.log.WithFields(map[string]interface{}{
		"export_id": snap.ExportID.String(),
		"key":       key,
		"format":    string(format),
		"size":      size,
	}).Info("Roster snapshot exported")
	return result, nil
}

// collect runs the three reads concurrently; each borrows its own connection
func (s *ExportService) collect(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		ExportID:    uuid.New(),
		GeneratedAt: s.now().UTC(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lawyers, err := s.source.ListLawyers(gctx)
		snap.Lawyers = lawyers
		return err
	})
	g.Go(func() error {
		cases, err := s.source.ListCases(gctx)
		snap.Cases = cases
		return err
	})
	g.Go(func() error {
		assignments, err := s.source.ListAssignments(gctx)
		snap.Assignments = assignments
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	return snap, nil
}

func encodeJSON(snap *Snapshot) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf, nil
}

const (
	sheetLawyers     = "Lawyers"
	sheetCases       = "Cases"
	sheetAssignments = "Assignments"
)

// encodeXLSX writes one sheet per table with a bold header row
func encodeXLSX(snap *Snapshot) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetLawyers); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetCases); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetAssignments); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	lawyerRows := make([][]interface{}, 0, len(snap.Lawyers))
	for _, l := range snap.Lawyers {
		lawyerRows = append(lawyerRows, []interface{}{
			l.ID, l.FirstName, l.LastName, l.Specialization, l.Email, nullable(l.Phone), l.HireDate.String(),
		})
	}
	err = writeSheet(f, sheetLawyers, headerStyle,
		[]interface{}{"lawyer_id", "first_name", "last_name", "specialization", "email", "phone", "hire_date"},
		lawyerRows)
	if err != nil {
		return nil, err
	}

	caseRows := make([][]interface{}, 0, len(snap.Cases))
	for _, c := range snap.Cases {
		endDate := ""
		if c.EndDate != nil {
			endDate = c.EndDate.String()
		}
		caseRows = append(caseRows, []interface{}{
			c.ID, c.Name, c.ClientName, c.Status, c.StartDate.String(), endDate, nullable(c.Description),
		})
	}
	err = writeSheet(f, sheetCases, headerStyle,
		[]interface{}{"case_id", "case_name", "client_name", "case_status", "start_date", "end_date", "description"},
		caseRows)
	if err != nil {
		return nil, err
	}

	assignmentRows := make([][]interface{}, 0, len(snap.Assignments))
	for _, a := range snap.Assignments {
		assignmentRows = append(assignmentRows, []interface{}{a.CaseID, a.LawyerID, a.Role, a.BillableHours})
	}
	err = writeSheet(f, sheetAssignments, headerStyle,
		[]interface{}{"case_id", "lawyer_id", "role", "billable_hours"},
		assignmentRows)
	if err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func nullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
