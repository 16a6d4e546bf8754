package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asdes/report-service/internal/domain"
)

// ReportFilter captures listing parameters. A nil OwnerID means all owners
// (admin scope); Search is a case-insensitive substring match OR'd across
// title, description, location, and reporter_name.
type ReportFilter struct {
	OwnerID  *string
	Status   *domain.ReportStatus
	Category *domain.ReportCategory
	Priority *domain.ReportPriority
	Search   *string
	Limit    int
	Offset   int
}

// ReportRepository encapsulates report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	Update(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ReportFilter) ([]domain.Report, int, error)
	ListRecent(ctx context.Context, ownerID *string, limit int) ([]domain.Report, error)
	CountByStatus(ctx context.Context, ownerID *string) (domain.StatusCounts, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `id, user_id, title, description, location, category, priority, status,
               reporter_name, reporter_phone, reporter_email, admin_notes, created_at, updated_at`

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO reports (user_id, title, description, location, category, priority, status, reporter_name, reporter_phone, reporter_email)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		report.UserID,
		report.Title,
		report.Description,
		report.Location,
		report.Category,
		report.Priority,
		report.Status,
		report.ReporterName,
		report.ReporterPhone,
		report.ReporterEmail,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) Update(ctx context.Context, report *domain.Report) error {
	const query = `
        UPDATE reports SET status=$1, admin_notes=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query,
		report.Status,
		report.AdminNotes,
		report.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id=$1`, reportColumns)

	var report domain.Report
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.UserID,
		&report.Title,
		&report.Description,
		&report.Location,
		&report.Category,
		&report.Priority,
		&report.Status,
		&report.ReporterName,
		&report.ReporterPhone,
		&report.ReporterEmail,
		&report.AdminNotes,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List returns the newest-first page of matching reports plus the total
// matching count for pagination.
func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]domain.Report, int, error) {
	clauses, args := buildReportClauses(filter)
	where := strings.Join(clauses, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM reports WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM reports WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		reportColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reports, err := scanReports(rows)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) ListRecent(ctx context.Context, ownerID *string, limit int) ([]domain.Report, error) {
	if limit <= 0 {
		limit = 5
	}
	reports, _, err := r.List(ctx, ReportFilter{OwnerID: ownerID, Limit: limit})
	return reports, err
}

func (r *reportRepository) CountByStatus(ctx context.Context, ownerID *string) (domain.StatusCounts, error) {
	query := `SELECT status, COUNT(*) FROM reports GROUP BY status`
	args := []any{}
	if ownerID != nil {
		query = `SELECT status, COUNT(*) FROM reports WHERE user_id=$1 GROUP BY status`
		args = append(args, *ownerID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return domain.StatusCounts{}, err
	}
	defer rows.Close()

	var counts domain.StatusCounts
	for rows.Next() {
		var status domain.ReportStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return domain.StatusCounts{}, err
		}
		counts.Total += count
		switch status {
		case domain.ReportStatusPending:
			counts.Pending = count
		case domain.ReportStatusInProgress:
			counts.InProgress = count
		case domain.ReportStatusDone:
			counts.Done = count
		case domain.ReportStatusRejected:
			counts.Rejected = count
		}
	}
	return counts, rows.Err()
}

func buildReportClauses(filter ReportFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(title) LIKE %s OR LOWER(description) LIKE %s OR LOWER(location) LIKE %s OR LOWER(reporter_name) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}
	return clauses, args
}

func scanReports(rows pgx.Rows) ([]domain.Report, error) {
	var result []domain.Report
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.Title,
			&report.Description,
			&report.Location,
			&report.Category,
			&report.Priority,
			&report.Status,
			&report.ReporterName,
			&report.ReporterPhone,
			&report.ReporterEmail,
			&report.AdminNotes,
			&report.CreatedAt,
			&report.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}
