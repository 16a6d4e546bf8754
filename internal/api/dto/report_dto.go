package dto

import (
	"time"

	"github.com/asdes/report-service/internal/domain"
)

// CreateReportRequest payload.
type CreateReportRequest struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Location      string                `json:"location"`
	Category      domain.ReportCategory `json:"category"`
	Priority      domain.ReportPriority `json:"priority"`
	ReporterName  string                `json:"reporter_name"`
	ReporterPhone string                `json:"reporter_phone"`
	ReporterEmail string                `json:"reporter_email"`
}

// UpdateReportStatusRequest payload.
type UpdateReportStatusRequest struct {
	Status     domain.ReportStatus `json:"status"`
	AdminNotes *string             `json:"admin_notes"`
}

// ReportResponse is the full report representation.
type ReportResponse struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Location      string                `json:"location"`
	Category      domain.ReportCategory `json:"category"`
	Priority      domain.ReportPriority `json:"priority"`
	Status        domain.ReportStatus   `json:"status"`
	ReporterName  string                `json:"reporter_name"`
	ReporterPhone string                `json:"reporter_phone"`
	ReporterEmail string                `json:"reporter_email"`
	AdminNotes    *string               `json:"admin_notes"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// PageMeta carries pagination state for round-tripping into the next query.
type PageMeta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ReportFilters echoes the filter state applied to a listing.
type ReportFilters struct {
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
	Priority string `json:"priority,omitempty"`
	Search   string `json:"search,omitempty"`
}

// ReportListResponse is a filtered, paginated listing.
type ReportListResponse struct {
	Data    []ReportResponse `json:"data"`
	Meta    PageMeta         `json:"meta"`
	Filters ReportFilters    `json:"filters"`
}

// ReportFormOptions enumerates the submission form choices.
type ReportFormOptions struct {
	Categories []domain.ReportCategory `json:"categories"`
	Priorities []domain.ReportPriority `json:"priorities"`
}

// DashboardStats mirrors the per-status count projection.
type DashboardStats struct {
	TotalReports      int `json:"total_reports"`
	PendingReports    int `json:"pending_reports"`
	InProgressReports int `json:"in_progress_reports"`
	CompletedReports  int `json:"completed_reports"`
	RejectedReports   int `json:"rejected_reports"`
	TotalUsers        int `json:"total_users,omitempty"`
}

// DashboardResponse bundles stats with the most recent reports.
type DashboardResponse struct {
	Stats         DashboardStats   `json:"stats"`
	RecentReports []ReportResponse `json:"recent_reports"`
}
