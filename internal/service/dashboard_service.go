package service

import (
	"context"

	"github.com/asdes/report-service/internal/domain"
	"github.com/asdes/report-service/internal/repository"
)

const recentReportCount = 5

// DashboardService computes the read-side projections shown on dashboards.
// Counts are recomputed on every request; there is no caching layer.
type DashboardService struct {
	reports repository.ReportRepository
	users   repository.UserRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(reports repository.ReportRepository, users repository.UserRepository) *DashboardService {
	return &DashboardService{reports: reports, users: users}
}

// ResidentDashboard holds per-owner stats and the owner's recent reports.
type ResidentDashboard struct {
	Stats  domain.StatusCounts
	Recent []domain.Report
}

// AdminDashboard holds system-wide stats and the most recent reports.
type AdminDashboard struct {
	Stats      domain.StatusCounts
	TotalWarga int
	Recent     []domain.Report
}

// ForResident returns the stats and 5 most recent reports owned by the actor.
func (s *DashboardService) ForResident(ctx context.Context, actor *domain.User) (*ResidentDashboard, error) {
	ownerID := actor.ID
	stats, err := s.reports.CountByStatus(ctx, &ownerID)
	if err != nil {
		return nil, err
	}
	recent, err := s.reports.ListRecent(ctx, &ownerID, recentReportCount)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.Report{}
	}
	return &ResidentDashboard{Stats: stats, Recent: recent}, nil
}

// ForAdmin returns system-wide stats, the warga account count, and the 5 most
// recent reports across all owners.
func (s *DashboardService) ForAdmin(ctx context.Context) (*AdminDashboard, error) {
	stats, err := s.reports.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	totalWarga, err := s.users.CountByRole(ctx, domain.RoleWarga)
	if err != nil {
		return nil, err
	}
	recent, err := s.reports.ListRecent(ctx, nil, recentReportCount)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.Report{}
	}
	return &AdminDashboard{Stats: stats, TotalWarga: totalWarga, Recent: recent}, nil
}
