package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/asdes/report-service/internal/api/dto"
	"github.com/asdes/report-service/internal/auth"
	"github.com/asdes/report-service/internal/domain"
	"github.com/asdes/report-service/internal/service"
	apperrors "github.com/asdes/report-service/pkg/util"
)

// DashboardHandler serves the resident dashboard.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboardService}
}

// Index GET /dashboard. Admins are redirected to the admin dashboard.
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.IsAdmin() {
		return c.Redirect("/admin/dashboard", http.StatusFound)
	}

	data, err := h.dashboard.ForResident(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboardResponse(data.Stats, 0, data.Recent)})
}

func dashboardResponse(stats domain.StatusCounts, totalUsers int, recent []domain.Report) dto.DashboardResponse {
	items := make([]dto.ReportResponse, 0, len(recent))
	for i := range recent {
		items = append(items, reportResponse(&recent[i]))
	}
	return dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalReports:      stats.Total,
			PendingReports:    stats.Pending,
			InProgressReports: stats.InProgress,
			CompletedReports:  stats.Done,
			RejectedReports:   stats.Rejected,
			TotalUsers:        totalUsers,
		},
		RecentReports: items,
	}
}
