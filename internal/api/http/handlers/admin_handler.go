package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/asdes/report-service/internal/api/dto"
	"github.com/asdes/report-service/internal/auth"
	"github.com/asdes/report-service/internal/domain"
	"github.com/asdes/report-service/internal/service"
	apperrors "github.com/asdes/report-service/pkg/util"
)

// AdminHandler exposes the admin dashboard, report triage, and user
// directory. Routes are additionally gated by the admin role guard.
type AdminHandler struct {
	reports   *service.ReportService
	users     *service.UserService
	dashboard *service.DashboardService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(reportService *service.ReportService, userService *service.UserService, dashboardService *service.DashboardService) *AdminHandler {
	return &AdminHandler{reports: reportService, users: userService, dashboard: dashboardService}
}

// Dashboard GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	data, err := h.dashboard.ForAdmin(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboardResponse(data.Stats, data.TotalWarga, data.Recent)})
}

// Reports GET /admin/reports.
func (h *AdminHandler) Reports(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	input := parseReportListQuery(c)
	page, err := h.reports.AdminList(c.Context(), principal, input)
	if err != nil {
		return err
	}
	return c.JSON(reportListResponse(page, c))
}

// UpdateStatus PUT /admin/reports/:id/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.UpdateStatus(c.Context(), principal, c.Params("id"), req.Status, req.AdminNotes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":    reportResponse(report),
		"message": "Status laporan berhasil diperbarui.",
	})
}

// Users GET /admin/users.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	input := service.UserListInput{Page: parsePage(c.Query("page"))}
	if v := c.Query("role"); v != "" {
		role := domain.Role(v)
		input.Role = &role
	}
	if v := c.Query("search"); v != "" {
		input.Search = &v
	}

	page, err := h.users.AdminList(c.Context(), principal, input)
	if err != nil {
		return err
	}

	items := make([]dto.UserSummary, 0, len(page.Items))
	for i := range page.Items {
		row := &page.Items[i]
		items = append(items, dto.UserSummary{
			UserResponse: userResponse(&row.User),
			ReportCount:  row.ReportCount,
		})
	}
	return c.JSON(dto.UserListResponse{
		Data: items,
		Meta: dto.PageMeta{Total: page.Total, Page: page.Page, PageSize: page.PageSize},
		Filters: dto.UserFilters{
			Role:   c.Query("role"),
			Search: c.Query("search"),
		},
	})
}
