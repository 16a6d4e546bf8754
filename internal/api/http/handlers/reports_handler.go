package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/asdes/report-service/internal/api/dto"
	"github.com/asdes/report-service/internal/auth"
	"github.com/asdes/report-service/internal/domain"
	"github.com/asdes/report-service/internal/service"
	apperrors "github.com/asdes/report-service/pkg/util"
)

// ReportsHandler manages the shared report endpoints used by residents and
// admins.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// List GET /reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	input := parseReportListQuery(c)
	page, err := h.reports.List(c.Context(), principal, input)
	if err != nil {
		return err
	}
	return c.JSON(reportListResponse(page, c))
}

// CreateForm GET /reports/create. JSON stand-in for the submission form:
// returns the enumerations the form offers.
func (h *ReportsHandler) CreateForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.ReportFormOptions{
		Categories: domain.Categories(),
		Priorities: domain.Priorities(),
	}})
}

// Create POST /reports.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.Submit(c.Context(), principal, service.ReportCreateInput{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Category:      req.Category,
		Priority:      req.Priority,
		ReporterName:  req.ReporterName,
		ReporterPhone: req.ReporterPhone,
		ReporterEmail: req.ReporterEmail,
	})
	if err != nil {
		return err
	}

	c.Location("/reports/" + report.ID)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reportResponse(report)})
}

// Get GET /reports/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	report, err := h.reports.GetForActor(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponse(report)})
}

// Delete DELETE /reports/:id.
func (h *ReportsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.reports.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"deleted": true,
		"message": "Laporan berhasil dihapus.",
	}})
}

func parseReportListQuery(c *fiber.Ctx) service.ReportListInput {
	input := service.ReportListInput{Page: parsePage(c.Query("page"))}
	if v := c.Query("status"); v != "" {
		status := domain.ReportStatus(v)
		input.Status = &status
	}
	if v := c.Query("category"); v != "" {
		category := domain.ReportCategory(v)
		input.Category = &category
	}
	if v := c.Query("priority"); v != "" {
		priority := domain.ReportPriority(v)
		input.Priority = &priority
	}
	if v := c.Query("search"); v != "" {
		input.Search = &v
	}
	return input
}

func parsePage(val string) int {
	page, err := strconv.Atoi(val)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func reportResponse(report *domain.Report) dto.ReportResponse {
	return dto.ReportResponse{
		ID:            report.ID,
		UserID:        report.UserID,
		Title:         report.Title,
		Description:   report.Description,
		Location:      report.Location,
		Category:      report.Category,
		Priority:      report.Priority,
		Status:        report.Status,
		ReporterName:  report.ReporterName,
		ReporterPhone: report.ReporterPhone,
		ReporterEmail: report.ReporterEmail,
		AdminNotes:    report.AdminNotes,
		CreatedAt:     report.CreatedAt,
		UpdatedAt:     report.UpdatedAt,
	}
}

func reportListResponse(page *service.ReportPage, c *fiber.Ctx) dto.ReportListResponse {
	items := make([]dto.ReportResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, reportResponse(&page.Items[i]))
	}
	return dto.ReportListResponse{
		Data: items,
		Meta: dto.PageMeta{Total: page.Total, Page: page.Page, PageSize: page.PageSize},
		Filters: dto.ReportFilters{
			Status:   c.Query("status"),
			Category: c.Query("category"),
			Priority: c.Query("priority"),
			Search:   c.Query("search"),
		},
	}
}
