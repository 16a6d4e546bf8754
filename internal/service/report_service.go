package service

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/asdes/report-service/internal/domain"
	"github.com/asdes/report-service/internal/events"
	"github.com/asdes/report-service/internal/repository"
	apperrors "github.com/asdes/report-service/pkg/util"
)

// Page sizes match the original listing pages.
const (
	ListPageSize      = 10
	AdminListPageSize = 15
)

// ReportService coordinates the report lifecycle and its access rules.
type ReportService struct {
	reports    repository.ReportRepository
	dispatcher events.Dispatcher
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository, dispatcher events.Dispatcher) *ReportService {
	return &ReportService{reports: reports, dispatcher: dispatcher}
}

// ReportCreateInput describes a resident submission. The reporter_* fields
// are kept as submitted; they are a contact snapshot, not a join against the
// owner's profile.
type ReportCreateInput struct {
	Title         string
	Description   string
	Location      string
	Category      domain.ReportCategory
	Priority      domain.ReportPriority
	ReporterName  string
	ReporterPhone string
	ReporterEmail string
}

// ReportListInput describes listing filters. Residents may only filter by
// status; category, priority, and search apply to admin scopes.
type ReportListInput struct {
	Status   *domain.ReportStatus
	Category *domain.ReportCategory
	Priority *domain.ReportPriority
	Search   *string
	Page     int
}

// ReportPage is one page of a listing plus pagination metadata.
type ReportPage struct {
	Items    []domain.Report
	Total    int
	Page     int
	PageSize int
}

// Submit creates a report for a resident. Status is forced to pending and
// ownership to the actor regardless of any client-supplied values.
func (s *ReportService) Submit(ctx context.Context, actor *domain.User, input ReportCreateInput) (*domain.Report, error) {
	if !actor.IsWarga() {
		return nil, apperrors.NewForbidden("Hanya warga yang dapat membuat laporan.")
	}
	if details := validateSubmission(&input); len(details) > 0 {
		return nil, apperrors.NewValidationError("Data laporan tidak valid.", details)
	}

	report := &domain.Report{
		UserID:        actor.ID,
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		Category:      input.Category,
		Priority:      input.Priority,
		Status:        domain.ReportStatusPending,
		ReporterName:  input.ReporterName,
		ReporterPhone: input.ReporterPhone,
		ReporterEmail: input.ReporterEmail,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportCreated,
		ReportID: report.ID,
		Actor:    actorOf(actor),
		Payload: events.ReportCreatedPayload{
			Category: report.Category,
			Priority: report.Priority,
			Title:    report.Title,
			Location: report.Location,
		},
	})
	return report, nil
}

// List returns the role-scoped report listing: residents see only their own
// reports (status filter only), admins see all reports with the full filter
// set minus free-text search.
func (s *ReportService) List(ctx context.Context, actor *domain.User, input ReportListInput) (*ReportPage, error) {
	filter := repository.ReportFilter{Status: input.Status}
	if actor.IsAdmin() {
		filter.Category = input.Category
		filter.Priority = input.Priority
	} else {
		ownerID := actor.ID
		filter.OwnerID = &ownerID
	}
	return s.page(ctx, filter, input.Page, ListPageSize)
}

// AdminList returns the admin listing with free-text search.
func (s *ReportService) AdminList(ctx context.Context, actor *domain.User, input ReportListInput) (*ReportPage, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("Akses ditolak. Hanya admin yang dapat mengakses halaman ini.")
	}
	filter := repository.ReportFilter{
		Status:   input.Status,
		Category: input.Category,
		Priority: input.Priority,
		Search:   input.Search,
	}
	return s.page(ctx, filter, input.Page, AdminListPageSize)
}

// GetForActor fetches a report, enforcing the owner-or-admin read rule.
func (s *ReportService) GetForActor(ctx context.Context, actor *domain.User, id string) (*domain.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsWarga() && report.UserID != actor.ID {
		return nil, apperrors.NewForbidden("Anda tidak memiliki akses ke laporan ini.")
	}
	return report, nil
}

// Delete removes a report. Only the owner or an admin may delete, and only
// while the report is still pending; otherwise a soft business-rule error is
// returned and the report is left untouched.
func (s *ReportService) Delete(ctx context.Context, actor *domain.User, id string) error {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.IsWarga() && report.UserID != actor.ID {
		return apperrors.NewForbidden("Anda tidak memiliki akses untuk menghapus laporan ini.")
	}
	if report.Status != domain.ReportStatusPending {
		return apperrors.NewBusinessRule(`Hanya laporan dengan status "Menunggu" yang dapat dihapus.`)
	}
	if err := s.reports.Delete(ctx, report.ID); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportDeleted,
		ReportID: report.ID,
		Actor:    actorOf(actor),
		Payload: events.ReportDeletedPayload{
			Title:  report.Title,
			Status: report.Status,
		},
	})
	return nil
}

// UpdateStatus sets the report status and admin notes. Admin only. Any
// enumerated status value is accepted; no transition graph is enforced, so an
// admin can correct a rejected report back to in_progress.
func (s *ReportService) UpdateStatus(ctx context.Context, actor *domain.User, id string, status domain.ReportStatus, adminNotes *string) (*domain.Report, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("Akses ditolak. Hanya admin yang dapat mengakses halaman ini.")
	}
	if !domain.ValidStatus(status) {
		return nil, apperrors.NewValidationError("Data laporan tidak valid.", map[string]any{
			"status": "Status laporan tidak valid.",
		})
	}
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := report.Status
	report.Status = status
	if adminNotes != nil {
		report.AdminNotes = adminNotes
	}
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportStatusChanged,
		ReportID: report.ID,
		Actor:    actorOf(actor),
		Payload: events.ReportStatusChangedPayload{
			OldStatus:  oldStatus,
			NewStatus:  report.Status,
			AdminNotes: report.AdminNotes,
		},
	})
	return report, nil
}

func (s *ReportService) page(ctx context.Context, filter repository.ReportFilter, page, pageSize int) (*ReportPage, error) {
	if page < 1 {
		page = 1
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	items, total, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Report{}
	}
	return &ReportPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *ReportService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(user *domain.User) events.Actor {
	return events.Actor{UserID: user.ID, Role: user.Role}
}

// validateSubmission re-checks every field server-side and returns field
// scoped, localized messages. Input strings are trimmed in place.
func validateSubmission(input *ReportCreateInput) map[string]any {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Location = strings.TrimSpace(input.Location)
	input.ReporterName = strings.TrimSpace(input.ReporterName)
	input.ReporterPhone = strings.TrimSpace(input.ReporterPhone)
	input.ReporterEmail = strings.TrimSpace(input.ReporterEmail)

	details := map[string]any{}

	switch {
	case input.Title == "":
		details["title"] = "Judul laporan wajib diisi."
	case utf8.RuneCountInString(input.Title) > 255:
		details["title"] = "Judul laporan maksimal 255 karakter."
	}

	switch {
	case input.Description == "":
		details["description"] = "Deskripsi masalah wajib diisi."
	case utf8.RuneCountInString(input.Description) < 10:
		details["description"] = "Deskripsi masalah minimal 10 karakter."
	}

	switch {
	case input.Location == "":
		details["location"] = "Lokasi wajib diisi."
	case utf8.RuneCountInString(input.Location) > 255:
		details["location"] = "Lokasi maksimal 255 karakter."
	}

	switch {
	case input.Category == "":
		details["category"] = "Kategori infrastruktur wajib dipilih."
	case !domain.ValidCategory(input.Category):
		details["category"] = "Kategori infrastruktur tidak valid."
	}

	switch {
	case input.Priority == "":
		details["priority"] = "Tingkat prioritas wajib dipilih."
	case !domain.ValidPriority(input.Priority):
		details["priority"] = "Tingkat prioritas tidak valid."
	}

	switch {
	case input.ReporterName == "":
		details["reporter_name"] = "Nama pelapor wajib diisi."
	case utf8.RuneCountInString(input.ReporterName) > 255:
		details["reporter_name"] = "Nama pelapor maksimal 255 karakter."
	}

	switch {
	case input.ReporterPhone == "":
		details["reporter_phone"] = "Nomor telepon wajib diisi."
	case utf8.RuneCountInString(input.ReporterPhone) > 20:
		details["reporter_phone"] = "Nomor telepon maksimal 20 karakter."
	}

	switch {
	case input.ReporterEmail == "":
		details["reporter_email"] = "Email wajib diisi."
	case utf8.RuneCountInString(input.ReporterEmail) > 255:
		details["reporter_email"] = "Email maksimal 255 karakter."
	default:
		if _, err := mail.ParseAddress(input.ReporterEmail); err != nil {
			details["reporter_email"] = "Format email tidak valid."
		}
	}

	return details
}
