package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/asdes/report-service/internal/domain"
	"github.com/asdes/report-service/internal/events"
	"github.com/asdes/report-service/internal/repository"
	apperrors "github.com/asdes/report-service/pkg/util"
)

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) Update(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReportRepository) List(ctx context.Context, filter repository.ReportFilter) ([]domain.Report, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Report), args.Int(1), args.Error(2)
}

func (m *MockReportRepository) ListRecent(ctx context.Context, ownerID *string, limit int) ([]domain.Report, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepository) CountByStatus(ctx context.Context, ownerID *string) (domain.StatusCounts, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.StatusCounts), args.Error(1)
}

func wargaUser(id string) *domain.User {
	return &domain.User{ID: id, Name: "Budi Santoso", Email: "budi@asdes.com", Role: domain.RoleWarga}
}

func adminUser(id string) *domain.User {
	return &domain.User{ID: id, Name: "Admin Desa", Email: "admin@asdes.com", Role: domain.RoleAdmin}
}

func validInput() ReportCreateInput {
	return ReportCreateInput{
		Title:         "Pothole on Main St",
		Description:   "Large pothole causing damage",
		Location:      "Main St",
		Category:      domain.ReportCategoryRoad,
		Priority:      domain.ReportPriorityMedium,
		ReporterName:  "Budi Santoso",
		ReporterPhone: "08123456789",
		ReporterEmail: "budi@asdes.com",
	}
}

func TestReportService_Submit(t *testing.T) {
	t.Run("forces pending status and actor ownership", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

		svc := NewReportService(repo, events.NewInMemoryDispatcher())
		report, err := svc.Submit(context.Background(), wargaUser("u1"), validInput())

		require.NoError(t, err)
		assert.Equal(t, domain.ReportStatusPending, report.Status)
		assert.Equal(t, "u1", report.UserID)
		assert.Equal(t, domain.ReportCategoryRoad, report.Category)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non-resident actors", func(t *testing.T) {
		repo := new(MockReportRepository)

		svc := NewReportService(repo, nil)
		report, err := svc.Submit(context.Background(), adminUser("a1"), validInput())

		assert.Nil(t, report)
		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects short description without persisting", func(t *testing.T) {
		repo := new(MockReportRepository)

		input := validInput()
		input.Description = "too short"

		svc := NewReportService(repo, nil)
		report, err := svc.Submit(context.Background(), wargaUser("u1"), input)

		assert.Nil(t, report)
		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		assert.Equal(t, "Deskripsi masalah minimal 10 karakter.", domainErr.Details["description"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		repo := new(MockReportRepository)

		input := validInput()
		input.Category = "sidewalk"

		svc := NewReportService(repo, nil)
		_, err := svc.Submit(context.Background(), wargaUser("u1"), input)

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		assert.Equal(t, "Kategori infrastruktur tidak valid.", domainErr.Details["category"])
	})

	t.Run("rejects malformed reporter email", func(t *testing.T) {
		repo := new(MockReportRepository)

		input := validInput()
		input.ReporterEmail = "not-an-email"

		svc := NewReportService(repo, nil)
		_, err := svc.Submit(context.Background(), wargaUser("u1"), input)

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "Format email tidak valid.", domainErr.Details["reporter_email"])
	})

	t.Run("collects every failing field", func(t *testing.T) {
		repo := new(MockReportRepository)

		svc := NewReportService(repo, nil)
		_, err := svc.Submit(context.Background(), wargaUser("u1"), ReportCreateInput{})

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Len(t, domainErr.Details, 8)
	})
}

func TestReportService_GetForActor(t *testing.T) {
	report := &domain.Report{ID: "r1", UserID: "u1", Status: domain.ReportStatusPending}

	tests := []struct {
		name      string
		actor     *domain.User
		wantCode  string
		wantOwner string
	}{
		{name: "owner can read", actor: wargaUser("u1")},
		{name: "admin can read", actor: adminUser("a1")},
		{name: "other resident is forbidden", actor: wargaUser("u2"), wantCode: "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockReportRepository)
			repo.On("GetByID", mock.Anything, "r1").Return(report, nil)

			svc := NewReportService(repo, nil)
			got, err := svc.GetForActor(context.Background(), tt.actor, "r1")

			if tt.wantCode != "" {
				assert.Nil(t, got)
				domainErr := apperrors.ToDomainError(err)
				require.NotNil(t, domainErr)
				assert.Equal(t, tt.wantCode, domainErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "r1", got.ID)
		})
	}
}

func TestReportService_Delete(t *testing.T) {
	t.Run("owner deletes pending report", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, "r1").Return(&domain.Report{ID: "r1", UserID: "u1", Status: domain.ReportStatusPending}, nil)
		repo.On("Delete", mock.Anything, "r1").Return(nil)

		svc := NewReportService(repo, events.NewInMemoryDispatcher())
		err := svc.Delete(context.Background(), wargaUser("u1"), "r1")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("non-pending report yields business-rule error and stays", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, "r1").Return(&domain.Report{ID: "r1", UserID: "u1", Status: domain.ReportStatusInProgress}, nil)

		svc := NewReportService(repo, nil)
		err := svc.Delete(context.Background(), wargaUser("u1"), "r1")

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "BUSINESS_RULE", domainErr.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("other resident is forbidden", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, "r1").Return(&domain.Report{ID: "r1", UserID: "u1", Status: domain.ReportStatusPending}, nil)

		svc := NewReportService(repo, nil)
		err := svc.Delete(context.Background(), wargaUser("u2"), "r1")

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("admin may delete any pending report", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, "r1").Return(&domain.Report{ID: "r1", UserID: "u1", Status: domain.ReportStatusPending}, nil)
		repo.On("Delete", mock.Anything, "r1").Return(nil)

		svc := NewReportService(repo, nil)
		err := svc.Delete(context.Background(), adminUser("a1"), "r1")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestReportService_UpdateStatus(t *testing.T) {
	notes := "Sedang dikoordinasikan dengan Dinas PU."

	t.Run("admin moves pending to in_progress with notes", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, "r1").Return(&domain.Report{ID: "r1", UserID: "u1", Status: domain.ReportStatusPending}, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

		svc := NewReportService(repo, events.NewInMemoryDispatcher())
		report, err := svc.UpdateStatus(context.Background(), adminUser("a1"), "r1", domain.ReportStatusInProgress, &notes)

		require.NoError(t, err)
		assert.Equal(t, domain.ReportStatusInProgress, report.Status)
		require.NotNil(t, report.AdminNotes)
		assert.Equal(t, notes, *report.AdminNotes)
		repo.AssertExpectations(t)
	})

	t.Run("no transition graph is enforced", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, "r1").Return(&domain.Report{ID: "r1", UserID: "u1", Status: domain.ReportStatusRejected}, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

		svc := NewReportService(repo, nil)
		report, err := svc.UpdateStatus(context.Background(), adminUser("a1"), "r1", domain.ReportStatusInProgress, nil)

		require.NoError(t, err)
		assert.Equal(t, domain.ReportStatusInProgress, report.Status)
	})

	t.Run("rejects values outside the enum", func(t *testing.T) {
		repo := new(MockReportRepository)

		svc := NewReportService(repo, nil)
		_, err := svc.UpdateStatus(context.Background(), adminUser("a1"), "r1", "archived", nil)

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("residents are forbidden", func(t *testing.T) {
		repo := new(MockReportRepository)

		svc := NewReportService(repo, nil)
		_, err := svc.UpdateStatus(context.Background(), wargaUser("u1"), "r1", domain.ReportStatusDone, nil)

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("keeps existing notes when none supplied", func(t *testing.T) {
		existing := "catatan lama"
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, "r1").Return(&domain.Report{ID: "r1", UserID: "u1", Status: domain.ReportStatusPending, AdminNotes: &existing}, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

		svc := NewReportService(repo, nil)
		report, err := svc.UpdateStatus(context.Background(), adminUser("a1"), "r1", domain.ReportStatusDone, nil)

		require.NoError(t, err)
		require.NotNil(t, report.AdminNotes)
		assert.Equal(t, existing, *report.AdminNotes)
	})
}

func TestReportService_List(t *testing.T) {
	status := domain.ReportStatusPending
	category := domain.ReportCategoryRoad

	t.Run("residents are scoped to their own reports, status filter only", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ReportFilter) bool {
			return f.OwnerID != nil && *f.OwnerID == "u1" &&
				f.Status != nil && *f.Status == status &&
				f.Category == nil && f.Limit == ListPageSize && f.Offset == 0
		})).Return([]domain.Report{{ID: "r1", UserID: "u1"}}, 1, nil)

		svc := NewReportService(repo, nil)
		page, err := svc.List(context.Background(), wargaUser("u1"), ReportListInput{Status: &status, Category: &category, Page: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, ListPageSize, page.PageSize)
		repo.AssertExpectations(t)
	})

	t.Run("admins see all owners with the full filter set", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ReportFilter) bool {
			return f.OwnerID == nil && f.Category != nil && *f.Category == category
		})).Return([]domain.Report{}, 0, nil)

		svc := NewReportService(repo, nil)
		_, err := svc.List(context.Background(), adminUser("a1"), ReportListInput{Category: &category, Page: 1})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("page numbers below one are clamped", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ReportFilter) bool {
			return f.Offset == 0
		})).Return([]domain.Report{}, 0, nil)

		svc := NewReportService(repo, nil)
		page, err := svc.List(context.Background(), wargaUser("u1"), ReportListInput{Page: -3})

		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
	})

	t.Run("admin search listing uses the wider page size", func(t *testing.T) {
		search := "pothole"
		repo := new(MockReportRepository)
		repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ReportFilter) bool {
			return f.Search != nil && *f.Search == search && f.Limit == AdminListPageSize
		})).Return([]domain.Report{}, 0, nil)

		svc := NewReportService(repo, nil)
		page, err := svc.AdminList(context.Background(), adminUser("a1"), ReportListInput{Search: &search, Page: 1})

		require.NoError(t, err)
		assert.Equal(t, AdminListPageSize, page.PageSize)
	})

	t.Run("admin listing is forbidden for residents", func(t *testing.T) {
		repo := new(MockReportRepository)

		svc := NewReportService(repo, nil)
		_, err := svc.AdminList(context.Background(), wargaUser("u1"), ReportListInput{Page: 1})

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestReportService_NotFoundPassthrough(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)

	svc := NewReportService(repo, nil)
	_, err := svc.GetForActor(context.Background(), adminUser("a1"), "missing")

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
