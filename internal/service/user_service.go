package service

import (
	"context"

	"github.com/asdes/report-service/internal/domain"
	"github.com/asdes/report-service/internal/repository"
	apperrors "github.com/asdes/report-service/pkg/util"
)

// UserService serves the admin user directory.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UserListInput describes admin user-listing filters.
type UserListInput struct {
	Role   *domain.Role
	Search *string
	Page   int
}

// UserPage is one page of the user directory with per-user report counts.
type UserPage struct {
	Items    []repository.UserWithReportCount
	Total    int
	Page     int
	PageSize int
}

// AdminList returns the filtered, searchable user listing. Admin only.
func (s *UserService) AdminList(ctx context.Context, actor *domain.User, input UserListInput) (*UserPage, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("Akses ditolak. Hanya admin yang dapat mengakses halaman ini.")
	}
	page := input.Page
	if page < 1 {
		page = 1
	}
	filter := repository.UserFilter{
		Role:   input.Role,
		Search: input.Search,
		Limit:  AdminListPageSize,
		Offset: (page - 1) * AdminListPageSize,
	}
	items, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []repository.UserWithReportCount{}
	}
	return &UserPage{Items: items, Total: total, Page: page, PageSize: AdminListPageSize}, nil
}
