package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/asdes/report-service/pkg/util"
)

// RequireWarga ensures the caller is an authenticated resident. Fails closed.
func RequireWarga() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsWarga() {
			return apperrors.NewForbidden("Hanya warga yang dapat membuat laporan.")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller is an authenticated admin. Fails closed.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsAdmin() {
			return apperrors.NewForbidden("Akses ditolak. Hanya admin yang dapat mengakses halaman ini.")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
