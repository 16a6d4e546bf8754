package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/asdes/report-service/internal/auth"
	"github.com/asdes/report-service/internal/config"
	"github.com/asdes/report-service/internal/domain"
	"github.com/asdes/report-service/internal/observability"
	"github.com/asdes/report-service/internal/persistence"
	"github.com/asdes/report-service/internal/repository"
)

const seedPassword = "password"

// Seeds the admin account, two named warga accounts, and sample reports in
// mixed statuses. Existing accounts are left untouched so the command is safe
// to re-run.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	users := repository.NewUserRepository(pg.PoolHandle())
	reports := repository.NewReportRepository(pg.PoolHandle())

	hash, err := auth.HashPassword(seedPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash seed password", zap.Error(err))
	}

	seedUser(ctx, logger, users, &domain.User{
		Name:         "Admin Desa",
		Email:        "admin@asdes.com",
		Phone:        "08123456789",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	warga1 := seedUser(ctx, logger, users, &domain.User{
		Name:         "Budi Santoso",
		Email:        "budi@asdes.com",
		Phone:        "08234567890",
		PasswordHash: hash,
		Role:         domain.RoleWarga,
	})
	warga2 := seedUser(ctx, logger, users, &domain.User{
		Name:         "Siti Rahayu",
		Email:        "siti@asdes.com",
		Phone:        "08345678901",
		PasswordHash: hash,
		Role:         domain.RoleWarga,
	})

	roadNotes := "Sedang dikoordinasikan dengan Dinas PU untuk perbaikan jalan."
	drainNotes := "Saluran air sudah dibersihkan dan diperbaiki. Terimakasih atas laporannya."

	seedReport(ctx, logger, reports, &domain.Report{
		UserID:        warga1.ID,
		Title:         "Jalan Rusak di Depan Balai Desa",
		Description:   "Jalan di depan balai desa kondisinya sangat rusak dengan banyak lubang. Hal ini menyulitkan warga yang ingin mengakses pelayanan di balai desa.",
		Location:      "Jl. Desa Raya No. 1, Depan Balai Desa",
		Category:      domain.ReportCategoryRoad,
		Priority:      domain.ReportPriorityHigh,
		Status:        domain.ReportStatusInProgress,
		ReporterName:  warga1.Name,
		ReporterPhone: warga1.Phone,
		ReporterEmail: warga1.Email,
		AdminNotes:    &roadNotes,
	})
	seedReport(ctx, logger, reports, &domain.Report{
		UserID:        warga2.ID,
		Title:         "Lampu Jalan Mati di RT 03",
		Description:   "Lampu penerangan jalan di RT 03 sudah mati sejak seminggu yang lalu. Kondisi ini membuat jalan menjadi gelap di malam hari dan rawan kejahatan.",
		Location:      "Jl. Mawar RT 03 RW 02",
		Category:      domain.ReportCategoryLighting,
		Priority:      domain.ReportPriorityMedium,
		Status:        domain.ReportStatusPending,
		ReporterName:  warga2.Name,
		ReporterPhone: warga2.Phone,
		ReporterEmail: warga2.Email,
	})
	seedReport(ctx, logger, reports, &domain.Report{
		UserID:        warga1.ID,
		Title:         "Saluran Air Tersumbat",
		Description:   "Saluran air di belakang pasar desa tersumbat sampah sehingga air menggenang dan menimbulkan bau tidak sedap.",
		Location:      "Belakang Pasar Desa, Gang Kenanga",
		Category:      domain.ReportCategoryDrainage,
		Priority:      domain.ReportPriorityHigh,
		Status:        domain.ReportStatusDone,
		ReporterName:  warga1.Name,
		ReporterPhone: warga1.Phone,
		ReporterEmail: warga1.Email,
		AdminNotes:    &drainNotes,
	})

	logger.Info("seed complete")
}

func seedUser(ctx context.Context, logger *zap.Logger, users repository.UserRepository, user *domain.User) *domain.User {
	existing, err := users.GetByEmail(ctx, user.Email)
	if err == nil {
		logger.Info("user already seeded", zap.String("email", user.Email))
		return existing
	}
	if err != pgx.ErrNoRows {
		logger.Fatal("failed to look up seed user", zap.String("email", user.Email), zap.Error(err))
	}
	if err := users.Create(ctx, user); err != nil {
		logger.Fatal("failed to seed user", zap.String("email", user.Email), zap.Error(err))
	}
	logger.Info("seeded user", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	return user
}

func seedReport(ctx context.Context, logger *zap.Logger, reports repository.ReportRepository, report *domain.Report) {
	ownerID := report.UserID
	existing, _, err := reports.List(ctx, repository.ReportFilter{OwnerID: &ownerID, Limit: 50})
	if err != nil {
		logger.Fatal("failed to list reports for seed check", zap.Error(err))
	}
	for _, r := range existing {
		if r.Title == report.Title {
			logger.Info("report already seeded", zap.String("title", report.Title))
			return
		}
	}

	status := report.Status
	notes := report.AdminNotes
	report.Status = domain.ReportStatusPending
	if err := reports.Create(ctx, report); err != nil {
		logger.Fatal("failed to seed report", zap.String("title", report.Title), zap.Error(err))
	}
	if status != domain.ReportStatusPending || notes != nil {
		report.Status = status
		report.AdminNotes = notes
		if err := reports.Update(ctx, report); err != nil {
			logger.Fatal("failed to finalize seed report", zap.String("title", report.Title), zap.Error(err))
		}
	}
	logger.Info("seeded report", zap.String("title", report.Title), zap.String("status", string(report.Status)))
}
