package domain

import "time"

// ReportStatus enumerates lifecycle states for infrastructure reports.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusDone       ReportStatus = "done"
	ReportStatusRejected   ReportStatus = "rejected"
)

// ReportCategory enumerates the kinds of infrastructure a report can target.
type ReportCategory string

const (
	ReportCategoryRoad           ReportCategory = "road"
	ReportCategoryBridge         ReportCategory = "bridge"
	ReportCategoryDrainage       ReportCategory = "drainage"
	ReportCategoryPublicFacility ReportCategory = "public_facility"
	ReportCategoryLighting       ReportCategory = "lighting"
	ReportCategoryOther          ReportCategory = "other"
)

// ReportPriority enumerates urgency levels.
type ReportPriority string

const (
	ReportPriorityLow    ReportPriority = "low"
	ReportPriorityMedium ReportPriority = "medium"
	ReportPriorityHigh   ReportPriority = "high"
	ReportPriorityUrgent ReportPriority = "urgent"
)

// Report is the aggregate for a single infrastructure complaint. The
// reporter_* fields are a contact snapshot taken at submission time and stay
// independent of the owning user's current profile.
type Report struct {
	ID            string
	UserID        string
	Title         string
	Description   string
	Location      string
	Category      ReportCategory
	Priority      ReportPriority
	Status        ReportStatus
	ReporterName  string
	ReporterPhone string
	ReporterEmail string
	AdminNotes    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StatusCounts aggregates per-status report totals for dashboards.
type StatusCounts struct {
	Total      int
	Pending    int
	InProgress int
	Done       int
	Rejected   int
}

// ValidStatus reports whether s is one of the four enumerated statuses.
func ValidStatus(s ReportStatus) bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusDone, ReportStatusRejected:
		return true
	}
	return false
}

// ValidCategory reports whether c is one of the six enumerated categories.
func ValidCategory(c ReportCategory) bool {
	switch c {
	case ReportCategoryRoad, ReportCategoryBridge, ReportCategoryDrainage,
		ReportCategoryPublicFacility, ReportCategoryLighting, ReportCategoryOther:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the four enumerated priorities.
func ValidPriority(p ReportPriority) bool {
	switch p {
	case ReportPriorityLow, ReportPriorityMedium, ReportPriorityHigh, ReportPriorityUrgent:
		return true
	}
	return false
}

// Categories lists the enumerated categories in display order.
func Categories() []ReportCategory {
	return []ReportCategory{
		ReportCategoryRoad,
		ReportCategoryBridge,
		ReportCategoryDrainage,
		ReportCategoryPublicFacility,
		ReportCategoryLighting,
		ReportCategoryOther,
	}
}

// Priorities lists the enumerated priorities in display order.
func Priorities() []ReportPriority {
	return []ReportPriority{
		ReportPriorityLow,
		ReportPriorityMedium,
		ReportPriorityHigh,
		ReportPriorityUrgent,
	}
}

// Statuses lists the enumerated statuses in display order.
func Statuses() []ReportStatus {
	return []ReportStatus{
		ReportStatusPending,
		ReportStatusInProgress,
		ReportStatusDone,
		ReportStatusRejected,
	}
}
