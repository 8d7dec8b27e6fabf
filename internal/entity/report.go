package entity

import (
	"time"

	"CommunityReportAPI/internal/constant"
)

type Report struct {
	ID              int64                 `gorm:"primaryKey;autoIncrement"`
	Building        string                `gorm:"not null;index:idx_cr_reports_location,priority:1"`
	Location        string                `gorm:"not null;index:idx_cr_reports_location,priority:2"`
	ReportType      string                `gorm:"column:report_type;not null"`
	Description     string                `gorm:"type:text;not null"`
	Contact         *string               `gorm:"type:text"`
	Photos          Photos                `gorm:"not null"`
	Status          constant.ReportStatus `gorm:"type:varchar(20);not null;default:pending;index"`
	ImprovementText *string               `gorm:"column:improvement_text;type:text"`
	CreatedAt       time.Time             `gorm:"not null;autoCreateTime:false;index"`
	UpdatedAt       time.Time             `gorm:"not null;autoUpdateTime:false"`

	Comments []Comment `gorm:"foreignKey:ReportID;constraint:OnDelete:RESTRICT"`
}

func (Report) TableName() string {
	return "cr_reports"
}

type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ReportID  int64     `gorm:"not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedBy string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false;index"`
}

func (Comment) TableName() string {
	return "cr_comments"
}

// LocationStatus is the per (building, location) aggregate. It is computed on
// every query and never stored.
type LocationStatus struct {
	Building         string
	Location         string
	ReportCount      int64
	LatestReportDate *time.Time
}
