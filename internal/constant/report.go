package constant

import "slices"

type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusRejected   ReportStatus = "rejected"
)

var ReportStatuses = []ReportStatus{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusRejected,
}

func (s ReportStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

const (
	ReportTypeCeilingWallFloor  = "ceiling_wall_floor"
	ReportTypeSocketSwitch      = "socket_switch"
	ReportTypePaint             = "paint"
	ReportTypeEquipmentLocation = "equipment_location"
	ReportTypeCleaning          = "cleaning"
	ReportTypeWaterLeakage      = "water_leakage"
	ReportTypeMajorDefect       = "major_defect"
	ReportTypeOtherMarked       = "other_marked"
)

var ReportTypes = []string{
	ReportTypeCeilingWallFloor,
	ReportTypeSocketSwitch,
	ReportTypePaint,
	ReportTypeEquipmentLocation,
	ReportTypeCleaning,
	ReportTypeWaterLeakage,
	ReportTypeMajorDefect,
	ReportTypeOtherMarked,
}

var Buildings = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J",
	"outdoor",
	"parking",
}

func IsReportType(value string) bool {
	return slices.Contains(ReportTypes, value)
}

func IsBuilding(value string) bool {
	return slices.Contains(Buildings, value)
}
