package config

import (
	"CommunityReportAPI/internal/constant"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("report_status", validateReportStatus)
	_ = v.RegisterValidation("report_type", validateReportType)
	_ = v.RegisterValidation("building_code", validateBuildingCode)
	_ = v.RegisterValidation("notblank", validateNotBlank)
	return v
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		name, _, _ = strings.Cut(field.Tag.Get("form"), ",")
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validateReportStatus(fl validator.FieldLevel) bool {
	return constant.ReportStatus(fl.Field().String()).IsValid()
}

func validateReportType(fl validator.FieldLevel) bool {
	return constant.IsReportType(fl.Field().String())
}

func validateBuildingCode(fl validator.FieldLevel) bool {
	return constant.IsBuilding(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
