package utils

import (
	"esperanza-kiosk/internal/pkg/constvars"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate       *validator.Validate
	rePIN          = regexp.MustCompile(constvars.RegexFourDigitPIN)
	reContactPhone = regexp.MustCompile(constvars.RegexElevenDigitPhone)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("pin", validatePIN)
	validate.RegisterValidation("contact", validateContactNumber)
	validate.RegisterValidation("login_type", validateLoginType)
	validate.RegisterValidation("sex", validateSex)
	validate.RegisterValidation("not_future", validateNotFutureDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePIN(fl validator.FieldLevel) bool {
	return rePIN.MatchString(fl.Field().String())
}

func validateContactNumber(fl validator.FieldLevel) bool {
	return reContactPhone.MatchString(fl.Field().String())
}

func validateLoginType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.KioskRolePatient || value == constvars.KioskRoleStaff
}

func validateSex(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "Male" || value == "Female"
}

func validateNotFutureDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	date, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return false
	}
	return !date.After(time.Now())
}
