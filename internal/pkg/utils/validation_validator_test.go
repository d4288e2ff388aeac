package utils

import (
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validRegistration() *requests.RegisterPatient {
	return &requests.RegisterPatient{
		FirstName:     "Maria",
		LastName:      "Santos",
		Sex:           "Female",
		ContactNumber: "09171234567",
		Address:       "12 Rizal St., Manila",
		Username:      "msantos",
		Birthdate:     "1990-05-17",
		Pin:           "1234",
	}
}

func TestValidateRegisterPatient(t *testing.T) {
	t.Run("Valid Request", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(validRegistration()))
	})

	t.Run("PIN Must Be Four Digits", func(t *testing.T) {
		request := validRegistration()
		request.Pin = "12a4"

		err := ValidateStruct(request)
		assert.Error(t, err)
		assert.Equal(t, "pin must be exactly 4 digits", exceptions.FormatAllValidationErrors(err))
	})

	t.Run("Contact Must Be Eleven Digits", func(t *testing.T) {
		request := validRegistration()
		request.ContactNumber = "0917123456"

		err := ValidateStruct(request)
		assert.Error(t, err)
		assert.Equal(t, "contact number must be exactly 11 digits", exceptions.FormatAllValidationErrors(err))
	})

	t.Run("Sex Must Be Male Or Female", func(t *testing.T) {
		request := validRegistration()
		request.Sex = "Other"

		err := ValidateStruct(request)
		assert.Error(t, err)
		assert.Equal(t, "sex must be either Male or Female", exceptions.FormatAllValidationErrors(err))
	})

	t.Run("Birthdate Cannot Be In The Future", func(t *testing.T) {
		request := validRegistration()
		request.Birthdate = time.Now().AddDate(1, 0, 0).Format("2006-01-02")

		err := ValidateStruct(request)
		assert.Error(t, err)
		assert.Equal(t, "birthdate cannot be in the future", exceptions.FormatAllValidationErrors(err))
	})

	t.Run("Every Failing Field Is Reported", func(t *testing.T) {
		request := validRegistration()
		request.Pin = "12"
		request.Sex = "Other"

		err := ValidateStruct(request)
		assert.Error(t, err)
		message := exceptions.FormatAllValidationErrors(err)
		assert.Contains(t, message, "pin must be exactly 4 digits")
		assert.Contains(t, message, "sex must be either Male or Female")
	})

	t.Run("Birthdate Is Optional", func(t *testing.T) {
		request := validRegistration()
		request.Birthdate = ""

		assert.NoError(t, ValidateStruct(request))
	})
}

func TestValidateLogin(t *testing.T) {
	t.Run("Valid Patient Login", func(t *testing.T) {
		request := &requests.Login{Username: "msantos", Pin: "1234", LoginType: "patient"}
		assert.NoError(t, ValidateStruct(request))
	})

	t.Run("Unknown Login Type", func(t *testing.T) {
		request := &requests.Login{Username: "msantos", Pin: "1234", LoginType: "admin"}

		err := ValidateStruct(request)
		assert.Error(t, err)
		assert.Equal(t, "logintype must be either patient or staff", exceptions.FormatAllValidationErrors(err))
	})
}

func TestValidateSubmitBloodPressure(t *testing.T) {
	cases := []struct {
		name      string
		systolic  int
		diastolic int
		wantErr   bool
	}{
		{"Typical Reading", 120, 80, false},
		{"Systolic Below Range", 39, 80, true},
		{"Diastolic Above Range", 120, 201, true},
		{"Missing Diastolic", 120, 0, true},
		{"Systolic Not Above Diastolic Is Allowed", 90, 95, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(&requests.SubmitBloodPressure{Systolic: tc.systolic, Diastolic: tc.diastolic})
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
