package requests

type UpdatePatient struct {
	FirstName     string `json:"first_name" validate:"omitempty,max=100"`
	MiddleInitial string `json:"middle_initial" validate:"omitempty,max=3"`
	LastName      string `json:"last_name" validate:"omitempty,max=100"`
	Sex           string `json:"sex" validate:"omitempty,sex"`
	ContactNumber string `json:"contact_number" validate:"omitempty,contact"`
	Address       string `json:"address" validate:"omitempty,max=255"`
	Birthdate     string `json:"birthdate" validate:"omitempty,datetime=2006-01-02,not_future"`
	Pin           string `json:"pin" validate:"omitempty,pin"`
}

type StaffVitals struct {
	BloodPressure string `json:"blood_pressure" validate:"required,max=15"`
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02,not_future"`
}
