package requests

type Login struct {
	Username  string `json:"username" validate:"required,max=150"`
	Pin       string `json:"pin" validate:"required,pin"`
	LoginType string `json:"login_type" validate:"required,login_type"`
}

type RegisterPatient struct {
	FirstName     string `json:"first_name" validate:"required,max=100"`
	MiddleInitial string `json:"middle_initial" validate:"omitempty,max=3"`
	LastName      string `json:"last_name" validate:"required,max=100"`
	Sex           string `json:"sex" validate:"required,sex"`
	ContactNumber string `json:"contact_number" validate:"required,contact"`
	Address       string `json:"address" validate:"required,max=255"`
	Username      string `json:"username" validate:"required,alphanum,min=3,max=150"`
	Birthdate     string `json:"birthdate" validate:"omitempty,datetime=2006-01-02,not_future"`
	Pin           string `json:"pin" validate:"required,pin"`
}
