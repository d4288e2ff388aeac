package responses

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Navigation carries the kiosk route the front end should show next.
type Navigation struct {
	Next string `json:"next"`
}
