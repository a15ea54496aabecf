package models

type RegisterDeviceRequest struct {
	Token      string           `json:"token" validate:"required,max=512"`
	Permission PermissionStatus `json:"permission" validate:"required,oneof=granted denied undetermined"`
}

type SaveOfferResponse struct {
	ID       string           `json:"id,omitempty"`
	Saved    bool             `json:"saved"`
	Reminder *ReminderRequest `json:"reminder,omitempty"`
	Messages []string         `json:"messages,omitempty"`
}

type OfferResponse struct {
	ID    string     `json:"id"`
	Offer OfferDraft `json:"offer"`
	Color string     `json:"interview_color"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
