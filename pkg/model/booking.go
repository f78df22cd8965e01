package model

// Booking is a reservation admitted by the booking engine. Times are empty
// for daily resources. Bookings are never updated in place.
type Booking struct {
	ID            string `json:"id,omitempty" bson:"_id,omitempty"`
	CondominiumID string `json:"condominium_id" bson:"condominium_id" validate:"required"`
	UserID        string `json:"user_id" bson:"user_id" validate:"required"`
	UserName      string `json:"user_name" bson:"user_name" validate:"required,min=2,max=100"`
	ResourceID    string `json:"resource_id" bson:"resource_id" validate:"required"`
	Date          string `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty" bson:"end_time,omitempty"`
	CreatedAt     string `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// BookingRequest is the candidate a caller submits for admission. Date comes
// in as an instant and is normalized to a calendar day by the engine.
type BookingRequest struct {
	CondominiumID string `json:"condominium_id" validate:"required"`
	UserID        string `json:"user_id" validate:"required"`
	UserName      string `json:"user_name" validate:"required"`
	ResourceID    string `json:"resource_id" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time,omitempty" validate:"omitempty,valid_time"`
	EndTime       string `json:"end_time,omitempty" validate:"omitempty,valid_time"`
}

// BookingResult is the success outcome of an admission, including the
// informational message shown to the resident.
type BookingResult struct {
	Booking *Booking `json:"booking"`
	Message string   `json:"message"`
}
