package model

type Period string

const (
	PeriodDaily  Period = "daily"
	PeriodHourly Period = "hourly"
)

// TimeWindow is a half-open availability range within a day.
type TimeWindow struct {
	Start string `json:"start" bson:"start" validate:"required"`
	End   string `json:"end" bson:"end" validate:"required"`
}

// Resource is a bookable shared asset (party room, court, barbecue area)
// owned by one or more condominiums. The booking path only ever reads it.
type Resource struct {
	ID                      string                `json:"id,omitempty" bson:"_id,omitempty"`
	Name                    string                `json:"name" bson:"name" validate:"required,min=2,max=100"`
	CondominiumIDs          []string              `json:"condominium_ids" bson:"condominium_ids" validate:"required,min=1"`
	Period                  Period                `json:"period" bson:"period" validate:"required,oneof=daily hourly"`
	Availability            map[string]TimeWindow `json:"availability" bson:"availability" validate:"required,min=1"`
	BookingAdvanceLimitDays int                   `json:"booking_advance_limit_days,omitempty" bson:"booking_advance_limit_days,omitempty" validate:"omitempty,min=1,max=365"`
	CreatedAt               string                `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt               string                `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// ResourceUpdate carries the fields an administrator may change.
type ResourceUpdate struct {
	Name                    string                `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Period                  Period                `json:"period,omitempty" validate:"omitempty,oneof=daily hourly"`
	Availability            map[string]TimeWindow `json:"availability,omitempty" validate:"omitempty,min=1"`
	BookingAdvanceLimitDays *int                  `json:"booking_advance_limit_days,omitempty" validate:"omitempty,min=0,max=365"`
}

// WeeklyWindow looks up the recurring availability for a weekday name
// ("Monday" ... "Sunday"). The second return reports whether the resource
// opens at all on that weekday.
func (r *Resource) WeeklyWindow(weekday string) (TimeWindow, bool) {
	window, ok := r.Availability[weekday]
	return window, ok
}

// Hourly reports whether bookings on this resource need a time slot.
func (r *Resource) Hourly() bool {
	return r.Period == PeriodHourly
}
