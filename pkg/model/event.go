package model

type EventType string

const (
	EventDaily  EventType = "daily"
	EventHourly EventType = "hourly"
)

type EventStatus string

const (
	EventOpen   EventStatus = "open"
	EventClosed EventStatus = "closed"
)

// Event is a single-date exception to the recurring schedule of one or more
// resources. Accepted shapes:
//
//	closed/daily            resource shut for the whole date
//	closed/hourly           resource shut until end_time
//	open/daily              resource open outside its schedule, with its own window
type Event struct {
	ID            string      `json:"id,omitempty" bson:"_id,omitempty"`
	CondominiumID string      `json:"condominium_id" bson:"condominium_id" validate:"required"`
	ResourceIDs   []string    `json:"resource_ids" bson:"resource_ids" validate:"required,min=1"`
	Type          EventType   `json:"type" bson:"type" validate:"required,oneof=daily hourly"`
	Status        EventStatus `json:"status" bson:"status" validate:"required,oneof=open closed"`
	Date          string      `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string      `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime       string      `json:"end_time,omitempty" bson:"end_time,omitempty"`
	CreatedAt     string      `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt     string      `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// NeedsTimes reports whether this event shape requires both start_time and
// end_time to be present.
func (e *Event) NeedsTimes() bool {
	return e.Type == EventHourly || (e.Status == EventOpen && e.Type == EventDaily)
}
