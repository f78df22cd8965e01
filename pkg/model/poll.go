package model

type PollOption struct {
	ID    string `json:"id" bson:"id"`
	Text  string `json:"text" bson:"text" validate:"required,min=1,max=200"`
	Votes int    `json:"votes" bson:"votes"`
}

// Poll is a resident vote. ExpiresAt is an ISO timestamp; a poll past it is
// inactive even if the expiry sweep has not run yet.
type Poll struct {
	ID            string       `json:"id,omitempty" bson:"_id,omitempty"`
	CondominiumID string       `json:"condominium_id" bson:"condominium_id" validate:"required"`
	Title         string       `json:"title" bson:"title" validate:"required,min=2,max=150"`
	Description   string       `json:"description" bson:"description" validate:"omitempty,max=2000"`
	Options       []PollOption `json:"options" bson:"options" validate:"required,min=2,dive"`
	CreatedAt     string       `json:"created_at,omitempty" bson:"created_at,omitempty"`
	ExpiresAt     string       `json:"expires_at" bson:"expires_at" validate:"required"`
	IsActive      bool         `json:"is_active" bson:"is_active"`
}

// PollUpdate carries the fields an administrator may change.
type PollUpdate struct {
	Title       string        `json:"title,omitempty" validate:"omitempty,min=2,max=150"`
	Description string        `json:"description,omitempty" validate:"omitempty,max=2000"`
	Options     *[]PollOption `json:"options,omitempty" validate:"omitempty,min=2,dive"`
	ExpiresAt   string        `json:"expires_at,omitempty"`
	IsActive    *bool         `json:"is_active,omitempty"`
}
