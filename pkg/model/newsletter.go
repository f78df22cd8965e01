package model

// Newsletter is an announcement posted by the condominium administration.
type Newsletter struct {
	ID            string `json:"id,omitempty" bson:"_id,omitempty"`
	CondominiumID string `json:"condominium_id" bson:"condominium_id" validate:"required"`
	Title         string `json:"title" bson:"title" validate:"required,min=2,max=150"`
	Description   string `json:"description" bson:"description" validate:"required,min=2,max=5000"`
	ImageURL      string `json:"image_url,omitempty" bson:"image_url,omitempty" validate:"omitempty,url"`
	CreatedAt     string `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
