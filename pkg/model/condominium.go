package model

// Condominium is the tenant record. Its id is the identity provider's uid
// for the administrator account, so the profile is written with an upsert
// rather than a generated id.
type Condominium struct {
	ID      string `json:"id,omitempty" bson:"_id,omitempty"`
	Name    string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" bson:"email" validate:"required,email"`
	Address string `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=200"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,max=30"`
}
