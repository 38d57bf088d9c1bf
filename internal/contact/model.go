package contact

import "time"

// Contact is an entry in a user's private address book.
type Contact struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateInput captures the fields of a new contact.
type CreateInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required,min=10,max=20"`
}

// UpdateInput is a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

func (in UpdateInput) empty() bool {
	return in.FirstName == nil && in.LastName == nil && in.Phone == nil
}
