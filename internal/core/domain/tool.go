package domain

import "time"

// Tool is a catalogue item.
type Tool struct {
	ID                string    `json:"_id,omitempty"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Image             string    `json:"image"`
	Price             float64   `json:"price"`
	MinimumOrder      int       `json:"minimum_order"`
	AvailableQuantity int       `json:"available_quantity"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToolUpdate carries a partial update; nil fields are not written.
type ToolUpdate struct {
	Name              *string
	Description       *string
	Image             *string
	Price             *float64
	MinimumOrder      *int
	AvailableQuantity *int
}

// Empty reports whether the update would change nothing.
func (u ToolUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Image == nil &&
		u.Price == nil && u.MinimumOrder == nil && u.AvailableQuantity == nil
}
