package models

import "time"

// Update is an announcement shown on the public site.
type Update struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  *string   `json:"author_id"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateWithImages is an update plus its images ordered by DisplayOrder.
type UpdateWithImages struct {
	Update
	Images []*Image `json:"images"`
}

// ImagePosition tells the page where to lay an image out relative to the text.
type ImagePosition string

const (
	PositionTop   ImagePosition = "top"
	PositionLeft  ImagePosition = "left"
	PositionRight ImagePosition = "right"
	PositionNone  ImagePosition = "none"
)

func (p ImagePosition) Valid() bool {
	switch p {
	case PositionTop, PositionLeft, PositionRight, PositionNone:
		return true
	}
	return false
}

// Image references an externally hosted picture attached to an update.
type Image struct {
	ID           string        `json:"id"`
	UpdateID     string        `json:"update_id"`
	ImageURL     string        `json:"image_url"`
	AltText      *string       `json:"alt_text"`
	DisplayOrder int           `json:"display_order"`
	IsMain       bool          `json:"is_main"`
	Position     ImagePosition `json:"position"`
	CreatedAt    time.Time     `json:"created_at"`
}
