package models

// Category groups products for browsing.
type Category struct {
	BaseModel
	Name        string    `gorm:"uniqueIndex" json:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Image       string    `json:"image,omitempty"`
	Products    []Product `json:"products,omitempty"`
}
