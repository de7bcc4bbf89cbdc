package types

// Category is a node of the hierarchical category tree. Leaves (rows with a
// parent) are the only valid primary categories for an event; the ingestion
// core reads this table, it never writes it.
type Category struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Description string  `gorm:"column:description;type:text" json:"description"`
	Color       string  `gorm:"column:color" json:"color"`
	Icon        *string `gorm:"column:icon" json:"icon,omitempty"`

	ParentID *string   `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Parent   *Category `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentID;references:ID" json:"parent,omitempty"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) IsLeaf() bool { return c != nil && c.ParentID != nil }
