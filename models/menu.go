package models

import (
	"encoding/json"
	"time"
)

// OptionChoice is one selectable choice inside an option group.
// Price is a delta added on top of the item base price.
type OptionChoice struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OptionGroup is a named group of choices (e.g. "Size" -> Small/Large).
type OptionGroup struct {
	Name    string         `json:"name"`
	Choices []OptionChoice `json:"choices"`
}

type MenuItem struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(100);not null;index" json:"category"`
	Image       string    `gorm:"type:varchar(255)" json:"image"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	Popular     bool      `gorm:"not null;default:false" json:"popular"`
	Options     string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// SetOptionGroups serializes option groups into the Options column.
func (m *MenuItem) SetOptionGroups(groups []OptionGroup) error {
	if groups == nil {
		groups = []OptionGroup{}
	}
	data, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	m.Options = string(data)
	return nil
}

// GetOptionGroups deserializes the Options column; a broken or empty
// column yields no groups.
func (m *MenuItem) GetOptionGroups() []OptionGroup {
	if m.Options == "" {
		return []OptionGroup{}
	}
	var groups []OptionGroup
	if err := json.Unmarshal([]byte(m.Options), &groups); err != nil {
		return []OptionGroup{}
	}
	return groups
}

// MarshalJSON inlines the decoded option groups so API clients never see
// the raw Options column.
func (m MenuItem) MarshalJSON() ([]byte, error) {
	type alias MenuItem
	return json.Marshal(struct {
		alias
		OptionGroups []OptionGroup `json:"options"`
	}{
		alias:        alias(m),
		OptionGroups: m.GetOptionGroups(),
	})
}
