package domain

import "time"

// Persona is a judge profile: a human-like reviewer identity used to score
// one content variant. Personas are read-only to the experiment engine.
type Persona struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Profile   string    `gorm:"column:profile;not null" json:"profile"`
	Active    bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
