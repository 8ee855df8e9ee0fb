package models

import "time"

// Migration é uma linha do ledger: uma vez gravada, a migração nunca
// é reaplicada.
type Migration struct {
	ID        int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	AppliedAt time.Time `json:"applied_at"`
}
