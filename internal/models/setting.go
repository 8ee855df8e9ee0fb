package models

type Setting struct {
	Key   string `gorm:"primaryKey;size:60" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}
