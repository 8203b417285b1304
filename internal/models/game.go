package models

import "gorm.io/datatypes"

type Game struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Event     string          `json:"event"`
	Site      string          `json:"site"`
	Date      *datatypes.Date `json:"date"`
	Round     string          `json:"round"`
	White     string          `gorm:"index" json:"white"`
	Black     string          `gorm:"index" json:"black"`
	Result    Result          `gorm:"type:smallint" json:"result"`
	WhiteElo  int             `gorm:"type:smallint" json:"white_elo"`
	BlackElo  int             `gorm:"type:smallint" json:"black_elo"`
	ECO       string          `gorm:"column:eco;size:10" json:"eco"`
	EventDate *datatypes.Date `json:"event_date"`
}
