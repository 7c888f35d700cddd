package models

// DocumentSequence backs the daily-reset document number generator.
// One row per prefix per day; LastNumber is the last sequence handed out.
type DocumentSequence struct {
	ID         uint   `gorm:"primaryKey"`
	Prefix     string `gorm:"uniqueIndex:idx_seq_prefix_date"`
	Date       string `gorm:"uniqueIndex:idx_seq_prefix_date"` // YYYYMMDD
	LastNumber int    `gorm:"default:0"`
}
