package repositories

import (
	"errors"
	"fmt"
	"time"

	"warehouse-app/models"

	"gorm.io/gorm"
)

const (
	OrderPrefix     = "ORD"
	ReceivingPrefix = "RCV"
)

type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db}
}

// NextDocumentNumber hands out the next number for a prefix in the form
// PREFIX-YYYYMMDD-NNNNN. The sequence resets each day; the backing row is
// keyed on (prefix, date). Callers pass their transaction so the number
// is only consumed when the document commits.
func (r *SequenceRepository) NextDocumentNumber(prefix string) (string, error) {
	today := time.Now().Format("20060102")

	var seq models.DocumentSequence
	err := r.db.Where("prefix = ? AND date = ?", prefix, today).First(&seq).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		seq = models.DocumentSequence{Prefix: prefix, Date: today}
	}

	seq.LastNumber++
	if err := r.db.Save(&seq).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%05d", prefix, today, seq.LastNumber), nil
}
