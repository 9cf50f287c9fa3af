package persistence

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propflow/backend/internal/infrastructure/persistence/models"
)

// nextID allocates the next sequential ID for the named counter. The counter
// row is locked for the duration of the enclosing transaction, so concurrent
// creates serialize here and IDs come out dense and unique.
func nextID(tx *gorm.DB, name string) (uint64, error) {
	var counter models.CounterModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Migrations seed the counter rows; tolerate a missing one anyway
		counter = models.CounterModel{Name: name, Value: 0}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	counter.Value++
	if err := tx.Model(&models.CounterModel{}).
		Where("name = ?", name).
		Update("value", counter.Value).Error; err != nil {
		return 0, err
	}

	return counter.Value, nil
}

// counterValue reads the current counter value, which equals the highest
// assigned ID for the entity type. A missing row means nothing was created yet.
func counterValue(db *gorm.DB, name string) (uint64, error) {
	var counter models.CounterModel
	err := db.First(&counter, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}
