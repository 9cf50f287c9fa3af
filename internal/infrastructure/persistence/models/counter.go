package models

// CounterModel is the persistence model for per-entity ID counters. Each row
// holds the highest ID assigned for its entity type; the next ID is always
// value+1, read and written under a row lock so IDs stay dense and unique.
type CounterModel struct {
	Name  string `gorm:"type:varchar(50);primaryKey"`
	Value uint64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CounterModel) TableName() string {
	return "application_counters"
}
