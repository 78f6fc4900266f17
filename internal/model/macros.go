package model

// MacronutrientEntry is one nutrient measurement at the 100 g reference quantity.
type MacronutrientEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// MacronutrientRecord is the persisted form of a MacronutrientEntry.
type MacronutrientRecord struct {
	ID                 uint    `gorm:"primaryKey" json:"-"`
	IngredientRecordID uint    `gorm:"not null;index" json:"-"`
	Position           int     `gorm:"not null" json:"-"`
	Name               string  `gorm:"size:100;not null" json:"name"`
	Value              float64 `gorm:"type:float" json:"value"`
	Unit               string  `gorm:"size:20" json:"unit"`
}

func (MacronutrientRecord) TableName() string {
	return "macronutrients"
}
