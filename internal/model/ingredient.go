package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// ImageID is an opaque reference to an ingredient image. The raw JSON scalar
// from the dataset is kept so numbers stay numbers and strings stay strings.
type ImageID json.RawMessage

// MarshalJSON implements json.Marshaler
func (i ImageID) MarshalJSON() ([]byte, error) {
	if len(i) == 0 {
		return []byte("null"), nil
	}
	return []byte(i), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (i *ImageID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*i = nil
		return nil
	}
	*i = append((*i)[0:0], data...)
	return nil
}

// IsZero reports whether the ingredient has no image reference.
func (i ImageID) IsZero() bool {
	return len(i) == 0 || string(i) == "null"
}

// String returns the reference without JSON quoting.
func (i ImageID) String() string {
	if i.IsZero() {
		return ""
	}
	var s string
	if err := json.Unmarshal(i, &s); err == nil {
		return s
	}
	return string(i)
}

// Value implements the driver.Valuer interface
func (i ImageID) Value() (driver.Value, error) {
	if i.IsZero() {
		return nil, nil
	}
	return string(i), nil
}

// Scan implements the sql.Scanner interface
func (i *ImageID) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*i = nil
	case []byte:
		*i = append(ImageID(nil), v...)
	case string:
		*i = ImageID(v)
	default:
		return fmt.Errorf("cannot scan %T into ImageID", value)
	}
	return nil
}

// Ingredient is a food item with its macronutrients per 100 g.
type Ingredient struct {
	ID             int                  `json:"id"`
	Name           string               `json:"name"`
	ImageID        ImageID              `json:"imageId"`
	Macronutrients []MacronutrientEntry `json:"macronutrients"`
}

// Clone returns a deep copy so callers cannot reach shared slices.
func (ing Ingredient) Clone() Ingredient {
	out := ing
	out.ImageID = slices.Clone(ing.ImageID)
	out.Macronutrients = slices.Clone(ing.Macronutrients)
	return out
}

// IngredientRecord is the persisted form of an Ingredient. IngredientID is not
// unique at the storage level; Position keeps the dataset order so lookups can
// resolve duplicates to the first record.
type IngredientRecord struct {
	ID             uint                  `gorm:"primaryKey" json:"-"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	IngredientID   int                   `gorm:"not null;index" json:"id"`
	Position       int                   `gorm:"not null;index" json:"-"`
	Name           string                `gorm:"size:255;not null" json:"name"`
	ImageID        ImageID               `gorm:"type:text" json:"imageId"`
	Macronutrients []MacronutrientRecord `gorm:"foreignKey:IngredientRecordID;constraint:OnDelete:CASCADE" json:"macronutrients"`
}

func (IngredientRecord) TableName() string {
	return "ingredients"
}

// NewIngredientRecord converts an Ingredient into its storage form.
func NewIngredientRecord(position int, ing Ingredient) IngredientRecord {
	rec := IngredientRecord{
		IngredientID:   ing.ID,
		Position:       position,
		Name:           ing.Name,
		ImageID:        append(ImageID(nil), ing.ImageID...),
		Macronutrients: make([]MacronutrientRecord, len(ing.Macronutrients)),
	}
	for i, m := range ing.Macronutrients {
		rec.Macronutrients[i] = MacronutrientRecord{
			Position: i,
			Name:     m.Name,
			Value:    m.Value,
			Unit:     m.Unit,
		}
	}
	return rec
}

// ToIngredient converts the record back into the domain type. Macronutrients
// must already be ordered by Position.
func (r IngredientRecord) ToIngredient() Ingredient {
	ing := Ingredient{
		ID:             r.IngredientID,
		Name:           r.Name,
		ImageID:        r.ImageID,
		Macronutrients: make([]MacronutrientEntry, len(r.Macronutrients)),
	}
	for i, m := range r.Macronutrients {
		ing.Macronutrients[i] = MacronutrientEntry{Name: m.Name, Value: m.Value, Unit: m.Unit}
	}
	return ing
}
