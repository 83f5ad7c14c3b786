package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ServiceTier - вариант членства у креатора. Набор заменяется целиком.
type ServiceTier struct {
	BaseModel
	ProfileID   string          `gorm:"size:36;not null;index" json:"profile_id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	Benefits    datatypes.JSON  `json:"benefits"`
	Position    int             `gorm:"not null;default:0" json:"position"`
}

func (t *ServiceTier) GetBenefits() []string {
	var benefits []string
	if len(t.Benefits) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(t.Benefits, &benefits); err != nil || benefits == nil {
		return []string{}
	}
	return benefits
}

func (t *ServiceTier) SetBenefits(benefits []string) error {
	if benefits == nil {
		benefits = []string{}
	}
	data, err := json.Marshal(benefits)
	if err != nil {
		return err
	}
	t.Benefits = datatypes.JSON(data)
	return nil
}
