package models

// Review неизменяем после создания. Stars == nil - отзыв без оценки.
type Review struct {
	BaseModel
	ProfileID string `gorm:"size:36;not null;index" json:"profile_id"`
	AuthorID  string `gorm:"size:36;not null;index" json:"author_id"`
	Author    *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Stars     *int   `json:"stars"`
	// Seq - порядковый номер отзыва внутри профиля, разрешает совпадения created_at
	Seq       int64  `gorm:"not null;default:0;index" json:"-"`
}
