package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a clinic patient record. Patients do not log in; they exist
// only as reference data snapshotted into appointments.
type Patient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string     `gorm:"type:varchar(50)" json:"phone"`
	Email     string     `gorm:"type:varchar(255)" json:"email"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}
