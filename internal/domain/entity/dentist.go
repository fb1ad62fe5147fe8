package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dentist links a DENTIST-role user to their professional record.
type Dentist struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	LicenseNumber  string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"commission_rate"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Specialties []Specialty `gorm:"many2many:dentist_specialties" json:"specialties,omitempty"`
}

func (Dentist) TableName() string {
	return "dentists"
}

// DisplayName is the dentist's resolved human name. Always populated from
// the owning user record so callers never reach through two shapes.
func (d *Dentist) DisplayName() string {
	return d.User.FullName
}
