package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies what a user can do in the booking flow
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User represents both doctors and patients in a single table.
// Role-specific fields are nullable and enforced at registration time.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"type:varchar(50);not null" json:"name"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`
	Phone    string    `gorm:"type:varchar(30);not null" json:"phone"`
	Role     Role      `gorm:"type:varchar(10);not null;index" json:"role"`

	// Doctor fields
	Specialization string  `gorm:"type:varchar(100)" json:"specialization,omitempty"`
	LicenseNumber  *string `gorm:"type:varchar(50);uniqueIndex" json:"license_number,omitempty"`

	// Patient fields
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Address     string     `gorm:"type:varchar(255)" json:"address,omitempty"`

	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsDoctor checks if the user has the doctor role
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

// IsPatient checks if the user has the patient role
func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}
