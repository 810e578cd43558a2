package model

import "gorm.io/gorm"

// Staff roles. A doctor is a staff member whose Role is RoleDoctor.
const (
	RoleAdmin      = "ADMIN"
	RoleDoctor     = "DOCTOR"
	RoleNurse      = "NURSE"
	RolePharmacist = "PHARMACIST"
	RoleReception  = "RECEPTIONIST"
)

type Staff struct {
	gorm.Model
	Name        string `json:"name" gorm:"type:varchar(191);not null"`
	Email       string `json:"email" gorm:"type:varchar(191);uniqueIndex;not null"`
	Role        string `json:"role" gorm:"type:varchar(32);index;not null"`
	Password    string `json:"-" gorm:"type:varchar(128)"`
	PhoneNumber string `json:"phone_number" gorm:"type:varchar(32)"`
}

// ValidRole reports whether role is one of the recognized staff roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDoctor, RoleNurse, RolePharmacist, RoleReception:
		return true
	}
	return false
}
