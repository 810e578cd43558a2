package model

import "gorm.io/gorm"

type Patient struct {
	gorm.Model
	Name        string `json:"name" gorm:"type:varchar(191);not null"`
	Gender      string `json:"gender" gorm:"type:varchar(16)"`
	Age         int    `json:"age"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number" gorm:"type:varchar(32)"`
}
