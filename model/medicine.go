package model

import "gorm.io/gorm"

type Medicine struct {
	gorm.Model
	BrandName string `json:"brand_name" gorm:"type:varchar(191);not null"`
	SaltName  string `json:"salt_name" gorm:"type:varchar(191)"`
}
