package model

import "gorm.io/gorm"

// Stock tracks the pharmacy inventory for a single medicine.
// MedicineID carries a unique index so the medicine/stock relation is a
// genuine 1:1 — lookups never depend on "first matching" semantics.
// Stock is the on-hand quantity, OutQuantity the cumulative dispensed
// quantity; both must stay >= 0 after every adjustment.
type Stock struct {
	gorm.Model
	MedicineID  uint `json:"medicine_id" gorm:"uniqueIndex;not null"`
	Stock       int  `json:"stock" gorm:"not null;default:0"`
	OutQuantity int  `json:"out_quantity" gorm:"not null;default:0"`
}
