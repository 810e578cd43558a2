package inventory

import (
	"errors"

	"github.com/medirec/clinic-backend/model"
	"gorm.io/gorm"
)

// LineItem is one requested prescription line.
type LineItem struct {
	MedicineID uint
	Dosage     string
	Quantity   int
}

// Validator runs the pre-mutation gates for checkup creation. It is a pure
// read pass: nothing it does touches a stock row.
type Validator struct {
	db *gorm.DB
}

func NewValidator(db *gorm.DB) *Validator {
	return &Validator{db: db}
}

// ValidateCreate checks every referenced entity and line item and returns
// the attending staff record on success. Line items are checked in order,
// each to completion, with 1-based indexes preserved for error messages.
func (v *Validator) ValidateCreate(req CreateCheckup) (*model.Staff, error) {
	var patient model.Patient
	if err := v.db.First(&patient, req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Patient"}
		}
		return nil, err
	}

	if req.DoctorID != nil {
		var doctor model.Staff
		err := v.db.Where("id = ? AND role = ?", *req.DoctorID, model.RoleDoctor).First(&doctor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Entity: "Doctor"}
			}
			return nil, err
		}
	}

	var staff model.Staff
	if err := v.db.Where("email = ?", req.StaffEmail).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Logged in Staff"}
		}
		return nil, err
	}

	for idx, item := range req.Medicines {
		if item.Quantity < 1 {
			return nil, &InvalidInputError{MedicineID: item.MedicineID, Item: idx + 1}
		}

		var stock model.Stock
		err := v.db.Where("medicine_id = ?", item.MedicineID).First(&stock).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Entity: "Stock", MedicineID: item.MedicineID, Item: idx + 1}
			}
			return nil, err
		}
		if stock.Stock < item.Quantity {
			return nil, &InsufficientStockError{MedicineID: item.MedicineID, Item: idx + 1}
		}
	}

	return &staff, nil
}

// ValidateReturns pre-checks a deletion's reversals: every item must keep
// the stock's cumulative dispensed quantity at or above zero. Fail-fast and
// side-effect free, so a rejected deletion mutates nothing.
func (v *Validator) ValidateReturns(items []model.CheckupMedicine) error {
	for idx, item := range items {
		var stock model.Stock
		err := v.db.Where("medicine_id = ?", item.MedicineID).First(&stock).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Stock", MedicineID: item.MedicineID, Item: idx + 1}
			}
			return err
		}
		if stock.OutQuantity-item.Quantity < 0 {
			return &InvalidReturnError{MedicineID: item.MedicineID, Item: idx + 1}
		}
	}
	return nil
}
