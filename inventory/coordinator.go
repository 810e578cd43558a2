package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
	"gorm.io/gorm"
)

// CreateCheckup is the coordinator's create request.
type CreateCheckup struct {
	PatientID     uint
	DoctorID      *uint
	StaffEmail    string
	Date          time.Time
	Diagnosis     string
	Symptoms      string
	Temperature   float64
	BloodPressure string
	PulseRate     int
	SpO2          float64
	Medicines     []LineItem
}

// Coordinator orchestrates checkup creation and deletion. Every flow runs
// as one database transaction: validation, stock adjustment and row
// persistence either all commit or all roll back, so a persistence failure
// can never orphan an applied stock adjustment, and two concurrent requests
// racing for the last unit of a medicine are serialized by the conditional
// stock update — exactly one wins.
type Coordinator struct {
	db *gorm.DB
}

func NewCoordinator(db *gorm.DB) *Coordinator {
	return &Coordinator{db: db}
}

// Create validates the request, dispenses stock for every line item and
// persists the checkup with its line items, all in one transaction.
func (co *Coordinator) Create(ctx context.Context, req CreateCheckup) (*model.Checkup, error) {
	var created model.Checkup

	err := co.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		staff, err := NewValidator(tx).ValidateCreate(req)
		if err != nil {
			return err
		}

		adjustments := make([]Adjustment, len(req.Medicines))
		for i, item := range req.Medicines {
			adjustments[i] = Adjustment{
				MedicineID: item.MedicineID,
				Quantity:   item.Quantity,
				Direction:  Dispense,
			}
		}
		if err := NewAdjuster(tx).Apply(adjustments); err != nil {
			return err
		}

		lineItems := make([]model.CheckupMedicine, len(req.Medicines))
		for i, item := range req.Medicines {
			lineItems[i] = model.CheckupMedicine{
				MedicineID: item.MedicineID,
				Dosage:     item.Dosage,
				Quantity:   item.Quantity,
			}
		}
		created = model.Checkup{
			PatientID:        req.PatientID,
			DoctorID:         req.DoctorID,
			StaffID:          staff.ID,
			Date:             req.Date,
			Diagnosis:        req.Diagnosis,
			Symptoms:         req.Symptoms,
			Temperature:      req.Temperature,
			BloodPressure:    req.BloodPressure,
			PulseRate:        req.PulseRate,
			SpO2:             req.SpO2,
			CheckupMedicines: lineItems,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	for _, item := range req.Medicines {
		util.LogStockAdjustment(util.EventStockDispensed, created.ID, item.MedicineID, item.Quantity)
	}
	return &created, nil
}

// Delete looks up the checkup, pre-checks every reversal against the
// out_quantity >= 0 invariant, returns stock for all line items and removes
// the checkup with its line items, all in one transaction.
func (co *Coordinator) Delete(ctx context.Context, id uint) error {
	var items []model.CheckupMedicine

	err := co.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var checkup model.Checkup
		if err := tx.First(&checkup, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Prescription Record"}
			}
			return err
		}

		if err := tx.Where("checkup_id = ?", id).Find(&items).Error; err != nil {
			return err
		}

		// Fail-fast pre-check: no stock row is mutated when any item's
		// reversal would violate the invariant.
		if err := NewValidator(tx).ValidateReturns(items); err != nil {
			return err
		}

		adjustments := make([]Adjustment, len(items))
		for i, item := range items {
			adjustments[i] = Adjustment{
				MedicineID: item.MedicineID,
				Quantity:   item.Quantity,
				Direction:  Return,
			}
		}
		if err := NewAdjuster(tx).Apply(adjustments); err != nil {
			return err
		}

		if err := tx.Unscoped().Where("checkup_id = ?", id).Delete(&model.CheckupMedicine{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&checkup).Error
	})
	if err != nil {
		return err
	}

	for _, item := range items {
		util.LogStockAdjustment(util.EventStockReturned, id, item.MedicineID, item.Quantity)
	}
	return nil
}
