package inventory

import (
	"testing"

	"github.com/medirec/clinic-backend/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateCreatePatientMissing(t *testing.T) {
	db := setupInventoryDB(t)
	_, doctor, staff := seedPeople(t, db)

	req := createRequest(model.Patient{}, doctor, staff)
	req.PatientID = 9999

	_, err := NewValidator(db).ValidateCreate(req)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "Patient", nf.Entity)
}

func TestValidateCreateDoctorMustHaveDoctorRole(t *testing.T) {
	db := setupInventoryDB(t)
	patient, _, staff := seedPeople(t, db)

	// The attending staff member is not a doctor; referencing them as the
	// doctor must fail even though the id exists.
	req := createRequest(patient, staff, staff)

	_, err := NewValidator(db).ValidateCreate(req)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "Doctor", nf.Entity)
}

func TestValidateCreateDoctorOptional(t *testing.T) {
	db := setupInventoryDB(t)
	patient, _, staff := seedPeople(t, db)

	req := createRequest(patient, model.Staff{}, staff)
	req.DoctorID = nil

	got, err := NewValidator(db).ValidateCreate(req)
	assert.NoError(t, err)
	assert.Equal(t, staff.ID, got.ID)
}

func TestValidateCreateStaffMissing(t *testing.T) {
	db := setupInventoryDB(t)
	patient, doctor, _ := seedPeople(t, db)

	req := createRequest(patient, doctor, model.Staff{Email: "ghost@clinic.test"})

	_, err := NewValidator(db).ValidateCreate(req)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "Logged in Staff", nf.Entity)
}

func TestValidateCreateZeroQuantity(t *testing.T) {
	db := setupInventoryDB(t)
	patient, doctor, staff := seedPeople(t, db)
	med := seedMedicine(t, db, "Cetirizine 10", 20, 0)

	req := createRequest(patient, doctor, staff, LineItem{MedicineID: med.ID, Quantity: 0})

	_, err := NewValidator(db).ValidateCreate(req)
	var ii *InvalidInputError
	assert.ErrorAs(t, err, &ii)
	assert.Equal(t, 1, ii.Item)
	assert.Equal(t, med.ID, ii.MedicineID)
}

func TestValidateCreateMissingStockRecord(t *testing.T) {
	db := setupInventoryDB(t)
	patient, doctor, staff := seedPeople(t, db)

	med := model.Medicine{BrandName: "No Stock Syrup"}
	assert.NoError(t, db.Create(&med).Error)

	req := createRequest(patient, doctor, staff, LineItem{MedicineID: med.ID, Quantity: 1})

	_, err := NewValidator(db).ValidateCreate(req)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "Stock", nf.Entity)
	assert.Equal(t, 1, nf.Item)
}

func TestValidateCreateInsufficientStock(t *testing.T) {
	db := setupInventoryDB(t)
	patient, doctor, staff := seedPeople(t, db)
	med := seedMedicine(t, db, "Azithromycin 500", 3, 0)

	req := createRequest(patient, doctor, staff, LineItem{MedicineID: med.ID, Quantity: 5})

	_, err := NewValidator(db).ValidateCreate(req)
	var is *InsufficientStockError
	assert.ErrorAs(t, err, &is)
	assert.Equal(t, med.ID, is.MedicineID)
}

func TestValidateCreateIsReadOnly(t *testing.T) {
	db := setupInventoryDB(t)
	patient, doctor, staff := seedPeople(t, db)
	ok := seedMedicine(t, db, "Vitamin D3", 10, 2)
	short := seedMedicine(t, db, "Insulin Pen", 1, 0)

	req := createRequest(patient, doctor, staff,
		LineItem{MedicineID: ok.ID, Quantity: 4},
		LineItem{MedicineID: short.ID, Quantity: 3},
	)

	_, err := NewValidator(db).ValidateCreate(req)
	assert.Error(t, err)

	// Validation is a pure read pass: no stock row moved.
	assert.Equal(t, 10, fetchStock(t, db, ok.ID).Stock)
	assert.Equal(t, 2, fetchStock(t, db, ok.ID).OutQuantity)
	assert.Equal(t, 1, fetchStock(t, db, short.ID).Stock)
}

func TestValidateReturnsBelowZero(t *testing.T) {
	db := setupInventoryDB(t)
	med := seedMedicine(t, db, "Codeine 30", 10, 2)

	items := []model.CheckupMedicine{{MedicineID: med.ID, Quantity: 5}}

	err := NewValidator(db).ValidateReturns(items)
	var ir *InvalidReturnError
	assert.ErrorAs(t, err, &ir)
	assert.Equal(t, 1, ir.Item)
}

func TestValidateReturnsOK(t *testing.T) {
	db := setupInventoryDB(t)
	med := seedMedicine(t, db, "Codeine 30", 10, 6)

	items := []model.CheckupMedicine{{MedicineID: med.ID, Quantity: 5}}
	assert.NoError(t, NewValidator(db).ValidateReturns(items))
}
