package inventory

import (
	"fmt"
	"testing"
	"time"

	"github.com/medirec/clinic-backend/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInventoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_inventory_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(model.AllModels...); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return db
}

// seedMedicine creates a medicine and its stock row.
func seedMedicine(t *testing.T, db *gorm.DB, brand string, stock, out int) model.Medicine {
	t.Helper()
	med := model.Medicine{BrandName: brand}
	assert.NoError(t, db.Create(&med).Error)
	assert.NoError(t, db.Create(&model.Stock{MedicineID: med.ID, Stock: stock, OutQuantity: out}).Error)
	return med
}

// seedPeople creates a patient, a doctor and an attending staff member.
func seedPeople(t *testing.T, db *gorm.DB) (model.Patient, model.Staff, model.Staff) {
	t.Helper()
	patient := model.Patient{Name: "Ada Bell"}
	assert.NoError(t, db.Create(&patient).Error)
	doctor := model.Staff{Name: "Dr. Chen", Email: fmt.Sprintf("chen%d@clinic.test", time.Now().UnixNano()), Role: model.RoleDoctor}
	assert.NoError(t, db.Create(&doctor).Error)
	staff := model.Staff{Name: "Omar Diaz", Email: fmt.Sprintf("diaz%d@clinic.test", time.Now().UnixNano()), Role: model.RoleReception}
	assert.NoError(t, db.Create(&staff).Error)
	return patient, doctor, staff
}

func fetchStock(t *testing.T, db *gorm.DB, medicineID uint) model.Stock {
	t.Helper()
	var stock model.Stock
	assert.NoError(t, db.Where("medicine_id = ?", medicineID).First(&stock).Error)
	return stock
}

func createRequest(patient model.Patient, doctor, staff model.Staff, items ...LineItem) CreateCheckup {
	doctorID := doctor.ID
	return CreateCheckup{
		PatientID:     patient.ID,
		DoctorID:      &doctorID,
		StaffEmail:    staff.Email,
		Date:          time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Diagnosis:     "Acute pharyngitis",
		Symptoms:      "Sore throat, fever",
		Temperature:   38.2,
		BloodPressure: "120/80",
		PulseRate:     88,
		SpO2:          97.5,
		Medicines:     items,
	}
}
