package model

import (
	"time"

	"gorm.io/gorm"
)

// Checkup is a recorded clinical visit: diagnosis, vitals, and the set of
// dispensed medicines. The CheckupMedicine rows are owned exclusively by
// their parent checkup and are created and deleted together with it.
type Checkup struct {
	gorm.Model
	PatientID        uint              `json:"patient_id" gorm:"index;not null"`
	DoctorID         *uint             `json:"doctor_id" gorm:"index"`
	StaffID          uint              `json:"staff_id" gorm:"index;not null"`
	Date             time.Time         `json:"date" gorm:"not null"`
	Diagnosis        string            `json:"diagnosis" gorm:"type:text"`
	Symptoms         string            `json:"symptoms" gorm:"type:text"`
	Temperature      float64           `json:"temperature"`
	BloodPressure    string            `json:"blood_pressure" gorm:"type:varchar(16)"`
	PulseRate        int               `json:"pulse_rate"`
	SpO2             float64           `json:"sp_o2"`
	CheckupMedicines []CheckupMedicine `json:"checkup_medicines"`
}

// CheckupMedicine is one prescription line item on a checkup.
type CheckupMedicine struct {
	gorm.Model
	CheckupID  uint   `json:"checkup_id" gorm:"index;not null"`
	MedicineID uint   `json:"medicine_id" gorm:"index;not null"`
	Dosage     string `json:"dosage" gorm:"type:varchar(64)"`
	Quantity   int    `json:"quantity" gorm:"not null"`
}

// CheckupListItem is the joined row shape returned by the checkup list endpoint.
type CheckupListItem struct {
	ID          uint   `json:"id" gorm:"column:id"`
	PatientName string `json:"patientName" gorm:"column:patient_name"`
	DoctorName  string `json:"doctorName" gorm:"column:doctor_name"`
	StaffName   string `json:"staffName" gorm:"column:staff_name"`
	Date        string `json:"date" gorm:"column:date"`
	Diagnosis   string `json:"diagnosis" gorm:"column:diagnosis"`
	Symptoms    string `json:"symptoms" gorm:"column:symptoms"`
}

// CheckupMedicineDetail is one line item in the checkup detail response,
// joined with the medicine's brand name.
type CheckupMedicineDetail struct {
	ID        uint   `json:"id" gorm:"column:id"`
	BrandName string `json:"brandName" gorm:"column:brand_name"`
	Dosage    string `json:"dosage" gorm:"column:dosage"`
	Quantity  int    `json:"quantity" gorm:"column:quantity"`
}

// CheckupDetail is the full detail response for a single checkup.
type CheckupDetail struct {
	ID               uint                    `json:"id"`
	PatientName      string                  `json:"patientName"`
	DoctorName       string                  `json:"doctorName"`
	StaffName        string                  `json:"staffName"`
	Date             string                  `json:"date"`
	Diagnosis        string                  `json:"diagnosis"`
	Symptoms         string                  `json:"symptoms"`
	Temperature      float64                 `json:"temperature"`
	BloodPressure    string                  `json:"bloodPressure"`
	PulseRate        int                     `json:"pulseRate"`
	SpO2             float64                 `json:"spO2"`
	CheckupMedicines []CheckupMedicineDetail `json:"checkupMedicines"`
}
