package endpoint

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medirec/clinic-backend/inventory"
	"github.com/medirec/clinic-backend/middleware"
	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
)

// CheckupMedicineRequest is one prescription line item in a create request.
type CheckupMedicineRequest struct {
	MedicineID uint   `json:"medicineId" binding:"required" example:"1"`
	Dosage     string `json:"dosage" example:"1x500mg daily"`
	Quantity   int    `json:"quantity" example:"4"`
}

// CreateCheckupRequest is the POST /checkup body.
type CreateCheckupRequest struct {
	PatientID        uint                     `json:"patientId" binding:"required" example:"1"`
	DoctorID         *uint                    `json:"doctorId" example:"2"`
	StaffEmail       string                   `json:"staffEmail" example:"reception@clinic.example"`
	Date             string                   `json:"date" binding:"required" example:"2024-03-15"`
	Diagnosis        string                   `json:"diagnosis" example:"Acute pharyngitis"`
	Symptoms         string                   `json:"symptoms" example:"Sore throat, fever"`
	Temperature      float64                  `json:"temperature" example:"38.2"`
	BloodPressure    string                   `json:"bloodPressure" example:"120/80"`
	PulseRate        int                      `json:"pulseRate" example:"88"`
	SpO2             float64                  `json:"spO2" example:"97.5"`
	CheckupMedicines []CheckupMedicineRequest `json:"checkupMedicines"`
}

// checkupRow is the joined row scanned by the list and detail queries.
type checkupRow struct {
	ID            uint
	PatientName   string
	DoctorName    *string
	StaffName     string
	Date          time.Time
	Diagnosis     string
	Symptoms      string
	Temperature   float64
	BloodPressure string
	PulseRate     int
	SpO2          float64
}

func checkupBaseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("checkups").
		Select(`checkups.id AS id,
			patients.name AS patient_name,
			doctors.name AS doctor_name,
			staffs.name AS staff_name,
			checkups.date AS date,
			checkups.diagnosis AS diagnosis,
			checkups.symptoms AS symptoms,
			checkups.temperature AS temperature,
			checkups.blood_pressure AS blood_pressure,
			checkups.pulse_rate AS pulse_rate,
			checkups.sp_o2 AS sp_o2`).
		Joins("JOIN patients ON patients.id = checkups.patient_id").
		Joins("JOIN staffs ON staffs.id = checkups.staff_id").
		Joins("LEFT JOIN staffs AS doctors ON doctors.id = checkups.doctor_id").
		Where("checkups.deleted_at IS NULL")
}

func doctorNameOrEmpty(name *string) string {
	if name == nil {
		return ""
	}
	return *name
}

// respondCheckupError maps the inventory error taxonomy onto HTTP statuses:
// missing references are 404, validation failures 400, a reversal that would
// drive out_quantity negative 401, and update or rollback failures 500.
func respondCheckupError(c *gin.Context, err error) {
	var (
		notFound     *inventory.NotFoundError
		invalidInput *inventory.InvalidInputError
		insufficient *inventory.InsufficientStockError
		invalidRet   *inventory.InvalidReturnError
		updateFailed *inventory.StockUpdateFailedError
		rollbackErr  *inventory.RollbackFailedError
	)
	switch {
	case errors.As(err, &notFound):
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: notFound.Error(), Err: err})
	case errors.As(err, &invalidInput):
		util.CallUserError(c, util.APIErrorParams{Msg: invalidInput.Error(), Err: err})
	case errors.As(err, &insufficient):
		util.CallUserError(c, util.APIErrorParams{Msg: insufficient.Error(), Err: err})
	case errors.As(err, &invalidRet):
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: invalidRet.Error(), Err: err})
	case errors.As(err, &updateFailed):
		util.CallServerError(c, util.APIErrorParams{Msg: updateFailed.Error(), Err: err})
	case errors.As(err, &rollbackErr):
		util.CallServerError(c, util.APIErrorParams{Msg: rollbackErr.Error(), Err: err})
	default:
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to process prescription", Err: err})
	}
}

// GetCheckupDetails godoc
// @Summary      Get prescription details
// @Description  Retrieve a checkup with joined patient, doctor, staff and medicine names
// @Tags         Checkup
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Checkup ID"
// @Success      200 {object} util.APIResponse{data=model.CheckupDetail} "Prescription Details retrieved successfully"
// @Failure      404 {object} util.APIResponse "Prescription does not exist"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /checkup/{id} [get]
func GetCheckupDetails(c *gin.Context) {
	id, ok := parseIDParamOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var row checkupRow
	err := checkupBaseQuery(db).Where("checkups.id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Prescription does not exist",
			Err: err,
		})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve prescription", Err: err})
		return
	}

	var lineItems []model.CheckupMedicineDetail
	err = db.Table("checkup_medicines").
		Select(`checkup_medicines.id AS id,
			medicines.brand_name AS brand_name,
			checkup_medicines.dosage AS dosage,
			checkup_medicines.quantity AS quantity`).
		Joins("JOIN medicines ON medicines.id = checkup_medicines.medicine_id").
		Where("checkup_medicines.checkup_id = ? AND checkup_medicines.deleted_at IS NULL", id).
		Order("checkup_medicines.id ASC").
		Find(&lineItems).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve prescription items", Err: err})
		return
	}

	detail := model.CheckupDetail{
		ID:               row.ID,
		PatientName:      row.PatientName,
		DoctorName:       doctorNameOrEmpty(row.DoctorName),
		StaffName:        row.StaffName,
		Date:             row.Date.Format("2006-01-02"),
		Diagnosis:        row.Diagnosis,
		Symptoms:         row.Symptoms,
		Temperature:      row.Temperature,
		BloodPressure:    row.BloodPressure,
		PulseRate:        row.PulseRate,
		SpO2:             row.SpO2,
		CheckupMedicines: lineItems,
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Prescription Details retrieved successfully",
		Data: detail,
	})
}

// ListCheckups godoc
// @Summary      List prescriptions
// @Description  Retrieve all checkups with joined patient, doctor and staff names
// @Tags         Checkup
// @Produce      json
// @Security     SessionToken
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200 {object} util.APIResponse{data=[]model.CheckupListItem} "Prescription List retrieved successfully"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /checkup [get]
func ListCheckups(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	limit, offset := parseListQuery(c)

	var rows []checkupRow
	err := checkupBaseQuery(db).
		Order("checkups.id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve prescription list", Err: err})
		return
	}

	items := make([]model.CheckupListItem, len(rows))
	for i, row := range rows {
		items[i] = model.CheckupListItem{
			ID:          row.ID,
			PatientName: row.PatientName,
			DoctorName:  doctorNameOrEmpty(row.DoctorName),
			StaffName:   row.StaffName,
			Date:        row.Date.Format("2006-01-02"),
			Diagnosis:   row.Diagnosis,
			Symptoms:    row.Symptoms,
		}
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Prescription List retrieved successfully",
		Data: items,
	})
}

// CreateCheckup godoc
// @Summary      Create prescription
// @Description  Record a checkup and dispense stock for every line item in one transaction
// @Tags         Checkup
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body CreateCheckupRequest true "Checkup details"
// @Success      200 {object} util.APIResponse{data=model.Checkup} "Prescription added successfully"
// @Failure      400 {object} util.APIResponse "Invalid payload or insufficient stock"
// @Failure      404 {object} util.APIResponse "Referenced record not found"
// @Failure      500 {object} util.APIResponse "Stock update or rollback failure"
// @Router       /checkup [post]
func CreateCheckup(c *gin.Context) {
	var req CreateCheckupRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Date must be in YYYY-MM-DD format",
			Err: err,
		})
		return
	}

	// The original client sends the logged-in staff email in the body; fall
	// back to the authenticated session when it is omitted.
	staffEmail := req.StaffEmail
	if staffEmail == "" {
		staffEmail, _ = middleware.GetStaffEmail(c)
	}
	if staffEmail == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Staff email is required",
			Err: fmt.Errorf("staffEmail missing from payload and session"),
		})
		return
	}

	medicines := make([]inventory.LineItem, len(req.CheckupMedicines))
	for i, m := range req.CheckupMedicines {
		medicines[i] = inventory.LineItem{
			MedicineID: m.MedicineID,
			Dosage:     m.Dosage,
			Quantity:   m.Quantity,
		}
	}

	created, err := inventory.NewCoordinator(db).Create(c.Request.Context(), inventory.CreateCheckup{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		StaffEmail:    staffEmail,
		Date:          date,
		Diagnosis:     req.Diagnosis,
		Symptoms:      req.Symptoms,
		Temperature:   req.Temperature,
		BloodPressure: req.BloodPressure,
		PulseRate:     req.PulseRate,
		SpO2:          req.SpO2,
		Medicines:     medicines,
	})
	if err != nil {
		respondCheckupError(c, err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Prescription added successfully",
		Data: created,
	})
}

// DeleteCheckup godoc
// @Summary      Delete prescription
// @Description  Return dispensed stock and remove the checkup with its line items in one transaction
// @Tags         Checkup
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Checkup ID"
// @Success      200 {object} util.APIResponse "Prescription Record deleted successfully"
// @Failure      401 {object} util.APIResponse "Reversal would drive dispensed quantity negative"
// @Failure      404 {object} util.APIResponse "Prescription Record does not exist"
// @Failure      500 {object} util.APIResponse "Stock update or rollback failure"
// @Router       /checkup/{id} [delete]
func DeleteCheckup(c *gin.Context) {
	id, ok := parseIDParamOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if err := inventory.NewCoordinator(db).Delete(c.Request.Context(), id); err != nil {
		respondCheckupError(c, err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Prescription Record deleted successfully",
	})
}
