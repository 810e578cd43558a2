package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
)

type createPatientRequest struct {
	Name        string `json:"name" binding:"required" example:"Jane Roe"`
	Gender      string `json:"gender" example:"FEMALE"`
	Age         int    `json:"age" example:"34"`
	Address     string `json:"address" example:"12 Clinic Street"`
	PhoneNumber string `json:"phone_number" example:"+628123456789"`
}

// ListPatients godoc
// @Summary      List patients
// @Tags         Patient
// @Produce      json
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Param        keyword query string false "Filter by name substring"
// @Success      200 {object} util.APIResponse{data=[]model.Patient} "Patient list retrieved successfully"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient [get]
func ListPatients(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	limit, offset := parseListQuery(c)

	query := db.Model(&model.Patient{}).Order("created_at DESC")
	if keyword := c.Query("keyword"); keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to count patients", Err: err})
		return
	}

	var patients []model.Patient
	if err := query.Limit(limit).Offset(offset).Find(&patients).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch patients", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient list retrieved successfully",
		Data: map[string]interface{}{"total": total, "patients": patients},
	})
}

// CreatePatient godoc
// @Summary      Register a patient
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body createPatientRequest true "Patient details"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient added successfully"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient [post]
func CreatePatient(c *gin.Context) {
	var req createPatientRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patient := model.Patient{
		Name:        req.Name,
		Gender:      req.Gender,
		Age:         req.Age,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
	if err := db.Create(&patient).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create patient", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient added successfully",
		Data: patient,
	})
}
