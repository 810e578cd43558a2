package endpoint

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
)

type createMedicineRequest struct {
	BrandName string `json:"brand_name" binding:"required" example:"Panadol"`
	SaltName  string `json:"salt_name" example:"Paracetamol"`
}

// ListMedicines godoc
// @Summary      List medicines
// @Tags         Medicine
// @Produce      json
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Param        keyword query string false "Filter by brand or salt name substring"
// @Success      200 {object} util.APIResponse{data=[]model.Medicine} "Medicine list retrieved successfully"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /medicine [get]
func ListMedicines(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	limit, offset := parseListQuery(c)

	query := db.Model(&model.Medicine{}).Order("brand_name ASC")
	if keyword := c.Query("keyword"); keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("brand_name LIKE ? OR salt_name LIKE ?", pattern, pattern)
	}

	var medicines []model.Medicine
	if err := query.Limit(limit).Offset(offset).Find(&medicines).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch medicines", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Medicine list retrieved successfully",
		Data: medicines,
	})
}

// CreateMedicine godoc
// @Summary      Register a medicine
// @Description  Create a medicine together with its zeroed stock record
// @Tags         Medicine
// @Accept       json
// @Produce      json
// @Param        request body createMedicineRequest true "Medicine details"
// @Success      200 {object} util.APIResponse{data=model.Medicine} "Medicine added successfully"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /medicine [post]
func CreateMedicine(c *gin.Context) {
	var req createMedicineRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	medicine := model.Medicine{BrandName: req.BrandName, SaltName: req.SaltName}
	// The stock row is created together with the medicine so the 1:1
	// medicine/stock relation holds from the moment the medicine exists.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&medicine).Error; err != nil {
			return err
		}
		return tx.Create(&model.Stock{MedicineID: medicine.ID}).Error
	})
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create medicine", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Medicine added successfully",
		Data: medicine,
	})
}
