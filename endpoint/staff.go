package endpoint

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
)

type updateStaffPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8" example:"newpassword456"`
}

type createStaffRequest struct {
	Name        string `json:"name" binding:"required" example:"Dr. Alan Grant"`
	Email       string `json:"email" binding:"required,email" example:"alan@clinic.example"`
	Role        string `json:"role" binding:"required" example:"DOCTOR"`
	Password    string `json:"password" binding:"required,min=8" example:"password123"`
	PhoneNumber string `json:"phone_number" example:"+628123456789"`
}

// ListStaff godoc
// @Summary      List staff members
// @Tags         Staff
// @Produce      json
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Param        role query string false "Filter by role, e.g. DOCTOR"
// @Success      200 {object} util.APIResponse{data=[]model.Staff} "Staff list retrieved successfully"
// @Failure      400 {object} util.APIResponse "Unknown role filter"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /staff [get]
func ListStaff(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	limit, offset := parseListQuery(c)

	query := db.Model(&model.Staff{}).Order("name ASC")
	if role := c.Query("role"); role != "" {
		if !model.ValidRole(role) {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Unknown role filter",
				Err: fmt.Errorf("role %q is not recognized", role),
			})
			return
		}
		query = query.Where("role = ?", role)
	}

	var staff []model.Staff
	if err := query.Limit(limit).Offset(offset).Find(&staff).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch staff", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Staff list retrieved successfully",
		Data: staff,
	})
}

// CreateStaff godoc
// @Summary      Register a staff member
// @Tags         Staff
// @Accept       json
// @Produce      json
// @Param        request body createStaffRequest true "Staff details"
// @Success      200 {object} util.APIResponse{data=model.Staff} "Staff added successfully"
// @Failure      400 {object} util.APIResponse "Invalid payload, unknown role or email already registered"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /staff [post]
func CreateStaff(c *gin.Context) {
	var req createStaffRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if !model.ValidRole(req.Role) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Unknown staff role",
			Err: fmt.Errorf("role %q is not recognized", req.Role),
		})
		return
	}

	var existing model.Staff
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Email already registered",
			Err: fmt.Errorf("staff with email %s already exists", req.Email),
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	staff := model.Staff{
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		Password:    util.HashPassword(req.Password),
		PhoneNumber: req.PhoneNumber,
	}
	if err := db.Create(&staff).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create staff", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Staff added successfully",
		Data: staff,
	})
}

// UpdateStaffPassword godoc
// @Summary      Change a staff member's password
// @Description  Rehash the password and revoke every active session for the staff member
// @Tags         Staff
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Staff ID"
// @Param        request body updateStaffPasswordRequest true "New password"
// @Success      200 {object} util.APIResponse "Password updated successfully"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      404 {object} util.APIResponse "Staff does not exist"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /staff/{id}/password [patch]
func UpdateStaffPassword(c *gin.Context) {
	id, ok := parseIDParamOrRespond(c)
	if !ok {
		return
	}
	var req updateStaffPasswordRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var staff model.Staff
	if err := db.First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{
				Msg: "Staff does not exist",
				Err: err,
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve staff", Err: err})
		return
	}

	staff.Password = util.HashPassword(req.Password)
	if err := db.Save(&staff).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update password", Err: err})
		return
	}

	// Revoke sessions issued under the old credentials, both the DB rows
	// and the Redis cache entries.
	if err := db.Unscoped().Where("staff_id = ?", staff.ID).Delete(&model.Session{}).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to revoke sessions", Err: err})
		return
	}
	_ = util.InvalidateStaffSessions(staff.ID)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Password updated successfully",
	})
}
