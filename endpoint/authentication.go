package endpoint

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"staff@clinic.example"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginResponse struct {
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Role    string `json:"role" example:"DOCTOR"`
	StaffID uint   `json:"staff_id" example:"1"`
}

const sessionTTL = time.Hour

func createSessionToken(staff model.Staff) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": staff.Email,
		"role":  staff.Role,
		"exp":   time.Now().Add(sessionTTL).Unix(),
	})
	return token.SignedString(util.GetJWTSecretByte())
}

// Login godoc
// @Summary      Staff login
// @Description  Authenticate a staff member and issue a session token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid email or password"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	ip, agent := c.ClientIP(), c.Request.UserAgent()

	var staff model.Staff
	err := db.Where("email = ?", req.Email).First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.LogLoginFailure(req.Email, ip, agent, "staff not found")
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid email or password",
			Err: fmt.Errorf("staff not found"),
		})
		return
	}
	if err != nil {
		util.LogLoginFailure(req.Email, ip, agent, "database error")
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	if !util.VerifyPassword(req.Password, staff.Password) {
		util.LogLoginFailure(req.Email, ip, agent, "invalid password")
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid email or password",
			Err: fmt.Errorf("invalid password"),
		})
		return
	}

	tokenString, err := createSessionToken(staff)
	if err != nil {
		util.LogLoginFailure(req.Email, ip, agent, "token generation failed")
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	session := model.Session{
		StaffID:      staff.ID,
		SessionToken: tokenString,
		ExpiresAt:    time.Now().Add(sessionTTL),
	}
	if err := db.Create(&session).Error; err != nil {
		util.LogLoginFailure(req.Email, ip, agent, "session creation failed")
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to record session", Err: err})
		return
	}

	// Redis caching is best-effort; the session row remains authoritative.
	_ = util.CacheSession(staff.ID, tokenString, session.ExpiresAt)
	util.StaffEmailCacheSet(staff.ID, staff.Email)

	util.LogLoginSuccess(staff.ID, staff.Email, ip, agent)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Login successful",
		Data: LoginResponse{Token: tokenString, Role: staff.Role, StaffID: staff.ID},
	})
}

// Logout godoc
// @Summary      Staff logout
// @Description  Invalidate the presented session token
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Logout successful"
// @Failure      400 {object} util.APIResponse "Session not found"
// @Failure      401 {object} util.APIResponse "Session token not provided"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /logout [delete]
func Logout(c *gin.Context) {
	sessionToken := c.GetHeader("session-token")
	if sessionToken == "" {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Session token not provided",
			Err: fmt.Errorf("session token not provided"),
		})
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var session model.Session
	if err := db.Where("session_token = ?", sessionToken).First(&session).Error; err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Session not found",
			Err: err,
		})
		return
	}

	if err := db.Unscoped().Delete(&session).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to delete session", Err: err})
		return
	}

	_ = util.DropSession(session.StaffID, sessionToken)

	var staff model.Staff
	if err := db.First(&staff, session.StaffID).Error; err == nil {
		util.LogLogout(staff.ID, staff.Email, c.ClientIP(), c.Request.UserAgent())
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Logout successful",
	})
}
