package endpoint

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/medirec/clinic-backend/model"
)

func newPatientRouter(db *gorm.DB) *gin.Engine {
	return newTestRouter(db, func(r *gin.Engine) {
		r.GET("/patient", ListPatients)
		r.POST("/patient", CreatePatient)
	})
}

func TestCreatePatient(t *testing.T) {
	db := setupEndpointDB(t)
	r := newPatientRouter(db)

	w := doJSON(t, r, http.MethodPost, "/patient", createPatientRequest{
		Name:   "Ada Bell",
		Gender: "FEMALE",
		Age:    34,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.OK)
	assert.Equal(t, "Patient added successfully", resp.Message)

	var count int64
	assert.NoError(t, db.Model(&model.Patient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreatePatientRequiresName(t *testing.T) {
	db := setupEndpointDB(t)
	r := newPatientRouter(db)

	w := doJSON(t, r, http.MethodPost, "/patient", createPatientRequest{Age: 20})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decodeResponse(t, w).OK)
}

func TestListPatientsWithKeyword(t *testing.T) {
	db := setupEndpointDB(t)
	r := newPatientRouter(db)
	assert.NoError(t, db.Create(&model.Patient{Name: "Ada Bell"}).Error)
	assert.NoError(t, db.Create(&model.Patient{Name: "Omar Diaz"}).Error)

	w := doJSON(t, r, http.MethodGet, "/patient?keyword=Ada", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	if assert.True(t, ok) {
		assert.Equal(t, float64(1), data["total"])
	}
}
