package endpoint

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/medirec/clinic-backend/model"
)

func newMedicineRouter(db *gorm.DB) *gin.Engine {
	return newTestRouter(db, func(r *gin.Engine) {
		r.GET("/medicine", ListMedicines)
		r.POST("/medicine", CreateMedicine)
	})
}

func TestCreateMedicineCreatesStockRow(t *testing.T) {
	db := setupEndpointDB(t)
	r := newMedicineRouter(db)

	w := doJSON(t, r, http.MethodPost, "/medicine", createMedicineRequest{
		BrandName: "Panadol",
		SaltName:  "Paracetamol",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Medicine added successfully", decodeResponse(t, w).Message)

	var med model.Medicine
	assert.NoError(t, db.Where("brand_name = ?", "Panadol").First(&med).Error)

	stock := currentStock(t, db, med.ID)
	assert.Zero(t, stock.Stock)
	assert.Zero(t, stock.OutQuantity)
}

func TestListMedicinesKeywordMatchesSaltName(t *testing.T) {
	db := setupEndpointDB(t)
	r := newMedicineRouter(db)
	assert.NoError(t, db.Create(&model.Medicine{BrandName: "Panadol", SaltName: "Paracetamol"}).Error)
	assert.NoError(t, db.Create(&model.Medicine{BrandName: "Amoxil", SaltName: "Amoxicillin"}).Error)

	w := doJSON(t, r, http.MethodGet, "/medicine?keyword=Paraceta", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.([]interface{})
	if assert.True(t, ok) {
		assert.Len(t, data, 1)
	}
}
