package endpoint

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/medirec/clinic-backend/model"
)

func newStockRouter(db *gorm.DB) *gin.Engine {
	return newTestRouter(db, func(r *gin.Engine) {
		r.GET("/stock", ListStock)
		r.POST("/stock", AddStock)
	})
}

func TestAddStockIncrementsOnHand(t *testing.T) {
	db := setupEndpointDB(t)
	r := newStockRouter(db)
	med := seedMedicineWithStock(t, db, "Panadol", 10, 3)

	w := doJSON(t, r, http.MethodPost, "/stock", addStockRequest{MedicineID: med.ID, Quantity: 50})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Stock updated successfully", decodeResponse(t, w).Message)

	stock := currentStock(t, db, med.ID)
	assert.Equal(t, 60, stock.Stock)
	assert.Equal(t, 3, stock.OutQuantity)
}

func TestAddStockCreatesMissingRow(t *testing.T) {
	db := setupEndpointDB(t)
	r := newStockRouter(db)
	med := model.Medicine{BrandName: "Amoxil"}
	assert.NoError(t, db.Create(&med).Error)

	w := doJSON(t, r, http.MethodPost, "/stock", addStockRequest{MedicineID: med.ID, Quantity: 25})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, currentStock(t, db, med.ID).Stock)
}

func TestAddStockUnknownMedicine(t *testing.T) {
	db := setupEndpointDB(t)
	r := newStockRouter(db)

	w := doJSON(t, r, http.MethodPost, "/stock", addStockRequest{MedicineID: 9999, Quantity: 25})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Medicine does not exist", decodeResponse(t, w).Message)
}

func TestAddStockRejectsNonPositiveQuantity(t *testing.T) {
	db := setupEndpointDB(t)
	r := newStockRouter(db)
	med := seedMedicineWithStock(t, db, "Panadol", 10, 0)

	w := doJSON(t, r, http.MethodPost, "/stock", addStockRequest{MedicineID: med.ID, Quantity: 0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 10, currentStock(t, db, med.ID).Stock)
}

func TestListStockJoinsBrandName(t *testing.T) {
	db := setupEndpointDB(t)
	r := newStockRouter(db)
	seedMedicineWithStock(t, db, "Panadol", 10, 2)

	w := doJSON(t, r, http.MethodGet, "/stock", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.([]interface{})
	if assert.True(t, ok) && assert.Len(t, data, 1) {
		row, ok := data[0].(map[string]interface{})
		if assert.True(t, ok) {
			assert.Equal(t, "Panadol", row["brand_name"])
			assert.Equal(t, float64(10), row["stock"])
			assert.Equal(t, float64(2), row["out_quantity"])
		}
	}
}
