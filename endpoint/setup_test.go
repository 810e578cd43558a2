package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/medirec/clinic-backend/middleware"
	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("APPENV", "test")
	util.SetJWTSecret("endpoint-test-secret")
	os.Exit(m.Run())
}

func setupEndpointDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_endpoint_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(model.AllModels...); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return db
}

// newTestRouter wires the handlers under test behind the database middleware,
// the same shape main.go uses minus auth.
func newTestRouter(db *gorm.DB, register func(r *gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	register(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) util.APIResponse {
	t.Helper()
	var resp util.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func seedMedicineWithStock(t *testing.T, db *gorm.DB, brand string, stock, out int) model.Medicine {
	t.Helper()
	med := model.Medicine{BrandName: brand}
	assert.NoError(t, db.Create(&med).Error)
	assert.NoError(t, db.Create(&model.Stock{MedicineID: med.ID, Stock: stock, OutQuantity: out}).Error)
	return med
}

func seedClinicPeople(t *testing.T, db *gorm.DB) (model.Patient, model.Staff, model.Staff) {
	t.Helper()
	patient := model.Patient{Name: "Ada Bell"}
	assert.NoError(t, db.Create(&patient).Error)
	doctor := model.Staff{Name: "Dr. Chen", Email: fmt.Sprintf("chen%d@clinic.test", time.Now().UnixNano()), Role: model.RoleDoctor}
	assert.NoError(t, db.Create(&doctor).Error)
	staff := model.Staff{Name: "Omar Diaz", Email: fmt.Sprintf("diaz%d@clinic.test", time.Now().UnixNano()), Role: model.RoleReception}
	assert.NoError(t, db.Create(&staff).Error)
	return patient, doctor, staff
}

func currentStock(t *testing.T, db *gorm.DB, medicineID uint) model.Stock {
	t.Helper()
	var stock model.Stock
	assert.NoError(t, db.Where("medicine_id = ?", medicineID).First(&stock).Error)
	return stock
}
