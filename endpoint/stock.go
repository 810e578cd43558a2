package endpoint

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
)

type addStockRequest struct {
	MedicineID uint `json:"medicine_id" binding:"required" example:"1"`
	Quantity   int  `json:"quantity" example:"50"`
}

// stockListRow is the stock list response row, joined with the medicine name.
type stockListRow struct {
	ID          uint   `json:"id"`
	MedicineID  uint   `json:"medicine_id"`
	BrandName   string `json:"brand_name"`
	Stock       int    `json:"stock"`
	OutQuantity int    `json:"out_quantity"`
}

// ListStock godoc
// @Summary      List stock levels
// @Tags         Stock
// @Produce      json
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200 {object} util.APIResponse{data=[]stockListRow} "Stock list retrieved successfully"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /stock [get]
func ListStock(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	limit, offset := parseListQuery(c)

	var rows []stockListRow
	err := db.Table("stocks").
		Select(`stocks.id AS id,
			stocks.medicine_id AS medicine_id,
			medicines.brand_name AS brand_name,
			stocks.stock AS stock,
			stocks.out_quantity AS out_quantity`).
		Joins("JOIN medicines ON medicines.id = stocks.medicine_id").
		Where("stocks.deleted_at IS NULL").
		Order("medicines.brand_name ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch stock list", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Stock list retrieved successfully",
		Data: rows,
	})
}

// AddStock godoc
// @Summary      Record inbound stock
// @Description  Increment on-hand stock for a medicine, creating the stock row when absent
// @Tags         Stock
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body addStockRequest true "Inbound quantity"
// @Success      200 {object} util.APIResponse{data=model.Stock} "Stock updated successfully"
// @Failure      400 {object} util.APIResponse "Invalid quantity"
// @Failure      404 {object} util.APIResponse "Medicine does not exist"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /stock [post]
func AddStock(c *gin.Context) {
	var req addStockRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	if req.Quantity < 1 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Quantity should be greater than 0",
			Err: fmt.Errorf("quantity %d is not positive", req.Quantity),
		})
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var updated model.Stock
	err := db.Transaction(func(tx *gorm.DB) error {
		var medicine model.Medicine
		if err := tx.First(&medicine, req.MedicineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return err
		}

		res := tx.Model(&model.Stock{}).
			Where("medicine_id = ?", req.MedicineID).
			Update("stock", gorm.Expr("stock + ?", req.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			stock := model.Stock{MedicineID: req.MedicineID, Stock: req.Quantity}
			if err := tx.Create(&stock).Error; err != nil {
				return err
			}
			updated = stock
			return nil
		}
		return tx.Where("medicine_id = ?", req.MedicineID).First(&updated).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Medicine does not exist",
			Err: err,
		})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update stock", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Stock updated successfully",
		Data: updated,
	})
}
