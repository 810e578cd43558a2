package inventory

import (
	"errors"

	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
	"gorm.io/gorm"
)

// Adjustment is one signed stock delta for a single medicine.
type Adjustment struct {
	MedicineID uint
	Quantity   int
	Direction  Direction
}

// Adjuster applies a sequence of stock adjustments one medicine at a time.
// Each adjustment is an atomic conditional update guarded by the invariant
// it must preserve (stock >= qty for dispense, out_quantity >= qty for
// return) and is only accepted when exactly one row matched. When an
// adjustment fails partway through a sequence, the already-applied prefix
// is compensated in its original order.
//
// The adjuster deliberately carries no request context: once deltas have
// been applied, compensation must run to completion even if the request
// that started it was cancelled.
type Adjuster struct {
	db *gorm.DB
}

func NewAdjuster(db *gorm.DB) *Adjuster {
	return &Adjuster{db: db}
}

// Apply applies the adjustments sequentially. On failure at item k it
// reverses items 0..k-1 and returns the original failure; if a reversal
// itself fails it returns RollbackFailedError instead, which callers must
// treat as a data-integrity incident.
func (a *Adjuster) Apply(adjustments []Adjustment) error {
	applied := make([]Adjustment, 0, len(adjustments))
	for _, adj := range adjustments {
		if err := a.applyOne(adj); err != nil {
			if rbErr := a.compensate(applied); rbErr != nil {
				return rbErr
			}
			return err
		}
		applied = append(applied, adj)
	}
	return nil
}

// applyOne issues the conditional update for one adjustment and classifies
// a zero-row match by re-reading the stock row: a present-but-short row is
// an insufficiency, anything else a failed update.
func (a *Adjuster) applyOne(adj Adjustment) error {
	var res *gorm.DB
	switch adj.Direction {
	case Return:
		res = a.db.Model(&model.Stock{}).
			Where("medicine_id = ? AND out_quantity >= ?", adj.MedicineID, adj.Quantity).
			Updates(map[string]interface{}{
				"stock":        gorm.Expr("stock + ?", adj.Quantity),
				"out_quantity": gorm.Expr("out_quantity - ?", adj.Quantity),
			})
	default:
		res = a.db.Model(&model.Stock{}).
			Where("medicine_id = ? AND stock >= ?", adj.MedicineID, adj.Quantity).
			Updates(map[string]interface{}{
				"stock":        gorm.Expr("stock - ?", adj.Quantity),
				"out_quantity": gorm.Expr("out_quantity + ?", adj.Quantity),
			})
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	if res.RowsAffected > 1 {
		// More than one stock row per medicine: the 1:1 relation is broken.
		return &StockUpdateFailedError{MedicineID: adj.MedicineID}
	}
	return a.classifyZeroMatch(adj)
}

func (a *Adjuster) classifyZeroMatch(adj Adjustment) error {
	var stock model.Stock
	err := a.db.Where("medicine_id = ?", adj.MedicineID).First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &StockUpdateFailedError{MedicineID: adj.MedicineID}
		}
		return err
	}
	switch adj.Direction {
	case Return:
		if stock.OutQuantity < adj.Quantity {
			return &InvalidReturnError{MedicineID: adj.MedicineID}
		}
	default:
		if stock.Stock < adj.Quantity {
			return &InsufficientStockError{MedicineID: adj.MedicineID}
		}
	}
	return &StockUpdateFailedError{MedicineID: adj.MedicineID}
}

// compensate reverses already-applied adjustments in the order they were
// applied. The applied slice is the adjustment log: rollback is driven by
// that data, not by re-deriving which items succeeded.
func (a *Adjuster) compensate(applied []Adjustment) error {
	for _, adj := range applied {
		inverse := Adjustment{
			MedicineID: adj.MedicineID,
			Quantity:   adj.Quantity,
			Direction:  adj.Direction.Inverse(),
		}
		if err := a.applyOne(inverse); err != nil {
			util.LogRollbackFailure(adj.MedicineID, adj.Direction.String(), err.Error())
			return &RollbackFailedError{MedicineID: adj.MedicineID, Operation: adj.Direction}
		}
		util.LogAuditEvent(util.AuditEvent{
			EventType: util.EventStockRollback,
			Message:   "Reversed stock adjustment after downstream failure",
			Details: map[string]interface{}{
				"medicine_id": adj.MedicineID,
				"quantity":    adj.Quantity,
				"operation":   adj.Direction.String(),
			},
		})
	}
	return nil
}
