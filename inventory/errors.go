// Package inventory implements the checkup inventory coordinator: the
// validation gates, stock adjustment protocol and lifecycle orchestration
// for checkup creation and deletion.
package inventory

import "fmt"

// Direction is the sign of a stock adjustment.
type Direction int

const (
	// Dispense decrements on-hand stock and increments the cumulative
	// dispensed quantity. Applied on checkup creation.
	Dispense Direction = iota
	// Return is the inverse of Dispense. Applied on checkup deletion.
	Return
)

func (d Direction) String() string {
	if d == Return {
		return "RETURN"
	}
	return "DISPENSE"
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	if d == Dispense {
		return Return
	}
	return Dispense
}

// NotFoundError reports a missing referenced entity. Item is the 1-based
// line item index for stock lookups, 0 for whole-request references.
type NotFoundError struct {
	Entity     string
	MedicineID uint
	Item       int
}

func (e *NotFoundError) Error() string {
	if e.Item > 0 {
		return fmt.Sprintf("Stock record not found for medicine with ID %d in ITEM %d", e.MedicineID, e.Item)
	}
	return fmt.Sprintf("%s does not exist", e.Entity)
}

// InvalidInputError reports an invalid line item quantity.
type InvalidInputError struct {
	MedicineID uint
	Item       int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("Quantity should be greater than 0 for medicine with ID %d in ITEM %d", e.MedicineID, e.Item)
}

// InsufficientStockError reports that on-hand stock cannot cover the
// requested quantity.
type InsufficientStockError struct {
	MedicineID uint
	Item       int
}

func (e *InsufficientStockError) Error() string {
	if e.Item > 0 {
		return fmt.Sprintf("Stock not sufficient for medicine with ID %d in ITEM %d", e.MedicineID, e.Item)
	}
	return fmt.Sprintf("Stock not sufficient for medicine with ID %d", e.MedicineID)
}

// StockUpdateFailedError reports an adjustment that did not match exactly
// one stock row. Already-applied adjustments were reversed.
type StockUpdateFailedError struct {
	MedicineID uint
}

func (e *StockUpdateFailedError) Error() string {
	return fmt.Sprintf("Failed to update stock for medicine with ID %d", e.MedicineID)
}

// RollbackFailedError reports a failed compensation: the stock table is now
// partially adjusted and requires manual reconciliation. Terminal and
// operator-visible; never retried automatically.
type RollbackFailedError struct {
	MedicineID uint
	Operation  Direction
}

func (e *RollbackFailedError) Error() string {
	return fmt.Sprintf("Failed to rollback %s stock update for medicine with ID %d; stock is partially adjusted and must be reconciled manually", e.Operation, e.MedicineID)
}

// InvalidReturnError reports a checkup deletion whose reversal would drive
// a stock's cumulative dispensed quantity below zero.
type InvalidReturnError struct {
	MedicineID uint
	Item       int
}

func (e *InvalidReturnError) Error() string {
	return fmt.Sprintf("Cannot update stock for medicine item %d on deleting the prescription", e.Item)
}
