package enum

import (
	"encoding/json"
	"fmt"
)

// StockMovementType classifies a stock log entry
type StockMovementType string

const (
	StockMovementIn         StockMovementType = "IN"
	StockMovementOut        StockMovementType = "OUT"
	StockMovementAdjustment StockMovementType = "ADJUSTMENT"
)

func (t StockMovementType) String() string {
	return string(t)
}

func (t StockMovementType) IsValid() bool {
	switch t {
	case StockMovementIn, StockMovementOut, StockMovementAdjustment:
		return true
	}
	return false
}

func (t *StockMovementType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v := StockMovementType(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid stock movement type %q", str)
	}
	*t = v
	return nil
}
