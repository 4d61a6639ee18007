package enum

import (
	"encoding/json"
	"fmt"
)

// DiscountType says how a sale's discount value is interpreted
type DiscountType string

const (
	DiscountTypeAmount     DiscountType = "AMOUNT"
	DiscountTypePercentage DiscountType = "PERCENTAGE"
)

func (t DiscountType) String() string {
	return string(t)
}

// IsValid reports whether t is a known discount type
func (t DiscountType) IsValid() bool {
	return t == DiscountTypeAmount || t == DiscountTypePercentage
}

// OrDefault returns AMOUNT for an empty value
func (t DiscountType) OrDefault() DiscountType {
	if t == "" {
		return DiscountTypeAmount
	}
	return t
}

func (t *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v := DiscountType(str)
	if str != "" && !v.IsValid() {
		return fmt.Errorf("invalid discount type %q", str)
	}
	*t = v
	return nil
}
