package enum

import (
	"encoding/json"
	"fmt"
)

// PaymentMethod is how a sale was settled
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodPOS      PaymentMethod = "POS"
)

// PaymentMethods lists every method in display order
var PaymentMethods = []PaymentMethod{PaymentMethodCash, PaymentMethodTransfer, PaymentMethodPOS}

func (m PaymentMethod) String() string {
	return string(m)
}

// Label returns the human readable name printed on receipts
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodTransfer:
		return "Bank Transfer"
	case PaymentMethodPOS:
		return "POS Terminal"
	default:
		return string(m)
	}
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodPOS:
		return true
	}
	return false
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v := PaymentMethod(str)
	if str != "" && !v.IsValid() {
		return fmt.Errorf("invalid payment method %q", str)
	}
	*m = v
	return nil
}
