package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod is the channel a purchaser selects at checkout. EMI is a
// selection-only method: financed orders are charged through CARD rails, so
// EMI never appears as a charged method on a payment row.
type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "UPI"
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodEMI  PaymentMethod = "EMI"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodUPI,
	PaymentMethodCard,
	PaymentMethodCash,
	PaymentMethodEMI,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ChargedVia returns the rail the method is actually billed through.
func (p PaymentMethod) ChargedVia() PaymentMethod {
	if p == PaymentMethodEMI {
		return PaymentMethodCard
	}
	return p
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validPaymentMethods {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
