package enums

import "fmt"

// StockStatus is the human-facing availability label derived from the raw
// stock quantity.
type StockStatus string

const (
	StockStatusInStock      StockStatus = "IN_STOCK"
	StockStatusLimitedStock StockStatus = "LIMITED_STOCK"
	StockStatusOutOfStock   StockStatus = "OUT_OF_STOCK"
)

const limitedStockThreshold = 5

var validStockStatuses = []StockStatus{
	StockStatusInStock,
	StockStatusLimitedStock,
	StockStatusOutOfStock,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// BucketStock maps a raw quantity onto its availability label.
func BucketStock(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockStatusOutOfStock
	case quantity <= limitedStockThreshold:
		return StockStatusLimitedStock
	default:
		return StockStatusInStock
	}
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
