package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vahanbazar/vahanbazar-backend/pkg/db/models"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

// Repository exposes catalog reads and the stock decrement used by settlement.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindVehicle(ctx context.Context, vehicleType enums.VehicleType, id uuid.UUID) (*models.Vehicle, error)
	DecrementStock(ctx context.Context, id uuid.UUID) (bool, error)
	CurrentStock(ctx context.Context, id uuid.UUID) (int, enums.StockStatus, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindVehicle(ctx context.Context, vehicleType enums.VehicleType, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		Where("id = ? AND vehicle_type = ?", id, vehicleType).
		First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// DecrementStock takes one unit and rebuckets the stock status in the same
// statement. The stock_quantity > 0 guard means a depleted vehicle is left
// untouched; the caller sees that as decremented=false.
func (r *repository) DecrementStock(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE vehicles
		SET stock_quantity = stock_quantity - 1,
			stock_status = CASE
				WHEN stock_quantity - 1 <= 0 THEN 'OUT_OF_STOCK'
				WHEN stock_quantity - 1 <= 5 THEN 'LIMITED_STOCK'
				ELSE 'IN_STOCK'
			END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock_quantity > 0
	`, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CurrentStock(ctx context.Context, id uuid.UUID) (int, enums.StockStatus, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		Select("stock_quantity", "stock_status").
		Where("id = ?", id).
		First(&vehicle).Error
	if err != nil {
		return 0, "", err
	}
	return vehicle.StockQuantity, vehicle.StockStatus, nil
}
