package repository

import (
	"context"
	"errors"
	"time"

	"prepaid-card-backend/internal/apperr"
	"prepaid-card-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.PrepaidCardPurchase) (string, error)
	FindByID(ctx context.Context, purchaseID string) (*model.PrepaidCardPurchase, error)
	// MarkPaid moves a pending purchase to paid. It reports false when the purchase
	// was already paid with the same reference.
	MarkPaid(ctx context.Context, purchaseID string, provider model.PaymentProvider, reference string) (bool, error)
}

type purchaseRepoImpl struct {
	db *gorm.DB
}

// NewPurchaseRepository accepts a nil db; every call then fails with STORAGE_UNAVAILABLE.
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepoImpl{
		db: db,
	}
}

func (r *purchaseRepoImpl) Create(ctx context.Context, purchase *model.PrepaidCardPurchase) (string, error) {
	if r.db == nil {
		return "", errNotInitialized()
	}
	if purchase.TotalPrice != purchase.CardPrice+purchase.AmountSelected {
		return "", apperr.New(apperr.CodeValidation, "total price must equal card price plus top-up")
	}

	now := time.Now().UTC()
	purchase.ID = uuid.NewString()
	purchase.PaymentStatus = model.PaymentStatusPending
	purchase.PaymentReference = nil
	purchase.CreatedAt = now
	purchase.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(purchase).Error; err != nil {
		return "", apperr.Wrap(apperr.CodeStorageUnavailable, err, "insert purchase")
	}
	return purchase.ID, nil
}

func (r *purchaseRepoImpl) FindByID(ctx context.Context, purchaseID string) (*model.PrepaidCardPurchase, error) {
	if r.db == nil {
		return nil, errNotInitialized()
	}

	var purchase model.PrepaidCardPurchase
	err := r.db.WithContext(ctx).
		Where("id = ?", purchaseID).
		First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.CodeNotFound, err, "purchase not found")
		}
		return nil, apperr.Wrap(apperr.CodeStorageUnavailable, err, "load purchase")
	}

	return &purchase, nil
}

func (r *purchaseRepoImpl) MarkPaid(ctx context.Context, purchaseID string, provider model.PaymentProvider, reference string) (bool, error) {
	if r.db == nil {
		return false, errNotInitialized()
	}

	result := r.db.WithContext(ctx).Model(&model.PrepaidCardPurchase{}).
		Where("id = ? AND payment_status = ?", purchaseID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status":    model.PaymentStatusPaid,
			"payment_provider":  provider,
			"payment_reference": reference,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return false, apperr.Wrap(apperr.CodeStorageUnavailable, result.Error, "mark purchase paid")
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	existing, err := r.FindByID(ctx, purchaseID)
	if err != nil {
		return false, err
	}
	if existing.PaymentStatus == model.PaymentStatusPaid {
		if existing.PaymentReference != nil && *existing.PaymentReference == reference {
			return false, nil
		}
		return false, apperr.New(apperr.CodeStateConflict, "purchase already paid with a different reference")
	}
	return false, apperr.New(apperr.CodeStateConflict, "purchase is "+string(existing.PaymentStatus))
}

// ErrDatabaseNotInitialized is the cause carried by every STORAGE_UNAVAILABLE
// error returned while the process runs without a database.
var ErrDatabaseNotInitialized = errors.New("database not initialized")

func errNotInitialized() error {
	return apperr.Wrap(apperr.CodeStorageUnavailable, ErrDatabaseNotInitialized, "database not initialized")
}
