package repository

import (
	"context"
	"time"

	"github.com/lshigami/qbank/internal/model"
	"gorm.io/gorm"
)

type HistoryFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

type HistoryRepository interface {
	Create(ctx context.Context, history *model.History) error
	FindByIDWithDetails(ctx context.Context, id uint) (*model.History, error)
	List(ctx context.Context, filter HistoryFilter, sort Sort, page Page) ([]model.History, int64, error)
	FindByUserSince(ctx context.Context, userID string, since time.Time) ([]model.History, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func orderDetails(db *gorm.DB) *gorm.DB {
	return db.Order("history_details.position ASC")
}

// Create inserts the attempt and its details atomically.
func (r *historyRepository) Create(ctx context.Context, history *model.History) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(history).Error
	})
}

func (r *historyRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.History, error) {
	var history model.History
	err := r.db.WithContext(ctx).Preload("Details", orderDetails).First(&history, id).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *historyRepository) filtered(ctx context.Context, filter HistoryFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.History{}).Where("user_id = ?", filter.UserID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	return query
}

func (r *historyRepository) List(ctx context.Context, filter HistoryFilter, sort Sort, page Page) ([]model.History, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := sort.Field
	if sort.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var histories []model.History
	err := r.filtered(ctx, filter).
		Preload("Details", orderDetails).
		Order(order).
		Order("id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&histories).Error
	if err != nil {
		return nil, 0, err
	}
	return histories, total, nil
}

// FindByUserSince returns the user's attempts dated at or after since, oldest
// first. Details are not loaded.
func (r *historyRepository) FindByUserSince(ctx context.Context, userID string, since time.Time) ([]model.History, error) {
	var histories []model.History
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Order("id ASC").
		Find(&histories).Error
	return histories, err
}

func (r *historyRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("history_id = ?", id).Delete(&model.HistoryDetail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.History{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}
