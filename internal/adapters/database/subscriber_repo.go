package database

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"
	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
)

// SubscriberRepositoryAdapter implements the SubscriberRepository port using GORM
type SubscriberRepositoryAdapter struct {
	db *gorm.DB
}

// NewSubscriberRepositoryAdapter creates a new subscriber repository adapter
func NewSubscriberRepositoryAdapter(db *gorm.DB) ports.SubscriberRepository {
	return &SubscriberRepositoryAdapter{db: db}
}

// FindAll returns every subscriber, newest first
func (r *SubscriberRepositoryAdapter) FindAll(ctx context.Context) ([]*ports.SubscriberData, error) {
	var models []SubscriberModel
	if err := conn(ctx, r.db).Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list subscribers", err)
	}
	return r.modelsToData(models), nil
}

// FindByID retrieves a subscriber by its ID
func (r *SubscriberRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.SubscriberData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("subscriber ID cannot be zero")
	}

	var model SubscriberModel
	result := conn(ctx, r.db).First(&model, id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("subscriber not found")
		}
		return nil, errors.NewDatabaseError("failed to find subscriber by ID", result.Error)
	}

	return r.modelToData(&model), nil
}

// EmailTaken reports whether another subscriber already uses email,
// ignoring case
func (r *SubscriberRepositoryAdapter) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	query := conn(ctx, r.db).Model(&SubscriberModel{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.NewDatabaseError("failed to check subscriber email", err)
	}
	return count > 0, nil
}

// Save inserts a new subscriber and sets its ID
func (r *SubscriberRepositoryAdapter) Save(ctx context.Context, sub *ports.SubscriberData) error {
	if sub == nil {
		return errors.NewValidationError("subscriber cannot be nil")
	}

	model := r.dataToModel(sub)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrDuplicateEmail
		}
		return errors.NewDatabaseError("failed to save subscriber", err)
	}

	sub.ID = model.ID
	sub.CreatedAt = model.CreatedAt
	sub.UpdatedAt = model.UpdatedAt
	return nil
}

// Update writes every column of an existing subscriber. updated_at is
// taken from sub so that the caller's clock decides it.
func (r *SubscriberRepositoryAdapter) Update(ctx context.Context, sub *ports.SubscriberData) error {
	if sub == nil {
		return errors.NewValidationError("subscriber cannot be nil")
	}
	if sub.ID == 0 {
		return errors.NewValidationError("subscriber ID cannot be zero for update")
	}

	updatedAt := stampOrNow(r.db, sub.UpdatedAt)
	result := conn(ctx, r.db).Model(&SubscriberModel{ID: sub.ID}).UpdateColumns(map[string]interface{}{
		"name":       sub.Name,
		"email":      sub.Email,
		"phone":      sub.Phone,
		"address":    sub.Address,
		"updated_at": updatedAt,
	})
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errors.ErrEmailConflict
		}
		return errors.NewDatabaseError("failed to update subscriber", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("subscriber not found")
	}

	sub.UpdatedAt = updatedAt
	return nil
}

// Delete removes a subscriber. It reports false when no row matched.
func (r *SubscriberRepositoryAdapter) Delete(ctx context.Context, id uint) (bool, error) {
	result := conn(ctx, r.db).Delete(&SubscriberModel{}, id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return false, errors.ErrHasDependentSubscriptions
		}
		return false, errors.NewDatabaseError("failed to delete subscriber", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Search matches keyword case-insensitively against name, email and phone
func (r *SubscriberRepositoryAdapter) Search(ctx context.Context, keyword string) ([]*ports.SubscriberData, error) {
	pattern := likePattern(keyword)

	var models []SubscriberModel
	result := conn(ctx, r.db).
		Where(containsAny("name", "email", "phone"), pattern, pattern, pattern).
		Order("created_at DESC, id DESC").
		Find(&models)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to search subscribers", result.Error)
	}
	return r.modelsToData(models), nil
}

// Count returns the number of subscribers
func (r *SubscriberRepositoryAdapter) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&SubscriberModel{}).Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError("failed to count subscribers", err)
	}
	return count, nil
}

// CountCreatedSince counts subscribers created at or after since
func (r *SubscriberRepositoryAdapter) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&SubscriberModel{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError("failed to count recent subscribers", err)
	}
	return count, nil
}

func (r *SubscriberRepositoryAdapter) dataToModel(data *ports.SubscriberData) *SubscriberModel {
	return &SubscriberModel{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Address:   data.Address,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func (r *SubscriberRepositoryAdapter) modelToData(model *SubscriberModel) *ports.SubscriberData {
	return &ports.SubscriberData{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Phone:     model.Phone,
		Address:   model.Address,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (r *SubscriberRepositoryAdapter) modelsToData(models []SubscriberModel) []*ports.SubscriberData {
	subscribers := make([]*ports.SubscriberData, len(models))
	for i := range models {
		subscribers[i] = r.modelToData(&models[i])
	}
	return subscribers
}
