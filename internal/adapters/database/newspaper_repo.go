package database

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"
	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
)

// NewspaperRepositoryAdapter implements the NewspaperRepository port using GORM
type NewspaperRepositoryAdapter struct {
	db *gorm.DB
}

// NewNewspaperRepositoryAdapter creates a new newspaper repository adapter
func NewNewspaperRepositoryAdapter(db *gorm.DB) ports.NewspaperRepository {
	return &NewspaperRepositoryAdapter{db: db}
}

// FindAll returns every newspaper, newest first
func (r *NewspaperRepositoryAdapter) FindAll(ctx context.Context) ([]*ports.NewspaperData, error) {
	var models []NewspaperModel
	if err := conn(ctx, r.db).Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list newspapers", err)
	}
	return r.modelsToData(models), nil
}

// FindByID retrieves a newspaper by its ID
func (r *NewspaperRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.NewspaperData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("newspaper ID cannot be zero")
	}

	var model NewspaperModel
	result := conn(ctx, r.db).First(&model, id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("newspaper not found")
		}
		return nil, errors.NewDatabaseError("failed to find newspaper by ID", result.Error)
	}

	return r.modelToData(&model), nil
}

// NameTaken reports whether another newspaper already uses name, ignoring case
func (r *NewspaperRepositoryAdapter) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := conn(ctx, r.db).Model(&NewspaperModel{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.NewDatabaseError("failed to check newspaper name", err)
	}
	return count > 0, nil
}

// Save inserts a new newspaper and sets its ID
func (r *NewspaperRepositoryAdapter) Save(ctx context.Context, paper *ports.NewspaperData) error {
	if paper == nil {
		return errors.NewValidationError("newspaper cannot be nil")
	}

	model := r.dataToModel(paper)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrDuplicateName
		}
		return errors.NewDatabaseError("failed to save newspaper", err)
	}

	paper.ID = model.ID
	paper.CreatedAt = model.CreatedAt
	paper.UpdatedAt = model.UpdatedAt
	return nil
}

// Update writes every column of an existing newspaper
func (r *NewspaperRepositoryAdapter) Update(ctx context.Context, paper *ports.NewspaperData) error {
	if paper == nil {
		return errors.NewValidationError("newspaper cannot be nil")
	}
	if paper.ID == 0 {
		return errors.NewValidationError("newspaper ID cannot be zero for update")
	}

	updatedAt := stampOrNow(r.db, paper.UpdatedAt)
	result := conn(ctx, r.db).Model(&NewspaperModel{ID: paper.ID}).UpdateColumns(map[string]interface{}{
		"name":        paper.Name,
		"publisher":   paper.Publisher,
		"frequency":   paper.Frequency,
		"price":       paper.Price,
		"description": paper.Description,
		"updated_at":  updatedAt,
	})
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errors.ErrNameConflict
		}
		return errors.NewDatabaseError("failed to update newspaper", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("newspaper not found")
	}

	paper.UpdatedAt = updatedAt
	return nil
}

// Delete removes a newspaper. It reports false when no row matched.
func (r *NewspaperRepositoryAdapter) Delete(ctx context.Context, id uint) (bool, error) {
	result := conn(ctx, r.db).Delete(&NewspaperModel{}, id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return false, errors.ErrHasDependentSubscriptions
		}
		return false, errors.NewDatabaseError("failed to delete newspaper", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Search matches keyword case-insensitively against name, publisher and description
func (r *NewspaperRepositoryAdapter) Search(ctx context.Context, keyword string) ([]*ports.NewspaperData, error) {
	pattern := likePattern(keyword)

	var models []NewspaperModel
	result := conn(ctx, r.db).
		Where(containsAny("name", "publisher", "description"), pattern, pattern, pattern).
		Order("created_at DESC, id DESC").
		Find(&models)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to search newspapers", result.Error)
	}
	return r.modelsToData(models), nil
}

// FindByPriceRange returns newspapers priced within [min, max], cheapest first
func (r *NewspaperRepositoryAdapter) FindByPriceRange(ctx context.Context, min, max float64) ([]*ports.NewspaperData, error) {
	var models []NewspaperModel
	result := conn(ctx, r.db).
		Where("price >= ? AND price <= ?", min, max).
		Order("price ASC, id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to filter newspapers by price", result.Error)
	}
	return r.modelsToData(models), nil
}

// FindByPublisher returns newspapers of an exact publisher ordered by name
func (r *NewspaperRepositoryAdapter) FindByPublisher(ctx context.Context, publisher string) ([]*ports.NewspaperData, error) {
	var models []NewspaperModel
	result := conn(ctx, r.db).
		Where("publisher = ?", publisher).
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to filter newspapers by publisher", result.Error)
	}
	return r.modelsToData(models), nil
}

// Count returns the number of newspapers
func (r *NewspaperRepositoryAdapter) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&NewspaperModel{}).Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError("failed to count newspapers", err)
	}
	return count, nil
}

type priceAggregateRow struct {
	AvgPrice float64
	MinPrice float64
	MaxPrice float64
}

// PriceAggregates computes average, minimum and maximum price
func (r *NewspaperRepositoryAdapter) PriceAggregates(ctx context.Context) (ports.PriceAggregates, error) {
	var row priceAggregateRow
	result := conn(ctx, r.db).Model(&NewspaperModel{}).
		Select("COALESCE(AVG(price), 0) AS avg_price, COALESCE(MIN(price), 0) AS min_price, COALESCE(MAX(price), 0) AS max_price").
		Scan(&row)
	if result.Error != nil {
		return ports.PriceAggregates{}, errors.NewDatabaseError("failed to aggregate newspaper prices", result.Error)
	}
	return ports.PriceAggregates{Avg: row.AvgPrice, Min: row.MinPrice, Max: row.MaxPrice}, nil
}

func (r *NewspaperRepositoryAdapter) dataToModel(data *ports.NewspaperData) *NewspaperModel {
	return &NewspaperModel{
		ID:          data.ID,
		Name:        data.Name,
		Publisher:   data.Publisher,
		Frequency:   data.Frequency,
		Price:       data.Price,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func (r *NewspaperRepositoryAdapter) modelToData(model *NewspaperModel) *ports.NewspaperData {
	return &ports.NewspaperData{
		ID:          model.ID,
		Name:        model.Name,
		Publisher:   model.Publisher,
		Frequency:   model.Frequency,
		Price:       model.Price,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func (r *NewspaperRepositoryAdapter) modelsToData(models []NewspaperModel) []*ports.NewspaperData {
	papers := make([]*ports.NewspaperData, len(models))
	for i := range models {
		papers[i] = r.modelToData(&models[i])
	}
	return papers
}
