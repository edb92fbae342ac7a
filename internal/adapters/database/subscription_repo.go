package database

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"
	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
)

const joinedSubscriptionColumns = "s.id, s.subscriber_id, s.newspaper_id, s.start_date, s.end_date, s.status, s.created_at, s.updated_at, " +
	"sub.name AS subscriber_name, sub.email AS subscriber_email, " +
	"n.name AS newspaper_name, n.publisher AS publisher, n.price AS price"

// subscriptionRow is the shape of a subscription read joined with its
// subscriber and newspaper
type subscriptionRow struct {
	ID              uint
	SubscriberID    uint
	NewspaperID     uint
	StartDate       time.Time
	EndDate         time.Time
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	SubscriberName  string
	SubscriberEmail string
	NewspaperName   string
	Publisher       string
	Price           float64
}

// SubscriptionRepositoryAdapter implements the SubscriptionRepository port using GORM
type SubscriptionRepositoryAdapter struct {
	db *gorm.DB
}

// NewSubscriptionRepositoryAdapter creates a new subscription repository adapter
func NewSubscriptionRepositoryAdapter(db *gorm.DB) ports.SubscriptionRepository {
	return &SubscriptionRepositoryAdapter{db: db}
}

func (r *SubscriptionRepositoryAdapter) joined(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Table("subscriptions AS s").
		Select(joinedSubscriptionColumns).
		Joins("JOIN subscribers AS sub ON sub.id = s.subscriber_id").
		Joins("JOIN newspapers AS n ON n.id = s.newspaper_id")
}

func (r *SubscriptionRepositoryAdapter) scanJoined(query *gorm.DB, op string) ([]*ports.SubscriptionData, error) {
	var rows []subscriptionRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to "+op, err)
	}

	subscriptions := make([]*ports.SubscriptionData, len(rows))
	for i := range rows {
		subscriptions[i] = r.rowToData(&rows[i])
	}
	return subscriptions, nil
}

// FindAll returns every subscription, newest first
func (r *SubscriptionRepositoryAdapter) FindAll(ctx context.Context) ([]*ports.SubscriptionData, error) {
	return r.scanJoined(r.joined(ctx).Order("s.created_at DESC, s.id DESC"), "list subscriptions")
}

// FindByID retrieves a subscription by its ID
func (r *SubscriptionRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.SubscriptionData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("subscription ID cannot be zero")
	}

	subscriptions, err := r.scanJoined(r.joined(ctx).Where("s.id = ?", id).Limit(1), "find subscription by ID")
	if err != nil {
		return nil, err
	}
	if len(subscriptions) == 0 {
		return nil, errors.NewNotFoundError("subscription not found")
	}
	return subscriptions[0], nil
}

// FindBySubscriberID lists a subscriber's subscriptions by start date, latest first
func (r *SubscriptionRepositoryAdapter) FindBySubscriberID(ctx context.Context, subscriberID uint) ([]*ports.SubscriptionData, error) {
	query := r.joined(ctx).Where("s.subscriber_id = ?", subscriberID).Order("s.start_date DESC, s.id DESC")
	return r.scanJoined(query, "list subscriptions by subscriber")
}

// FindByNewspaperID lists a newspaper's subscriptions by start date, latest first
func (r *SubscriptionRepositoryAdapter) FindByNewspaperID(ctx context.Context, newspaperID uint) ([]*ports.SubscriptionData, error) {
	query := r.joined(ctx).Where("s.newspaper_id = ?", newspaperID).Order("s.start_date DESC, s.id DESC")
	return r.scanJoined(query, "list subscriptions by newspaper")
}

// FindByStatus lists subscriptions in a status by start date, latest first
func (r *SubscriptionRepositoryAdapter) FindByStatus(ctx context.Context, status string) ([]*ports.SubscriptionData, error) {
	query := r.joined(ctx).Where("s.status = ?", status).Order("s.start_date DESC, s.id DESC")
	return r.scanJoined(query, "list subscriptions by status")
}

// FindEndingBetween lists subscriptions in status whose end date lies in
// [from, to], soonest first
func (r *SubscriptionRepositoryAdapter) FindEndingBetween(ctx context.Context, status string, from, to time.Time) ([]*ports.SubscriptionData, error) {
	query := r.joined(ctx).
		Where("s.status = ? AND s.end_date >= ? AND s.end_date <= ?", status, from, to).
		Order("s.end_date ASC, s.id ASC")
	return r.scanJoined(query, "list expiring subscriptions")
}

// Search matches keyword against subscriber name and email and newspaper name and publisher
func (r *SubscriptionRepositoryAdapter) Search(ctx context.Context, keyword string) ([]*ports.SubscriptionData, error) {
	pattern := likePattern(keyword)
	query := r.joined(ctx).
		Where(containsAny("sub.name", "sub.email", "n.name", "n.publisher"), pattern, pattern, pattern, pattern).
		Order("s.created_at DESC, s.id DESC")
	return r.scanJoined(query, "search subscriptions")
}

// HasActive reports whether an active subscription exists for the pair,
// ignoring the row excludeID
func (r *SubscriptionRepositoryAdapter) HasActive(ctx context.Context, subscriberID, newspaperID, excludeID uint) (bool, error) {
	query := conn(ctx, r.db).Model(&SubscriptionModel{}).
		Where("subscriber_id = ? AND newspaper_id = ? AND status = ?", subscriberID, newspaperID, "active")
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.NewDatabaseError("failed to check active subscription", err)
	}
	return count > 0, nil
}

// CountBySubscriberID counts subscriptions referencing a subscriber
func (r *SubscriptionRepositoryAdapter) CountBySubscriberID(ctx context.Context, subscriberID uint) (int64, error) {
	return r.count(ctx, "failed to count subscriptions by subscriber", "subscriber_id = ?", subscriberID)
}

// CountByNewspaperID counts subscriptions referencing a newspaper
func (r *SubscriptionRepositoryAdapter) CountByNewspaperID(ctx context.Context, newspaperID uint) (int64, error) {
	return r.count(ctx, "failed to count subscriptions by newspaper", "newspaper_id = ?", newspaperID)
}

// Save inserts a new subscription and sets its ID
func (r *SubscriptionRepositoryAdapter) Save(ctx context.Context, sub *ports.SubscriptionData) error {
	if sub == nil {
		return errors.NewValidationError("subscription cannot be nil")
	}

	model := r.dataToModel(sub)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return r.translateWriteError("failed to save subscription", err)
	}

	sub.ID = model.ID
	sub.CreatedAt = model.CreatedAt
	sub.UpdatedAt = model.UpdatedAt
	return nil
}

// Update writes every column of an existing subscription
func (r *SubscriptionRepositoryAdapter) Update(ctx context.Context, sub *ports.SubscriptionData) error {
	if sub == nil {
		return errors.NewValidationError("subscription cannot be nil")
	}
	if sub.ID == 0 {
		return errors.NewValidationError("subscription ID cannot be zero for update")
	}

	updatedAt := stampOrNow(r.db, sub.UpdatedAt)
	result := conn(ctx, r.db).Model(&SubscriptionModel{ID: sub.ID}).UpdateColumns(map[string]interface{}{
		"subscriber_id": sub.SubscriberID,
		"newspaper_id":  sub.NewspaperID,
		"start_date":    sub.StartDate,
		"end_date":      sub.EndDate,
		"status":        sub.Status,
		"updated_at":    updatedAt,
	})
	if result.Error != nil {
		return r.translateWriteError("failed to update subscription", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("subscription not found")
	}

	sub.UpdatedAt = updatedAt
	return nil
}

// Delete removes a subscription. It reports false when no row matched.
func (r *SubscriptionRepositoryAdapter) Delete(ctx context.Context, id uint) (bool, error) {
	result := conn(ctx, r.db).Delete(&SubscriptionModel{}, id)
	if result.Error != nil {
		return false, errors.NewDatabaseError("failed to delete subscription", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Count returns the number of subscriptions
func (r *SubscriptionRepositoryAdapter) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&SubscriptionModel{}).Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError("failed to count subscriptions", err)
	}
	return count, nil
}

// CountByStatus counts subscriptions in a status
func (r *SubscriptionRepositoryAdapter) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, "failed to count subscriptions by status", "status = ?", status)
}

// CountCreatedSince counts subscriptions created at or after since
func (r *SubscriptionRepositoryAdapter) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, "failed to count recent subscriptions", "created_at >= ?", since)
}

// MarkExpired moves rows past their end date from one status to another
func (r *SubscriptionRepositoryAdapter) MarkExpired(ctx context.Context, fromStatus, toStatus string, cutoff, now time.Time) (int64, error) {
	result := conn(ctx, r.db).Model(&SubscriptionModel{}).
		Where("status = ? AND end_date < ?", fromStatus, cutoff).
		UpdateColumns(map[string]interface{}{
			"status":     toStatus,
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, errors.NewDatabaseError("failed to expire subscriptions", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SubscriptionRepositoryAdapter) count(ctx context.Context, failure string, query string, args ...interface{}) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&SubscriptionModel{}).Where(query, args...).Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError(failure, err)
	}
	return count, nil
}

func (r *SubscriptionRepositoryAdapter) translateWriteError(failure string, err error) error {
	switch {
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return errors.ErrDuplicateActiveSubscription
	case stderrors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.NewValidationError("subscription references a missing subscriber or newspaper")
	default:
		return errors.NewDatabaseError(failure, err)
	}
}

func (r *SubscriptionRepositoryAdapter) dataToModel(data *ports.SubscriptionData) *SubscriptionModel {
	return &SubscriptionModel{
		ID:           data.ID,
		SubscriberID: data.SubscriberID,
		NewspaperID:  data.NewspaperID,
		StartDate:    data.StartDate,
		EndDate:      data.EndDate,
		Status:       data.Status,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func (r *SubscriptionRepositoryAdapter) rowToData(row *subscriptionRow) *ports.SubscriptionData {
	return &ports.SubscriptionData{
		ID:              row.ID,
		SubscriberID:    row.SubscriberID,
		NewspaperID:     row.NewspaperID,
		StartDate:       row.StartDate.UTC(),
		EndDate:         row.EndDate.UTC(),
		Status:          row.Status,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		SubscriberName:  row.SubscriberName,
		SubscriberEmail: row.SubscriberEmail,
		NewspaperName:   row.NewspaperName,
		Publisher:       row.Publisher,
		Price:           row.Price,
	}
}
