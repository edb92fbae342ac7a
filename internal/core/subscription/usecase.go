package subscription

import (
	"context"
	"fmt"
	"strings"

	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
	"newsdesk.app/pkg/validation"
)

type UseCase struct {
	subscriptionRepo ports.SubscriptionRepository
	subscriberRepo   ports.SubscriberRepository
	newspaperRepo    ports.NewspaperRepository
	transactor       ports.Transactor
	clock            ports.Clock
	cache            ports.StatsCache
	metrics          ports.DomainMetrics
	logger           ports.Logger
}

type UseCaseDependencies struct {
	SubscriptionRepo ports.SubscriptionRepository
	SubscriberRepo   ports.SubscriberRepository
	NewspaperRepo    ports.NewspaperRepository
	Transactor       ports.Transactor
	Clock            ports.Clock
	Cache            ports.StatsCache
	Metrics          ports.DomainMetrics
	Logger           ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.SubscriptionRepo == nil {
		return nil, errors.NewValidationError("subscription repository is required")
	}
	if deps.SubscriberRepo == nil {
		return nil, errors.NewValidationError("subscriber repository is required")
	}
	if deps.NewspaperRepo == nil {
		return nil, errors.NewValidationError("newspaper repository is required")
	}
	if deps.Transactor == nil {
		return nil, errors.NewValidationError("transactor is required")
	}
	if deps.Clock == nil {
		return nil, errors.NewValidationError("clock is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("stats cache is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		subscriptionRepo: deps.SubscriptionRepo,
		subscriberRepo:   deps.SubscriberRepo,
		newspaperRepo:    deps.NewspaperRepo,
		transactor:       deps.Transactor,
		clock:            deps.Clock,
		cache:            deps.Cache,
		metrics:          deps.Metrics,
		logger:           deps.Logger,
	}, nil
}

func (uc *UseCase) List(ctx context.Context) ([]*Subscription, error) {
	list, err := uc.subscriptionRepo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to list subscriptions", ports.F("error", err))
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return fromDataList(list), nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*Subscription, error) {
	data, err := uc.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Error("Failed to get subscription", ports.F("id", id), ports.F("error", err))
		}
		return nil, err
	}
	return fromData(data), nil
}

// Create inserts a subscription after checking both references exist and
// that the pair has no other active subscription
func (uc *UseCase) Create(ctx context.Context, params CreateParams) (*Subscription, error) {
	sub, err := params.toSubscription()
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	var created *Subscription
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.checkReferences(ctx, sub, true, true); err != nil {
			return err
		}
		if err := uc.checkActivePair(ctx, sub); err != nil {
			return err
		}

		data := sub.toData()
		if err := uc.subscriptionRepo.Save(ctx, data); err != nil {
			return err
		}

		joined, err := uc.subscriptionRepo.FindByID(ctx, data.ID)
		if err != nil {
			return err
		}
		created = fromData(joined)
		return nil
	})
	if err != nil {
		return nil, uc.writeFailed("create", 0, err)
	}

	uc.afterWrite(ctx)
	uc.metrics.RecordCreated(ports.ResourceSubscription)
	uc.logger.Info("Subscription created",
		ports.F("id", created.ID),
		ports.F("subscriberID", created.SubscriberID),
		ports.F("newspaperID", created.NewspaperID))
	return created, nil
}

// Update applies a partial update, re-validating references that change and
// the active-pair rule when the result is active. An empty update returns
// the current record.
func (uc *UseCase) Update(ctx context.Context, id uint, params UpdateParams) (*Subscription, error) {
	var updated *Subscription

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		data, err := uc.subscriptionRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		current := fromData(data)
		if params.IsEmpty() {
			updated = current
			return nil
		}

		next := *current
		if err := params.apply(&next); err != nil {
			return err
		}

		subscriberChanged := next.SubscriberID != current.SubscriberID
		newspaperChanged := next.NewspaperID != current.NewspaperID
		if err := uc.checkReferences(ctx, &next, subscriberChanged, newspaperChanged); err != nil {
			return err
		}

		pairOrStatusChanged := subscriberChanged || newspaperChanged || next.Status != current.Status
		if pairOrStatusChanged {
			if err := uc.checkActivePair(ctx, &next); err != nil {
				return err
			}
		}

		next.UpdatedAt = uc.clock.Now().UTC()
		if err := uc.subscriptionRepo.Update(ctx, next.toData()); err != nil {
			return err
		}

		joined, err := uc.subscriptionRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		updated = fromData(joined)
		return nil
	})
	if err != nil {
		return nil, uc.writeFailed("update", id, err)
	}

	if !params.IsEmpty() {
		uc.afterWrite(ctx)
		uc.metrics.RecordUpdated(ports.ResourceSubscription)
		uc.logger.Info("Subscription updated", ports.F("id", id), ports.F("status", updated.Status.String()))
	}
	return updated, nil
}

// Delete removes a subscription. It reports false when it does not exist.
func (uc *UseCase) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := uc.subscriptionRepo.Delete(ctx, id)
	if err != nil {
		return false, uc.writeFailed("delete", id, err)
	}

	if deleted {
		uc.afterWrite(ctx)
		uc.metrics.RecordDeleted(ports.ResourceSubscription)
		uc.logger.Info("Subscription deleted", ports.F("id", id))
	}
	return deleted, nil
}

// BySubscriber lists a subscriber's subscriptions, latest start first
func (uc *UseCase) BySubscriber(ctx context.Context, subscriberID uint) ([]*Subscription, error) {
	list, err := uc.subscriptionRepo.FindBySubscriberID(ctx, subscriberID)
	if err != nil {
		uc.logger.Error("Failed to list subscriptions by subscriber", ports.F("subscriberID", subscriberID), ports.F("error", err))
		return nil, fmt.Errorf("list subscriptions by subscriber: %w", err)
	}
	return fromDataList(list), nil
}

// ByNewspaper lists a newspaper's subscriptions, latest start first
func (uc *UseCase) ByNewspaper(ctx context.Context, newspaperID uint) ([]*Subscription, error) {
	list, err := uc.subscriptionRepo.FindByNewspaperID(ctx, newspaperID)
	if err != nil {
		uc.logger.Error("Failed to list subscriptions by newspaper", ports.F("newspaperID", newspaperID), ports.F("error", err))
		return nil, fmt.Errorf("list subscriptions by newspaper: %w", err)
	}
	return fromDataList(list), nil
}

// ByStatus lists subscriptions in one status, latest start first
func (uc *UseCase) ByStatus(ctx context.Context, status string) ([]*Subscription, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	list, err := uc.subscriptionRepo.FindByStatus(ctx, parsed.String())
	if err != nil {
		uc.logger.Error("Failed to list subscriptions by status", ports.F("status", parsed.String()), ports.F("error", err))
		return nil, fmt.Errorf("list subscriptions by status: %w", err)
	}
	return fromDataList(list), nil
}

// ExpiringSoon lists active subscriptions whose end date falls within the
// next days days, today included, soonest first
func (uc *UseCase) ExpiringSoon(ctx context.Context, days int) ([]*Subscription, error) {
	if days < MinExpiringDays || days > MaxExpiringDays {
		return nil, errors.NewValidationError(fmt.Sprintf("days must be between %d and %d", MinExpiringDays, MaxExpiringDays))
	}

	today := validation.TruncateToDay(uc.clock.Now())
	until := today.AddDate(0, 0, days)

	list, err := uc.subscriptionRepo.FindEndingBetween(ctx, StatusActive.String(), today, until)
	if err != nil {
		uc.logger.Error("Failed to list expiring subscriptions", ports.F("days", days), ports.F("error", err))
		return nil, fmt.Errorf("list expiring subscriptions: %w", err)
	}
	return fromDataList(list), nil
}

// Search finds subscriptions by subscriber name or email and newspaper name or publisher
func (uc *UseCase) Search(ctx context.Context, keyword string) ([]*Subscription, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.NewValidationError("search keyword is required")
	}

	list, err := uc.subscriptionRepo.Search(ctx, keyword)
	if err != nil {
		uc.logger.Error("Failed to search subscriptions", ports.F("keyword", keyword), ports.F("error", err))
		return nil, fmt.Errorf("search subscriptions: %w", err)
	}
	return fromDataList(list), nil
}

// SweepExpired marks every active subscription that ended before today as
// expired and returns how many changed
func (uc *UseCase) SweepExpired(ctx context.Context) (int64, error) {
	now := uc.clock.Now().UTC()
	today := validation.TruncateToDay(now)

	changed, err := uc.subscriptionRepo.MarkExpired(ctx, StatusActive.String(), StatusExpired.String(), today, now)
	if err != nil {
		uc.logger.Error("Failed to expire subscriptions", ports.F("error", err))
		return 0, fmt.Errorf("expire subscriptions: %w", err)
	}

	if changed > 0 {
		uc.afterWrite(ctx)
		uc.metrics.RecordExpired(changed)
	}
	uc.logger.Info("Expiry sweep completed", ports.F("expired", changed), ports.F("cutoff", today.Format("2006-01-02")))
	return changed, nil
}

// Stats returns totals by status and the count created in the trailing window
func (uc *UseCase) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	generation, hit := uc.cache.Load(ctx, ports.StatsKeySubscriptions, &stats)
	if hit {
		return &stats, nil
	}

	total, err := uc.subscriptionRepo.Count(ctx)
	if err != nil {
		uc.logger.Error("Failed to count subscriptions", ports.F("error", err))
		return nil, fmt.Errorf("count subscriptions: %w", err)
	}
	active, err := uc.subscriptionRepo.CountByStatus(ctx, StatusActive.String())
	if err != nil {
		uc.logger.Error("Failed to count active subscriptions", ports.F("error", err))
		return nil, fmt.Errorf("count active subscriptions: %w", err)
	}
	expired, err := uc.subscriptionRepo.CountByStatus(ctx, StatusExpired.String())
	if err != nil {
		uc.logger.Error("Failed to count expired subscriptions", ports.F("error", err))
		return nil, fmt.Errorf("count expired subscriptions: %w", err)
	}
	recent, err := uc.subscriptionRepo.CountCreatedSince(ctx, uc.clock.Now().UTC().Add(-RecentWindow))
	if err != nil {
		uc.logger.Error("Failed to count recent subscriptions", ports.F("error", err))
		return nil, fmt.Errorf("count recent subscriptions: %w", err)
	}

	stats = Stats{Total: total, Active: active, Expired: expired, Recent: recent}
	uc.cache.Store(ctx, ports.StatsKeySubscriptions, generation, stats)
	return &stats, nil
}

func (uc *UseCase) checkReferences(ctx context.Context, sub *Subscription, subscriber, newspaper bool) error {
	if subscriber {
		if _, err := uc.subscriberRepo.FindByID(ctx, sub.SubscriberID); err != nil {
			if errors.IsNotFoundError(err) {
				return errors.ErrSubscriberNotFound
			}
			return err
		}
	}
	if newspaper {
		if _, err := uc.newspaperRepo.FindByID(ctx, sub.NewspaperID); err != nil {
			if errors.IsNotFoundError(err) {
				return errors.ErrNewspaperNotFound
			}
			return err
		}
	}
	return nil
}

func (uc *UseCase) checkActivePair(ctx context.Context, sub *Subscription) error {
	if !sub.IsActive() {
		return nil
	}
	exists, err := uc.subscriptionRepo.HasActive(ctx, sub.SubscriberID, sub.NewspaperID, sub.ID)
	if err != nil {
		return err
	}
	if exists {
		return errors.ErrDuplicateActiveSubscription
	}
	return nil
}

func (uc *UseCase) afterWrite(ctx context.Context) {
	uc.cache.Invalidate(ctx, ports.StatsKeySubscriptions)
}

func (uc *UseCase) writeFailed(op string, id uint, err error) error {
	switch {
	case errors.IsAlreadyExistsError(err), errors.IsDependencyError(err):
		uc.metrics.RecordConflict(ports.ResourceSubscription, errors.CodeOf(err))
		uc.logger.Warn("Subscription "+op+" rejected", ports.F("id", id), ports.F("reason", err.Error()))
	case errors.IsValidationError(err), errors.IsNotFoundError(err):
		uc.logger.Debug("Subscription "+op+" rejected", ports.F("id", id), ports.F("reason", err.Error()))
	default:
		uc.logger.Error("Failed to "+op+" subscription", ports.F("id", id), ports.F("error", err))
	}
	return err
}
