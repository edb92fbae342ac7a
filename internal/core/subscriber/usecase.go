package subscriber

import (
	"context"
	"fmt"

	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
)

type UseCase struct {
	subscriberRepo   ports.SubscriberRepository
	subscriptionRepo ports.SubscriptionRepository
	transactor       ports.Transactor
	clock            ports.Clock
	cache            ports.StatsCache
	metrics          ports.DomainMetrics
	logger           ports.Logger
}

type UseCaseDependencies struct {
	SubscriberRepo   ports.SubscriberRepository
	SubscriptionRepo ports.SubscriptionRepository
	Transactor       ports.Transactor
	Clock            ports.Clock
	Cache            ports.StatsCache
	Metrics          ports.DomainMetrics
	Logger           ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.SubscriberRepo == nil {
		return nil, errors.NewValidationError("subscriber repository is required")
	}
	if deps.SubscriptionRepo == nil {
		return nil, errors.NewValidationError("subscription repository is required")
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
		subscriberRepo:   deps.SubscriberRepo,
		subscriptionRepo: deps.SubscriptionRepo,
		transactor:       deps.Transactor,
		clock:            deps.Clock,
		cache:            deps.Cache,
		metrics:          deps.Metrics,
		logger:           deps.Logger,
	}, nil
}

// List returns all subscribers, newest first
func (uc *UseCase) List(ctx context.Context) ([]*Subscriber, error) {
	list, err := uc.subscriberRepo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to list subscribers", ports.F("error", err))
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return fromDataList(list), nil
}

// Get returns one subscriber or a not-found error
func (uc *UseCase) Get(ctx context.Context, id uint) (*Subscriber, error) {
	data, err := uc.subscriberRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Error("Failed to get subscriber", ports.F("id", id), ports.F("error", err))
		}
		return nil, err
	}
	return fromData(data), nil
}

// Create inserts a subscriber with a unique email
func (uc *UseCase) Create(ctx context.Context, params CreateParams) (*Subscriber, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	sub := &Subscriber{
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Address:   params.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		taken, err := uc.subscriberRepo.EmailTaken(ctx, sub.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return errors.ErrDuplicateEmail
		}

		data := sub.toData()
		if err := uc.subscriberRepo.Save(ctx, data); err != nil {
			return err
		}
		sub.ID = data.ID
		return nil
	})
	if err != nil {
		return nil, uc.writeFailed("create", 0, err)
	}

	uc.afterWrite(ctx)
	uc.metrics.RecordCreated(ports.ResourceSubscriber)
	uc.logger.Info("Subscriber created", ports.F("id", sub.ID))
	return sub, nil
}

// Update applies a partial update. An empty update returns the current record.
func (uc *UseCase) Update(ctx context.Context, id uint, params UpdateParams) (*Subscriber, error) {
	var updated *Subscriber

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		data, err := uc.subscriberRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		updated = fromData(data)

		if params.IsEmpty() {
			return nil
		}
		if err := params.apply(updated); err != nil {
			return err
		}

		if params.Email != nil {
			taken, err := uc.subscriberRepo.EmailTaken(ctx, updated.Email, id)
			if err != nil {
				return err
			}
			if taken {
				return errors.ErrEmailConflict
			}
		}

		updated.UpdatedAt = uc.clock.Now().UTC()
		data = updated.toData()
		if err := uc.subscriberRepo.Update(ctx, data); err != nil {
			return err
		}
		updated.UpdatedAt = data.UpdatedAt
		return nil
	})
	if err != nil {
		return nil, uc.writeFailed("update", id, err)
	}

	if !params.IsEmpty() {
		uc.afterWrite(ctx)
		uc.metrics.RecordUpdated(ports.ResourceSubscriber)
		uc.logger.Info("Subscriber updated", ports.F("id", id))
	}
	return updated, nil
}

// Delete removes a subscriber that no subscription references. It reports
// false when the subscriber does not exist.
func (uc *UseCase) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		dependents, err := uc.subscriptionRepo.CountBySubscriberID(ctx, id)
		if err != nil {
			return err
		}
		if dependents > 0 {
			return errors.ErrHasDependentSubscriptions
		}

		deleted, err = uc.subscriberRepo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, uc.writeFailed("delete", id, err)
	}

	if deleted {
		uc.afterWrite(ctx)
		uc.metrics.RecordDeleted(ports.ResourceSubscriber)
		uc.logger.Info("Subscriber deleted", ports.F("id", id))
	}
	return deleted, nil
}

// Search finds subscribers whose name, email or phone contains keyword
func (uc *UseCase) Search(ctx context.Context, keyword string) ([]*Subscriber, error) {
	keyword, err := normalizeKeyword(keyword)
	if err != nil {
		return nil, err
	}

	list, err := uc.subscriberRepo.Search(ctx, keyword)
	if err != nil {
		uc.logger.Error("Failed to search subscribers", ports.F("keyword", keyword), ports.F("error", err))
		return nil, fmt.Errorf("search subscribers: %w", err)
	}
	return fromDataList(list), nil
}

// Stats returns the total count and the count created in the trailing window
func (uc *UseCase) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	generation, hit := uc.cache.Load(ctx, ports.StatsKeySubscribers, &stats)
	if hit {
		return &stats, nil
	}

	total, err := uc.subscriberRepo.Count(ctx)
	if err != nil {
		uc.logger.Error("Failed to count subscribers", ports.F("error", err))
		return nil, fmt.Errorf("count subscribers: %w", err)
	}

	since := uc.clock.Now().UTC().Add(-RecentWindow)
	recent, err := uc.subscriberRepo.CountCreatedSince(ctx, since)
	if err != nil {
		uc.logger.Error("Failed to count recent subscribers", ports.F("error", err))
		return nil, fmt.Errorf("count recent subscribers: %w", err)
	}

	stats = Stats{Total: total, Recent: recent}
	uc.cache.Store(ctx, ports.StatsKeySubscribers, generation, stats)
	return &stats, nil
}

func (uc *UseCase) afterWrite(ctx context.Context) {
	uc.cache.Invalidate(ctx, ports.StatsKeySubscribers, ports.StatsKeySubscriptions)
}

// writeFailed logs a failed write at the level its cause deserves and
// returns the error unchanged
func (uc *UseCase) writeFailed(op string, id uint, err error) error {
	switch {
	case errors.IsAlreadyExistsError(err), errors.IsDependencyError(err):
		uc.metrics.RecordConflict(ports.ResourceSubscriber, errors.CodeOf(err))
		uc.logger.Warn("Subscriber "+op+" rejected", ports.F("id", id), ports.F("reason", err.Error()))
	case errors.IsValidationError(err), errors.IsNotFoundError(err):
		uc.logger.Debug("Subscriber "+op+" rejected", ports.F("id", id), ports.F("reason", err.Error()))
	default:
		uc.logger.Error("Failed to "+op+" subscriber", ports.F("id", id), ports.F("error", err))
	}
	return err
}
