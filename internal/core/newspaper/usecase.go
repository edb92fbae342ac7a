package newspaper

import (
	"context"
	"fmt"
	"strings"

	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
)

type UseCase struct {
	newspaperRepo    ports.NewspaperRepository
	subscriptionRepo ports.SubscriptionRepository
	transactor       ports.Transactor
	clock            ports.Clock
	cache            ports.StatsCache
	metrics          ports.DomainMetrics
	logger           ports.Logger
}

type UseCaseDependencies struct {
	NewspaperRepo    ports.NewspaperRepository
	SubscriptionRepo ports.SubscriptionRepository
	Transactor       ports.Transactor
	Clock            ports.Clock
	Cache            ports.StatsCache
	Metrics          ports.DomainMetrics
	Logger           ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.NewspaperRepo == nil {
		return nil, errors.NewValidationError("newspaper repository is required")
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
		newspaperRepo:    deps.NewspaperRepo,
		subscriptionRepo: deps.SubscriptionRepo,
		transactor:       deps.Transactor,
		clock:            deps.Clock,
		cache:            deps.Cache,
		metrics:          deps.Metrics,
		logger:           deps.Logger,
	}, nil
}

func (uc *UseCase) List(ctx context.Context) ([]*Newspaper, error) {
	list, err := uc.newspaperRepo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to list newspapers", ports.F("error", err))
		return nil, fmt.Errorf("list newspapers: %w", err)
	}
	return fromDataList(list), nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*Newspaper, error) {
	data, err := uc.newspaperRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Error("Failed to get newspaper", ports.F("id", id), ports.F("error", err))
		}
		return nil, err
	}
	return fromData(data), nil
}

// Create inserts a newspaper with a unique name
func (uc *UseCase) Create(ctx context.Context, params CreateParams) (*Newspaper, error) {
	paper, err := params.toNewspaper()
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	paper.CreatedAt = now
	paper.UpdatedAt = now

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		taken, err := uc.newspaperRepo.NameTaken(ctx, paper.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return errors.ErrDuplicateName
		}

		data := paper.toData()
		if err := uc.newspaperRepo.Save(ctx, data); err != nil {
			return err
		}
		paper.ID = data.ID
		return nil
	})
	if err != nil {
		return nil, uc.writeFailed("create", 0, err)
	}

	uc.afterWrite(ctx)
	uc.metrics.RecordCreated(ports.ResourceNewspaper)
	uc.logger.Info("Newspaper created", ports.F("id", paper.ID), ports.F("name", paper.Name))
	return paper, nil
}

// Update applies a partial update. An empty update returns the current record.
func (uc *UseCase) Update(ctx context.Context, id uint, params UpdateParams) (*Newspaper, error) {
	var updated *Newspaper

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		data, err := uc.newspaperRepo.FindByID(ctx, id)
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

		if params.Name != nil {
			taken, err := uc.newspaperRepo.NameTaken(ctx, updated.Name, id)
			if err != nil {
				return err
			}
			if taken {
				return errors.ErrNameConflict
			}
		}

		updated.UpdatedAt = uc.clock.Now().UTC()
		data = updated.toData()
		if err := uc.newspaperRepo.Update(ctx, data); err != nil {
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
		uc.metrics.RecordUpdated(ports.ResourceNewspaper)
		uc.logger.Info("Newspaper updated", ports.F("id", id))
	}
	return updated, nil
}

// Delete removes a newspaper that no subscription references. It reports
// false when the newspaper does not exist.
func (uc *UseCase) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		dependents, err := uc.subscriptionRepo.CountByNewspaperID(ctx, id)
		if err != nil {
			return err
		}
		if dependents > 0 {
			return errors.ErrHasDependentSubscriptions
		}

		deleted, err = uc.newspaperRepo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, uc.writeFailed("delete", id, err)
	}

	if deleted {
		uc.afterWrite(ctx)
		uc.metrics.RecordDeleted(ports.ResourceNewspaper)
		uc.logger.Info("Newspaper deleted", ports.F("id", id))
	}
	return deleted, nil
}

// Search finds newspapers whose name, publisher or description contains keyword
func (uc *UseCase) Search(ctx context.Context, keyword string) ([]*Newspaper, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.NewValidationError("search keyword is required")
	}

	list, err := uc.newspaperRepo.Search(ctx, keyword)
	if err != nil {
		uc.logger.Error("Failed to search newspapers", ports.F("keyword", keyword), ports.F("error", err))
		return nil, fmt.Errorf("search newspapers: %w", err)
	}
	return fromDataList(list), nil
}

// ByPriceRange lists newspapers priced within [min, max], cheapest first
func (uc *UseCase) ByPriceRange(ctx context.Context, min, max float64) ([]*Newspaper, error) {
	if err := validatePrice(min); err != nil {
		return nil, errors.NewValidationError("minimum price must be a non-negative number")
	}
	if err := validatePrice(max); err != nil {
		return nil, errors.NewValidationError("maximum price must be a non-negative number")
	}
	if min > max {
		return nil, errors.NewValidationError("minimum price cannot be greater than maximum price")
	}

	list, err := uc.newspaperRepo.FindByPriceRange(ctx, min, max)
	if err != nil {
		uc.logger.Error("Failed to filter newspapers by price", ports.F("min", min), ports.F("max", max), ports.F("error", err))
		return nil, fmt.Errorf("filter newspapers by price: %w", err)
	}
	return fromDataList(list), nil
}

// ByPublisher lists newspapers of one publisher ordered by name
func (uc *UseCase) ByPublisher(ctx context.Context, publisher string) ([]*Newspaper, error) {
	publisher = strings.TrimSpace(publisher)
	if publisher == "" {
		return nil, errors.NewValidationError("publisher is required")
	}

	list, err := uc.newspaperRepo.FindByPublisher(ctx, publisher)
	if err != nil {
		uc.logger.Error("Failed to filter newspapers by publisher", ports.F("publisher", publisher), ports.F("error", err))
		return nil, fmt.Errorf("filter newspapers by publisher: %w", err)
	}
	return fromDataList(list), nil
}

// Stats returns the newspaper count and price aggregates
func (uc *UseCase) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	generation, hit := uc.cache.Load(ctx, ports.StatsKeyNewspapers, &stats)
	if hit {
		return &stats, nil
	}

	total, err := uc.newspaperRepo.Count(ctx)
	if err != nil {
		uc.logger.Error("Failed to count newspapers", ports.F("error", err))
		return nil, fmt.Errorf("count newspapers: %w", err)
	}

	agg, err := uc.newspaperRepo.PriceAggregates(ctx)
	if err != nil {
		uc.logger.Error("Failed to aggregate newspaper prices", ports.F("error", err))
		return nil, fmt.Errorf("aggregate newspaper prices: %w", err)
	}

	stats = Stats{
		Total:    total,
		AvgPrice: roundPrice(agg.Avg),
		MaxPrice: agg.Max,
		MinPrice: agg.Min,
	}
	uc.cache.Store(ctx, ports.StatsKeyNewspapers, generation, stats)
	return &stats, nil
}

func (uc *UseCase) afterWrite(ctx context.Context) {
	uc.cache.Invalidate(ctx, ports.StatsKeyNewspapers, ports.StatsKeySubscriptions)
}

func (uc *UseCase) writeFailed(op string, id uint, err error) error {
	switch {
	case errors.IsAlreadyExistsError(err), errors.IsDependencyError(err):
		uc.metrics.RecordConflict(ports.ResourceNewspaper, errors.CodeOf(err))
		uc.logger.Warn("Newspaper "+op+" rejected", ports.F("id", id), ports.F("reason", err.Error()))
	case errors.IsValidationError(err), errors.IsNotFoundError(err):
		uc.logger.Debug("Newspaper "+op+" rejected", ports.F("id", id), ports.F("reason", err.Error()))
	default:
		uc.logger.Error("Failed to "+op+" newspaper", ports.F("id", id), ports.F("error", err))
	}
	return err
}
