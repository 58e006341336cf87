package impl

import (
	"context"
	"strings"
	"time"

	"cashtrail/internal/domain/entity"
	domainerrors "cashtrail/internal/domain/errors"
	"cashtrail/internal/domain/repository"
	"cashtrail/internal/errors"
	"cashtrail/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// ErrMerchantNotOwned is returned when a user touches a merchant they don't own.
var ErrMerchantNotOwned = errors.New("unauthorized to access this merchant")

type merchantService struct {
	txManager repository.TransactionManager
	resolver  usecase.GeoResolver
}

// MerchantServiceParams holds dependencies for MerchantService, injected by Fx.
type MerchantServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Resolver  usecase.GeoResolver
}

// NewMerchantService creates a new merchant service instance.
func NewMerchantService(params MerchantServiceParams) usecase.MerchantUsecase {
	return &merchantService{
		txManager: params.TxManager,
		resolver:  params.Resolver,
	}
}

// applyLocation writes location onto the merchant, keeping the coordinate
// invariant: an empty location clears both coordinates; a changed location, or
// one whose coordinates are missing, is re-resolved; an unchanged location with
// coordinates present is left alone without a lookup. Successful resolution
// replaces the supplied text with the resolver's normalized address.
func applyLocation(ctx context.Context, resolver usecase.GeoResolver, merchant *entity.Merchant, location string) error {
	if strings.TrimSpace(location) == "" {
		merchant.Location = ""
		merchant.ClearCoordinates()

		return nil
	}

	if merchant.Location == location && merchant.HasCoordinates() {
		return nil
	}

	resolved, err := resolver.Resolve(ctx, location)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return domainerrors.ErrGeocodeProvider.WrapMessage(err.Error())
	}

	if resolved == nil {
		// Unresolvable locations keep the user's text with no coordinates.
		merchant.Location = location
		merchant.ClearCoordinates()

		return nil
	}

	merchant.Location = resolved.Address
	merchant.SetCoordinates(resolved.Point.Lat(), resolved.Point.Lon())

	return nil
}

// getOrCreateMerchant finds the merchant matching (owner, name, location) or
// creates one through the location-resolution rule. It runs against the repo
// it is given so callers can bind it to their own database transaction.
func getOrCreateMerchant(ctx context.Context, repo repository.MerchantRepository, resolver usecase.GeoResolver, userID uuid.UUID, name, location string) (*entity.Merchant, error) {
	merchant, err := repo.FindMerchantByNameAndLocation(ctx, userID, name, location)
	if err == nil {
		return merchant, nil
	}
	if !errors.Is(err, repository.ErrMerchantNotFound) {
		return nil, errors.Wrap(err, "failed to find merchant by name and location")
	}

	merchant = &entity.Merchant{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := applyLocation(ctx, resolver, merchant, location); err != nil {
		return nil, err
	}

	if err := repo.CreateMerchant(ctx, merchant); err != nil {
		return nil, errors.Wrap(err, "failed to create merchant")
	}

	return merchant, nil
}

// CreateMerchant creates a merchant, resolving its location if one is given.
func (s *merchantService) CreateMerchant(ctx context.Context, userID uuid.UUID, input *usecase.CreateMerchantInput) (*entity.Merchant, error) {
	merchant := &entity.Merchant{
		ID:                uuid.New(),
		UserID:            userID,
		Name:              input.Name,
		DefaultCategoryID: input.DefaultCategoryID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := applyLocation(ctx, s.resolver, merchant, input.Location); err != nil {
			return err
		}

		return repoFactory.MerchantRepo().CreateMerchant(ctx, merchant)
	})
	if err != nil {
		return nil, err
	}

	return merchant, nil
}

// GetOrCreateMerchant returns the merchant matching (owner, name, location) or creates one.
func (s *merchantService) GetOrCreateMerchant(ctx context.Context, userID uuid.UUID, name, location string) (*entity.Merchant, error) {
	var merchant *entity.Merchant
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var txErr error
		merchant, txErr = getOrCreateMerchant(ctx, repoFactory.MerchantRepo(), s.resolver, userID, name, location)

		return txErr
	})
	if err != nil {
		return nil, err
	}

	return merchant, nil
}

// UpsertLocation stores a new location for the merchant, re-resolving
// coordinates as needed. Location and coordinates are persisted together in
// one update so a reader never observes them out of sync.
func (s *merchantService) UpsertLocation(ctx context.Context, userID, merchantID uuid.UUID, newLocation string) (*entity.Merchant, error) {
	var merchant *entity.Merchant
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.MerchantRepo()

		var txErr error
		merchant, txErr = s.ownedMerchant(ctx, repo, userID, merchantID)
		if txErr != nil {
			return txErr
		}

		if txErr = applyLocation(ctx, s.resolver, merchant, newLocation); txErr != nil {
			return txErr
		}
		merchant.UpdatedAt = time.Now()

		return repo.UpdateMerchant(ctx, merchant)
	})
	if err != nil {
		return nil, err
	}

	return merchant, nil
}

// GetMerchants retrieves all merchants for a user.
func (s *merchantService) GetMerchants(ctx context.Context, userID uuid.UUID) ([]*entity.Merchant, error) {
	var merchants []*entity.Merchant
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var txErr error
		merchants, txErr = repoFactory.MerchantRepo().FindMerchantsByUser(ctx, userID)

		return txErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find merchants by user")
	}

	return merchants, nil
}

// GetMerchant retrieves a single merchant owned by the user.
func (s *merchantService) GetMerchant(ctx context.Context, userID, merchantID uuid.UUID) (*entity.Merchant, error) {
	var merchant *entity.Merchant
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var txErr error
		merchant, txErr = s.ownedMerchant(ctx, repoFactory.MerchantRepo(), userID, merchantID)

		return txErr
	})
	if err != nil {
		return nil, err
	}

	return merchant, nil
}

// UpdateMerchant applies a partial update, re-running location resolution when
// the location changes.
func (s *merchantService) UpdateMerchant(ctx context.Context, userID, merchantID uuid.UUID, input *usecase.UpdateMerchantInput) (*entity.Merchant, error) {
	var merchant *entity.Merchant
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.MerchantRepo()

		var txErr error
		merchant, txErr = s.ownedMerchant(ctx, repo, userID, merchantID)
		if txErr != nil {
			return txErr
		}

		if input.Name != nil {
			merchant.Name = *input.Name
		}
		if input.DefaultCategoryID != nil {
			merchant.DefaultCategoryID = input.DefaultCategoryID
		}
		if input.Location != nil {
			if txErr = applyLocation(ctx, s.resolver, merchant, *input.Location); txErr != nil {
				return txErr
			}
		}
		merchant.UpdatedAt = time.Now()

		return repo.UpdateMerchant(ctx, merchant)
	})
	if err != nil {
		return nil, err
	}

	return merchant, nil
}

// DeleteMerchant removes a merchant the user owns.
func (s *merchantService) DeleteMerchant(ctx context.Context, userID, merchantID uuid.UUID) error {
	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.MerchantRepo()

		if _, err := s.ownedMerchant(ctx, repo, userID, merchantID); err != nil {
			return err
		}

		return repo.DeleteMerchant(ctx, merchantID)
	})
}

// ownedMerchant fetches a merchant and verifies ownership.
func (s *merchantService) ownedMerchant(ctx context.Context, repo repository.MerchantRepository, userID, merchantID uuid.UUID) (*entity.Merchant, error) {
	merchant, err := repo.FindMerchantByID(ctx, merchantID)
	if err != nil {
		if errors.Is(err, repository.ErrMerchantNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to find merchant by ID")
	}

	if merchant.UserID != userID {
		return nil, ErrMerchantNotOwned
	}

	return merchant, nil
}
