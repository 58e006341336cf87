package impl

import (
	"context"
	"log/slog"

	"cashtrail/internal/domain/entity"
	"cashtrail/internal/domain/repository"
	"cashtrail/internal/errors"
	"cashtrail/internal/usecase"

	"go.uber.org/fx"
)

type mccService struct {
	mccRepo repository.MCCRepository
	logger  *slog.Logger
}

// MCCServiceParams holds dependencies for MCCService, injected by Fx.
type MCCServiceParams struct {
	fx.In

	MCCRepo repository.MCCRepository
	Logger  *slog.Logger
}

// NewMCCService creates a new merchant category code service instance.
func NewMCCService(params MCCServiceParams) usecase.MCCUsecase {
	return &mccService{
		mccRepo: params.MCCRepo,
		logger:  params.Logger,
	}
}

func (s *mccService) Import(ctx context.Context, source usecase.MCCSource) error {
	count, err := s.mccRepo.CountMCCs(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to count merchant category codes")
	}
	if count > 0 {
		s.logger.Warn("merchant category code table already populated, skipping import",
			slog.Int64("existing", count))

		return nil
	}

	codes, err := source.Read(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read merchant category codes from source")
	}
	if len(codes) == 0 {
		s.logger.Warn("merchant category code source is empty, nothing imported")

		return nil
	}

	if err := s.mccRepo.CreateMCCs(ctx, codes); err != nil {
		return errors.Wrap(err, "failed to persist merchant category codes")
	}

	s.logger.Info("merchant category codes imported", slog.Int("count", len(codes)))

	return nil
}

func (s *mccService) ListCodes(ctx context.Context) ([]*entity.MerchantCategoryCode, error) {
	codes, err := s.mccRepo.ListMCCs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list merchant category codes")
	}

	return codes, nil
}
