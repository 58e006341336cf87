package main

import (
	"context"
	"log/slog"
	"os"

	"cashtrail/config"
	"cashtrail/internal/delivery"
	"cashtrail/internal/delivery/http"
	"cashtrail/internal/delivery/http/middleware"
	"cashtrail/internal/delivery/http/router/handler"
	"cashtrail/internal/infra/auth"
	"cashtrail/internal/infra/geocode"
	logs "cashtrail/internal/infra/log"
	"cashtrail/internal/infra/persistence/postgres"
	"cashtrail/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewCardRepository,
			postgres.NewUserCategoryRepository,
			postgres.NewMerchantRepository,
			postgres.NewMCCRepository,
			postgres.NewRewardMappingRepository,
			postgres.NewTransactionRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			geocode.NewNominatimGeocoder,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewGeoResolver,
			impl.NewUserService,
			impl.NewCardService,
			impl.NewUserCategoryService,
			impl.NewMerchantService,
			impl.NewMCCService,
			impl.NewRewardMappingService,
			impl.NewTransactionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewCardHandler,
			handler.NewUserCategoryHandler,
			handler.NewMerchantHandler,
			handler.NewRewardMappingHandler,
			handler.NewTransactionHandler,
			handler.NewMCCHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
