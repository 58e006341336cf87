// Command mccimport populates the merchant category code reference table from
// the configured CSV object. The import is skipped when the table already has
// data, so running it repeatedly is safe.
package main

import (
	"context"
	"flag"
	"log/slog"

	"cashtrail/config"
	logs "cashtrail/internal/infra/log"
	"cashtrail/internal/infra/mccdata"
	"cashtrail/internal/infra/persistence/postgres"
	"cashtrail/internal/usecase"
	"cashtrail/internal/usecase/impl"

	"go.uber.org/fx"

	_ "gocloud.dev/blob/fileblob"
)

type importParams struct {
	fx.In

	Usecase    usecase.MCCUsecase
	Source     usecase.MCCSource
	Logger     *slog.Logger
	Shutdowner fx.Shutdowner
}

func main() {
	bucketURL := flag.String("bucket", "", "Override the configured bucket URL")
	objectKey := flag.String("key", "", "Override the configured object key")
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*config.Config, error) {
				cfg, err := config.New()
				if err != nil {
					return nil, err
				}
				applyOverrides(cfg, *bucketURL, *objectKey)

				return cfg, nil
			},
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewMCCRepository,
			mccdata.NewBlobSource,
			impl.NewMCCService,
		),
		fx.Invoke(runImport),
	).Run()
}

func applyOverrides(cfg *config.Config, bucketURL, objectKey string) {
	if bucketURL == "" && objectKey == "" {
		return
	}

	if cfg.MCC == nil {
		cfg.MCC = &config.MCCConfig{}
	}
	if bucketURL != "" {
		cfg.MCC.BucketURL = bucketURL
	}
	if objectKey != "" {
		cfg.MCC.ObjectKey = objectKey
	}
}

func runImport(ctx context.Context, params importParams) {
	go func() {
		if err := params.Usecase.Import(ctx, params.Source); err != nil {
			params.Logger.Error("merchant category code import failed", slog.Any("error", err))
			_ = params.Shutdowner.Shutdown(fx.ExitCode(1))

			return
		}

		_ = params.Shutdowner.Shutdown()
	}()
}
