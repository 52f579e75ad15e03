// @title         Ballotbox API
// @version       0.1.0
// @description   Upload ballot spreadsheets and read the aggregated vote views
// @BasePath      /api/v1
//
// @securityDefinitions.apikey bearer
// @in   header
// @name Authorization

package main

//go:generate go run github.com/swaggo/swag/v2/cmd/swag@v2.0.0-rc4 init --v3.1 -d ../../ -g cmd/ballotbox-api/main.go -o ../../internal/services/api/docs --ot go

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/logger"
	phttp "ballotbox/internal/platform/net/http"
	"ballotbox/internal/platform/store"

	"ballotbox/internal/services/api"
	ballotsmod "ballotbox/internal/services/ballots/module"
)

func main() {
	opt := logger.FromEnv()
	opt.Service = "ballotbox-api"
	logger.Init(opt)
	l := logger.Get()

	root := config.New()
	coreCfg := root.Prefix("CORE_")    // module settings, CORE_BALLOTS_*
	apiCfg := root.Prefix("CORE_API_") // http settings, CORE_API_*

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	set := ballotsmod.FromConfig(coreCfg)
	st, err := store.Open(ctx, ballotsmod.StoreConfig(root, opt.Service, set), *l)
	if err != nil {
		l.Fatal().Err(err).Str("store", set.Store).Msg("store open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("store close failed")
		}
	}()

	srv := phttp.NewServer(apiCfg)
	err = api.Mount(ctx, srv.Router(), api.Options{
		Config:         coreCfg,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("api mount failed")
	}

	l.Info().Str("addr", srv.Addr()).Str("store", set.Store).Msg("listening")
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
