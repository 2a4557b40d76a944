package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/battleship-fleet/api"
	"github.com/saeidalz13/battleship-fleet/db"
	"github.com/saeidalz13/battleship-fleet/db/sqlc"
	"github.com/saeidalz13/battleship-fleet/internal/cli"
	"github.com/saeidalz13/battleship-fleet/internal/config"
	"github.com/saeidalz13/battleship-fleet/internal/render"
	"github.com/saeidalz13/battleship-fleet/internal/session"
	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		panic(err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		panic(err)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	submitter := mustSubmitter(cfg)

	engine := mb.NewPlacementEngine(render.NewBoardRenderer(os.Stdout))
	var opts []session.Option
	var replOpts []cli.Option

	if cfg.DatabaseURL != "" {
		conn := db.MustConnectToDb(cfg.DatabaseURL)
		defer conn.Close()

		dbManager := sqlc.NewDbManager(sqlc.New(conn))
		defer dbManager.Stats.Close()

		engine.Subscribe(dbManager.Stats)
		opts = append(opts, session.WithRecorder(dbManager.Submissions))
		replOpts = append(replOpts, cli.WithStats(dbManager))
	}

	s := session.New(cfg.GameId, engine, submitter, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("game_id", cfg.GameId).Str("stage", cfg.Stage).Str("transport", cfg.Transport).Msg("fleet setup started")
	err = cli.NewREPL(s, os.Stdout, cfg.SubmitTimeout, replOpts...).Run(ctx, os.Stdin)
	switch {
	case errors.Is(err, context.Canceled):
		log.Info().Str("game_id", cfg.GameId).Msg("fleet setup interrupted")
	case err != nil:
		log.Error().Err(err).Msg("reading commands failed")
	}
}

func mustSubmitter(cfg *config.Config) api.Submitter {
	tokens := api.StaticToken(cfg.AccessToken)

	switch cfg.Transport {
	case api.TransportWs:
		ws, err := api.NewWsSubmitter(cfg.WsURL, tokens, api.WithReadyWait(cfg.SubmitTimeout))
		if err != nil {
			panic(err)
		}
		return ws

	default:
		hs, err := api.NewHTTPSubmitter(cfg.APIURL, tokens, api.WithHTTPTimeout(cfg.SubmitTimeout))
		if err != nil {
			panic(err)
		}
		return hs
	}
}
