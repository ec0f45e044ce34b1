// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakeledger/api"
	"github.com/vechain/stakeledger/health"
	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/metrics"
	"github.com/vechain/stakeledger/staking"
	"github.com/vechain/stakeledger/state"
)

const stateCacheSize = 4096

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.New("pkg", "cmd")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("StakeLedger/%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "stakeledger",
		Usage:     "Staking ledger with period based reward accrual",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			inMemoryFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEventsLimitFlag,
			apiSlowQueriesThresholdFlag,
			adminTokenFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			skipNTPCheckFlag,
			tickIntervalFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	logLevel, logHandler := initLogger(ctx)
	defer func() { logger.Info("exited") }()

	if !ctx.Bool(skipNTPCheckFlag.Name) {
		go checkClockOffset()
	}
	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	gen, err := loadGenesis(ctx)
	if err != nil {
		return err
	}

	dataDir := "Memory"
	if !ctx.Bool(inMemoryFlag.Name) {
		if dataDir, err = makeDataDir(ctx); err != nil {
			return err
		}
	}

	db, err := openLedgerDB(ctx, dataDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing ledger database..."); db.Close() }()

	eventDB, err := openEventDB(ctx, dataDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	stater := state.NewStater(kv.Bucket("state/").NewStore(db), stateCacheSize)
	engine := staking.New(stater, staking.SystemClock{}, staking.WithEventWriter(eventDB))

	initialised, err := engine.Initialise(context.Background(), gen)
	if err != nil {
		return err
	}
	if initialised {
		logger.Info("ledger initialised", "name", gen.Name, "assets", len(gen.Assets))
	}
	interval, err := tickInterval(ctx)
	if err != nil {
		return err
	}
	info, err := engine.PeriodInfo()
	if err != nil {
		return err
	}
	healthStatus := health.New()
	healthStatus.Initialised(true)

	enableAPILogs := &atomic.Bool{}
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler := api.New(engine, eventDB, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		AdminToken:           ctx.String(adminTokenFlag.Name),
		EventsLimit:          ctx.Uint64(apiEventsLimitFlag.Name),
		EnableMetrics:        enableMetrics,
		EnableReqLogger:      enableAPILogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		LogLevel:             logLevel,
		LogHandler:           logHandler,
		Health:               healthStatus,
		MaxTimeBetweenTicks:  2 * interval,
	})

	apiListener, apiURL, err := listen(ctx.String(apiAddrFlag.Name))
	if err != nil {
		return err
	}
	defer apiListener.Close()

	var (
		metricsListener net.Listener
		metricsURL      string
	)
	if enableMetrics {
		if metricsListener, metricsURL, err = listen(ctx.String(metricsAddrFlag.Name)); err != nil {
			return err
		}
		defer metricsListener.Close()
	}

	g, gctx := errgroup.WithContext(handleExitSignal())
	g.Go(func() error {
		return serve(gctx, &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}, apiListener)
	})
	if metricsListener != nil {
		router := http.NewServeMux()
		router.Handle("/metrics", metrics.HTTPHandler())
		g.Go(func() error {
			return serve(gctx, &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}, metricsListener)
		})
	}

	g.Go(func() error {
		return tick(gctx, engine, stater, healthStatus, interval)
	})

	printStartupMessage(gen, info, dataDir, apiURL, metricsURL)

	return g.Wait()
}
