// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakeledger/api"
	"github.com/vechain/stakeledger/eventdb"
	"github.com/vechain/stakeledger/genesis"
	"github.com/vechain/stakeledger/health"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/staking"
	"github.com/vechain/stakeledger/state"
)

// the engine works at minute precision, larger offsets shift period boundaries
const maxClockOffset = 30 * time.Second

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".stakeledger")
	}
	return ""
}

func initLogger(ctx *cli.Context) (*slog.LevelVar, *log.GlogHandler) {
	lvl := log.FromLegacyLevel(int(ctx.Uint(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandler(os.Stdout)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandler(os.Stderr, useColor)
	}
	glog := log.NewGlogHandler(handler)
	glog.Verbosity(lvl)
	log.SetDefault(log.NewLogger(glog))

	// package loggers are bound to the root logger at init
	logger = log.New("pkg", "cmd")
	staking.SetLogger(log.New("pkg", "staking"))
	api.SetLogger(log.New("pkg", "api"))

	level := new(slog.LevelVar)
	level.Set(lvl)
	return level, glog
}

func loadGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return genesis.Devnet(), nil
	}
	return genesis.Load(path)
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir at '%v'", dir)
	}
	return dir, nil
}

func openLedgerDB(ctx *cli.Context, dir string) (*lvldb.LevelDB, error) {
	if ctx.Bool(inMemoryFlag.Name) {
		return lvldb.NewMem()
	}
	db, err := lvldb.New(filepath.Join(dir, "ledger.db"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open ledger database")
	}
	return db, nil
}

func openEventDB(ctx *cli.Context, dir string) (*eventdb.EventDB, error) {
	if ctx.Bool(inMemoryFlag.Name) {
		return eventdb.NewMem()
	}
	db, err := eventdb.New(filepath.Join(dir, "events.db"))
	if err != nil {
		return nil, errors.Wrap(err, "open event database")
	}
	return db, nil
}

func tickInterval(ctx *cli.Context) (time.Duration, error) {
	interval := ctx.Duration(tickIntervalFlag.Name)
	if interval <= 0 {
		return 0, fmt.Errorf("-%s must be positive, got %v", tickIntervalFlag.Name, interval)
	}
	return interval, nil
}

func checkClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > maxClockOffset || resp.ClockOffset < -maxClockOffset {
		logger.Warn("clock offset detected", "offset", resp.ClockOffset)
	}
}

func listen(addr string) (net.Listener, string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", errors.Wrapf(err, "listen addr [%v]", addr)
	}
	return listener, "http://" + listener.Addr().String() + "/", nil
}

// serve runs srv until ctx is done.
func serve(ctx context.Context, srv *http.Server, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// tick closes due periods without waiting for an operation to do it.
func tick(ctx context.Context, engine *staking.Engine, stater *state.Stater, healthStatus *health.Health, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	advance := func() {
		if _, err := engine.Advance(ctx); err != nil {
			logger.Warn("failed to advance period", "err", err)
			return
		}
		info, err := engine.PeriodInfo()
		if err != nil {
			logger.Warn("failed to read period", "err", err)
			return
		}
		healthStatus.Tick(info.Current)
	}

	advance()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			advance()
			if changed, hit, miss := stater.ReportCacheStats(); changed {
				logger.Debug("state cache stats", "hit", hit, "miss", miss)
			}
		}
	}
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(gen *genesis.Genesis, info *staking.PeriodInfo, dataDir, apiURL, metricsURL string) {
	fmt.Printf(`Starting %v
    Ledger       [ %v ]
    Period       [ #%v every %vd, next @%v ]
    Data dir     [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		fullVersion(),
		gen.Name,
		info.Current, info.Interval, time.Unix(int64(info.NextAt), 0).UTC(),
		dataDir,
		apiURL,
		func() string {
			if metricsURL == "" {
				return "Disabled"
			}
			return metricsURL
		}(),
	)
}
