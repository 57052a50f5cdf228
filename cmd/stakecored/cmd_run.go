package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/stakecore/stakecore/config"
	"gitlab.com/stakecore/stakecore/internal/api"
	"gitlab.com/stakecore/stakecore/internal/chain"
	"gitlab.com/stakecore/stakecore/internal/database"
	"gitlab.com/stakecore/stakecore/internal/logging"
	"golang.org/x/sync/errgroup"
)

var cmdRun = &cobra.Command{
	Use:   "run",
	Short: "Run the staking node",
	Run:   runNode,
	Args:  cobra.NoArgs,
}

var flagRun = struct {
	CiStopAfter time.Duration
}{}

func init() {
	cmdMain.AddCommand(cmdRun)

	cmdRun.Flags().DurationVar(&flagRun.CiStopAfter, "ci-stop-after", 0, "FOR CI ONLY - stop the node after some time")
	cmdRun.Flag("ci-stop-after").Hidden = true
}

func runNode(*cobra.Command, []string) {
	c, err := config.Load(flagMain.WorkDir)
	checkf(err, "load configuration")

	lw, err := logging.NewConsoleWriter(os.Stderr, c.LogFormat)
	checkf(err, "initialize logging")
	logger, err := logging.New(lw, c.LogLevel)
	checkf(err, "initialize logging")

	var db *database.Database
	switch c.Storage.Type {
	case config.MemoryStorage:
		db = database.OpenInMemory(logger)
	case config.BadgerStorage:
		db, err = database.OpenBadger(config.MakeAbsolute(c.RootDir, c.Storage.Path), logger)
		checkf(err, "open database")
	default:
		fatalf("unknown storage type %q", c.Storage.Type)
	}
	defer func() { _ = db.Close() }()

	executor := chain.NewExecutor(db, logger)

	jrpc, err := api.NewJrpc(api.Options{
		Logger:   logger,
		Executor: executor,
		Database: db,
	})
	checkf(err, "initialize API")

	l, err := listenHttpUrl(c.API.ListenAddress)
	checkf(err, "listen on %s", c.API.ListenAddress)

	srv := &http.Server{
		Handler:     jrpc.NewMux(),
		ReadTimeout: c.API.ReadTimeout,
	}
	if c.API.ConnectionLimit > 0 {
		pool := make(chan struct{}, c.API.ConnectionLimit)
		for i := 0; i < c.API.ConnectionLimit; i++ {
			pool <- struct{}{}
		}
		srv.ConnState = func(conn net.Conn, state http.ConnState) {
			switch state {
			case http.StateNew:
				<-pool
			case http.StateClosed, http.StateHijacked:
				pool <- struct{}{}
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info().Str("address", c.API.ListenAddress).Msg("Starting API")
		err := srv.Serve(l)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if flagRun.CiStopAfter != 0 {
		go func() {
			time.Sleep(flagRun.CiStopAfter)
			stop()
		}()
	}

	err = group.Wait()
	check(err)
}

// listenHttpUrl takes a string such as `http://localhost:123` and creates a
// TCP listener.
func listenHttpUrl(s string) (net.Listener, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %v", err)
	}

	if u.Path != "" && u.Path != "/" {
		return nil, fmt.Errorf("invalid address: path is not empty")
	}

	switch u.Scheme {
	case "tcp", "http":
		// Ok
	case "https":
		return nil, fmt.Errorf("invalid address: HTTPS is not supported")
	default:
		return nil, fmt.Errorf("invalid address: unsupported scheme %q", u.Scheme)
	}

	l, err := net.Listen("tcp", u.Host)
	if err != nil {
		return nil, err
	}

	return l, nil
}
