package server

import (
	"flag"
	"net/http"

	"github.com/iov-one/barter/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// Options are the settings an application is generated with.
type Options struct {
	Home   string
	Logger log.Logger
	Debug  bool
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

type startFlags struct {
	bind    string
	metrics string
	debug   bool
}

func parseStartFlags(args []string) (startFlags, error) {
	var f startFlags
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.StringVar(&f.bind, flagBind, "tcp://localhost:26658", "address server listens on")
	fs.StringVar(&f.metrics, flagMetrics, "", "address prometheus metrics are served on, empty to disable")
	fs.BoolVar(&f.debug, flagDebug, false, "call stack returned on error")
	if err := fs.Parse(args); err != nil {
		return f, errors.Wrap(errors.ErrInput, err.Error())
	}
	return f, nil
}

// StartCmd generates the application under home and serves it over the
// ABCI socket until the process receives SIGINT or SIGTERM.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	f, err := parseStartFlags(args)
	if err != nil {
		return err
	}

	// Generate the app in the proper dir
	app, err := gen(&Options{Home: home, Logger: logger, Debug: f.debug})
	if err != nil {
		return errors.Wrap(err, "generate app")
	}

	logger.Info("Starting ABCI app", "bind", f.bind)
	svr, err := server.NewServer(f.bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start abci server")
	}

	var metrics *http.Server
	if f.metrics != "" {
		metrics = serveMetrics(f.metrics, logger.With("module", "metrics"))
	}

	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("Cannot stop abci server", "err", err)
		}
		if metrics != nil {
			metrics.Close()
		}
	})

	// run forever, the process exits on signal
	select {}
}

func serveMetrics(addr string, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "err", err)
		}
	}()
	return srv
}
