package main

import (
	"context"
	"flag"
	"net"
	"net/http"

	"cloud.google.com/go/compute/metadata"
	"github.com/justinas/alice"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/httpx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/m-lab/iap-hello/handler"
	"github.com/m-lab/iap-hello/identity"
	"github.com/m-lab/iap-hello/metrics"
	"github.com/m-lab/iap-hello/static"
)

var (
	listenHost string
	listenPort string
	appTitle   string
	logLevel   string
)

func init() {
	// PORT is part of the default App Engine environment.
	flag.StringVar(&listenHost, "host", "127.0.0.1", "Address to listen on")
	flag.StringVar(&listenPort, "port", "8080", "AppEngine port environment variable")
	flag.StringVar(&appTitle, "app-title", static.DefaultTitle, "Title shown on the welcome page")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, or error")
}

var mainCtx, mainCancel = context.WithCancel(context.Background())

func main() {
	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "Could not parse env args")

	logger, err := newLogger(logLevel)
	rtx.Must(err, "Invalid log level %q", logLevel)
	logProject(mainCtx, logger)

	prom := prometheusx.MustServeMetrics()
	defer prom.Close()

	// Identity forwarded by IAP is displayed but never verified.
	extractor := identity.NewChain(
		identity.NewTokenExtractor(logger),
		identity.NewHeaderExtractor(logger),
	)
	c := handler.NewClient(appTitle, extractor, logger)

	srv := &http.Server{
		Addr:    net.JoinHostPort(listenHost, listenPort),
		Handler: newMux(c),
	}
	logger.Info("Listening for INSECURE access requests on " + srv.Addr)
	rtx.Must(httpx.ListenAndServeAsync(srv), "Could not start server")
	defer srv.Close()
	<-mainCtx.Done()
}

// newLogger creates the process logger. It is passed to every component
// rather than configured globally.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})
	logger.SetLevel(lvl)
	return logger, nil
}

// logProject records the GCP project when running on Google infrastructure.
func logProject(ctx context.Context, logger log.FieldLogger) {
	if !metadata.OnGCE() {
		return
	}
	project, err := metadata.ProjectIDWithContext(ctx)
	if err != nil {
		logger.WithError(err).Warn("could not read project from metadata server")
		return
	}
	logger.WithField("project", project).Info("running on Google Cloud")
}

// newMux registers the welcome service routes. Unmatched paths fall through
// to the ServeMux 404, and other methods to its 405.
func newMux(c *handler.Client) *http.ServeMux {
	chain := alice.New(c.RequestID)
	mux := http.NewServeMux()
	// The welcome page shows the identity forwarded by IAP.
	mux.Handle("GET /{$}", chain.Then(instrument("/", c.Welcome)))
	mux.Handle("GET /health", chain.Then(instrument("/health", c.Health)))
	mux.Handle("GET /info", chain.Then(instrument("/info", c.Info)))
	return mux
}

// instrument records the handler latency under the given path label.
func instrument(path string, h http.HandlerFunc) http.Handler {
	return promhttp.InstrumentHandlerDuration(
		metrics.RequestHandlerDuration.MustCurryWith(prometheus.Labels{"path": path}), h)
}
