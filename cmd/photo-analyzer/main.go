package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/photo-analyzer/internal/photo"
	"github.com/zombor/photo-analyzer/internal/secrets"
	"github.com/zombor/photo-analyzer/internal/vision"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

// errUsage marks flag parsing failures, which print the help text
var errUsage = errors.New("invalid usage")

// app is a fully configured server that has not started listening yet
type app struct {
	server   *photo.Server
	addr     string
	authUser string
	authPass string
}

// newApp parses flags and loads credentials from env, falling back to the
// secrets file. Any error means the process must not serve.
func newApp(args []string, env secrets.Store) (*app, error) {
	fs := ff.NewFlagSet("photo-analyzer")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		secretsPath = fs.StringLong("secrets", "secrets.toml", "Secrets file holding AZURE_ENDPOINT and AZURE_KEY (.toml or KEY=value); the environment takes precedence")
		timeout     = fs.DurationLong("timeout", vision.DefaultTimeout, "Timeout for one vision API request")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		_           = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("PHOTO_ANALYZER"),
	); err != nil {
		return nil, fmt.Errorf("%w: %v\n%s", errUsage, err, ffhelp.Flags(fs))
	}

	slog.Info("Loading secrets...", "file", *secretsPath)
	fileSecrets, err := secrets.ReadFileIfExists(*secretsPath)
	if err != nil {
		return nil, err
	}
	creds, err := secrets.LoadCredentials(secrets.Chain{env, fileSecrets})
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	slog.Info("Initializing Azure vision client...", "endpoint", creds.Endpoint, "timeout", *timeout)
	analyzer, err := vision.NewAzure(creds, vision.WithTimeout(*timeout))
	if err != nil {
		return nil, fmt.Errorf("initializing azure vision client: %w", err)
	}

	photoService := photo.NewService(analyzer, photo.NewMetrics())
	basicAuth := photo.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}

	return &app{
		server:   photo.NewServer(photoService, basicAuth),
		addr:     fmt.Sprintf(":%d", *port),
		authUser: *authUser,
		authPass: *authPass,
	}, nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	a, err := newApp(os.Args[1:], secrets.Env{})
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			slog.Error("Failed to start", "error", err)
		}
		os.Exit(1)
	}

	// Start server in goroutine
	go func() {
		if err := a.server.Start(a.addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", a.addr), "version", version)
	if a.authUser != "" || a.authPass != "" {
		slog.Info("Basic auth enabled", "user", a.authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}
