package application

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/VxVxN/trendingcompanies/internal/config"
	"github.com/VxVxN/trendingcompanies/internal/directory"
)

type Application struct {
	Client *directory.Client
	Logger *slog.Logger
}

func Init(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", cfg.APIBaseURL)
	}

	client := directory.NewClient(cfg.APIBaseURL, &http.Client{})

	logger.Debug("Companies API configured", "url", client.URL())

	return &Application{
		Client: client,
		Logger: logger,
	}, nil
}

func (app *Application) Close() {
	app.Client.CloseIdleConnections()
}

// NewLogger builds the process logger from the configured level and format.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
