package handlers

import (
	"log/slog"
	"time"

	"github.com/VxVxN/trendingcompanies/internal/directory"
	"github.com/VxVxN/trendingcompanies/internal/view"
)

type Controller struct {
	fetcher    directory.Fetcher
	renderer   *view.Renderer
	logger     *slog.Logger
	renderWait time.Duration
}

// NewController wires the page handlers. A zero renderWait makes the page
// wait until the fetch settles or the client goes away.
func NewController(fetcher directory.Fetcher, renderer *view.Renderer, logger *slog.Logger, renderWait time.Duration) *Controller {
	return &Controller{
		fetcher:    fetcher,
		renderer:   renderer,
		logger:     logger,
		renderWait: renderWait,
	}
}
