package handlers

import (
	"bytes"
	"context"
	"net/http"

	"github.com/VxVxN/trendingcompanies/internal/directory"
	"github.com/VxVxN/trendingcompanies/internal/view"
)

// IndexHandler mounts the page: it starts one fetch, waits for it (bounded by
// renderWait) and renders whichever state the fetch is in.
func (controller *Controller) IndexHandler(w http.ResponseWriter, r *http.Request) {
	state, ok := controller.mount(r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := controller.renderer.RenderPage(&buf, view.Page{State: state}); err != nil {
		controller.logger.Error("Failed to render page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// mount returns false when the client went away before anything could be rendered.
func (controller *Controller) mount(r *http.Request) (directory.State, bool) {
	loader := directory.Start(r.Context(), controller.fetcher, controller.logger)
	defer loader.Close()

	ctx := r.Context()
	if controller.renderWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, controller.renderWait)
		defer cancel()
	}

	state, _ := loader.Wait(ctx)
	if r.Context().Err() != nil {
		controller.logger.Debug("Client left before companies settled", "mount_id", loader.ID())
		return state, false
	}

	return state, true
}
