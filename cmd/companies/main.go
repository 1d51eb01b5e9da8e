package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/VxVxN/trendingcompanies/internal/application"
	"github.com/VxVxN/trendingcompanies/internal/config"
	"github.com/VxVxN/trendingcompanies/internal/directory"
	"github.com/VxVxN/trendingcompanies/internal/models"
	"github.com/VxVxN/trendingcompanies/internal/view"
)

var errFailedState = errors.New("companies could not be loaded")

type listOptions struct {
	apiURL string
	file   string
	asJSON bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "companies",
		Short:         "Browse trending companies from the companies API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCmd())
	return root
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch trending companies once and print them as cards",
		Long: `Fetch GET /api/companies once and print one card per company.

With --file, a JSON document in the same {"data": [...]} envelope is read
instead of calling the API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			if opts.apiURL != "" {
				cfg.APIBaseURL = opts.apiURL
			}

			logger := application.NewLogger(cfg, cmd.ErrOrStderr())

			err = runList(cmd.Context(), cfg, logger, opts, cmd.OutOrStdout())
			if err != nil && !errors.Is(err, errFailedState) {
				logger.Error("Command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.apiURL, "api-url", "", "base URL of the companies API (overrides API_BASE_URL)")
	cmd.Flags().StringVar(&opts.file, "file", "", "read companies from a JSON file instead of the API")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the fetch state as JSON")

	return cmd
}

func runList(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts *listOptions, out io.Writer) error {
	var fetcher directory.Fetcher

	if opts.file != "" {
		fetcher = fileFetcher(opts.file)
	} else {
		app, err := application.Init(cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()
		fetcher = app.Client
	}

	loader := directory.Start(ctx, fetcher, logger)
	defer loader.Close()

	state, err := loader.Wait(ctx)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			return err
		}
	} else if state.Failed() {
		fmt.Fprintf(out, "Error loading companies: %s\n", state.Err)
	} else if err := view.WriteCards(out, state.Companies); err != nil {
		return err
	}

	if state.Failed() {
		return errFailedState
	}
	return nil
}

// fileFetcher serves a static companies document through the Fetcher interface.
type fileFetcher string

func (f fileFetcher) FetchCompanies(ctx context.Context) ([]models.Company, error) {
	file, err := os.Open(string(f))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return directory.DecodeCompanies(file)
}
