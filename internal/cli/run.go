package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"rowpost/internal/config"
	"rowpost/internal/dataset"
	"rowpost/internal/runner"
	"rowpost/internal/runstore"
	"rowpost/internal/slots"
	"rowpost/internal/udf"
	"rowpost/internal/ui/live"
	"rowpost/pkg/rowbridge"
	"rowpost/pkg/rowbridge/httpclient"
)

// executeRun is a test seam for the run pipeline.
var executeRun = runner.Run

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "rowpost.yml", "Path to config file")
		uiMode := fs.String("ui", "auto", "UI mode: auto, live, or plain")
		noColor := fs.Bool("no-color", false, "Disable colored output")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		configDir := filepath.Dir(*configPath)
		inputPath := cfg.Run.Input
		if !filepath.IsAbs(inputPath) {
			inputPath = filepath.Join(configDir, inputPath)
		}
		rows, err := dataset.ReadFile(inputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read input: %v\n", err)
			return ExitError
		}

		client := httpclient.New()
		defer client.Close()
		bridge, err := rowbridge.New(client, rowbridge.Options{
			Endpoint:    cfg.Endpoint.URL,
			ContentType: cfg.Endpoint.ContentType,
			Timeout:     time.Duration(cfg.Endpoint.RequestTimeoutMs) * time.Millisecond,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build bridge: %v\n", err)
			return ExitError
		}

		registry := udf.NewRegistry()
		if err := registry.Register("http_post", udf.HTTPPostFunc(bridge)); err != nil {
			fmt.Fprintf(stderr, "Failed to register functions: %v\n", err)
			return ExitError
		}
		fn, ok := registry.Lookup(cfg.Run.Function)
		if !ok {
			fmt.Fprintf(stderr, "Unknown function %q (registered: %v)\n", cfg.Run.Function, registry.Names())
			return ExitError
		}

		pool, err := slots.Build(cfg.Slots, cfg.Endpoint.URL)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build slots: %v\n", err)
			return ExitError
		}
		defer pool.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var observer runner.RunObserver
		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{NoColor: *noColor})
			observer = controller
		} else {
			observer = newPlainObserver(stdout)
		}

		results, err := executeRun(ctx, runner.Params{
			RunID:    runner.NewRunID(),
			Function: cfg.Run.Function,
			Endpoint: cfg.Endpoint.URL,
			Input:    cfg.Run.Input,
			Fn:       fn,
			Rows:     rows,
			Workers:  cfg.Run.Workers,
			Slots:    pool,
			Observer: observer,
		})
		if controller != nil {
			controller.Close()
			controller.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		if cfg.Store.Path != "" {
			storePath := cfg.Store.Path
			if !filepath.IsAbs(storePath) {
				storePath = filepath.Join(configDir, storePath)
			}
			store, err := runstore.Open(storePath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to open store: %v\n", err)
				return ExitError
			}
			defer store.Close()
			if err := store.SaveRun(ctx, results); err != nil {
				fmt.Fprintf(stderr, "Failed to save run: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Saved run to %s\n", storePath)
		}

		counts := results.Counts
		fmt.Fprintf(stdout, "Run %s completed: success=%d failure=%d timed_out=%d cancelled=%d\n",
			results.RunID, counts.Success, counts.Failure, counts.TimedOut, counts.Cancelled)
		if counts.Failure > 0 || counts.TimedOut > 0 || counts.Cancelled > 0 {
			return ExitError
		}
		return ExitOK
	}
}
