package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"rowpost/internal/config"
	"rowpost/internal/reportserver"
	"rowpost/internal/runstore"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "rowpost.yml", "Path to config file")
		addr := fs.String("addr", "", "Address to listen on (default: report.listen_addr)")
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
		if cfg.Store.Path == "" {
			fmt.Fprintln(stderr, "store.path is required for serving reports")
			return ExitError
		}
		listenAddr := *addr
		if listenAddr == "" {
			listenAddr = cfg.Report.ListenAddr
		}

		storePath := cfg.Store.Path
		if !filepath.IsAbs(storePath) {
			storePath = filepath.Join(filepath.Dir(*configPath), storePath)
		}
		store, err := runstore.Open(storePath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open store: %v\n", err)
			return ExitError
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(stdout, "Serving report at http://%s\n", listenAddr)
		if err := serveReport(ctx, reportserver.Config{Addr: listenAddr, Store: store}); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
