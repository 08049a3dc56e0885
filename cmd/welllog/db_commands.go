package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/banshee-data/welllog/internal/api"
	"github.com/banshee-data/welllog/internal/config"
	"github.com/banshee-data/welllog/internal/db"
	"github.com/banshee-data/welllog/internal/fsutil"
	"github.com/banshee-data/welllog/internal/ingest"
	"github.com/banshee-data/welllog/internal/las"
)

func openStore(cfg *config.ToolConfig, path string) (*db.DB, *db.WellStore) {
	if path == "" {
		path = cfg.GetDBPath()
	}
	database, err := db.NewDB(path)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", path, err)
	}
	return database, db.NewWellStore(database)
}

// expandInputs resolves glob patterns; plain paths pass through so that a
// missing file is reported per file rather than silently dropped.
func expandInputs(fsys fsutil.FileSystem, args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			out = append(out, arg)
			continue
		}
		matches, err := fsys.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			log.Printf("No files match %s", arg)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func handleImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath := fs.String("db", "", "Database path (default from config)")
	workers := fs.Int("workers", 0, "Files parsed at once (default from config)")
	encoding := fs.String("encoding", "", "Input encoding: auto, utf-8, latin1, windows-1252")
	fs.Parse(args)
	requireArgs(fs, 1, "at least one LAS file or glob")

	cfg := loadToolConfig()
	fsys := fsutil.OSFileSystem{}
	paths, err := expandInputs(fsys, fs.Args())
	if err != nil {
		log.Fatal(err)
	}

	database, store := openStore(cfg, *dbPath)
	defer database.Close()

	opts := ingest.Options{
		Lookup:   loadLookup(cfg),
		Encoding: cfg.GetInputEncoding(),
		Workers:  cfg.GetWorkers(),
	}
	if *encoding != "" {
		opts.Encoding = *encoding
	}
	if *workers > 0 {
		opts.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results := ingest.ImportFiles(ctx, fsys, paths, opts, store)
	for _, r := range results {
		if r.Err != nil {
			log.Printf("✗ %v", r.Err)
			continue
		}
		log.Printf("✓ %s → %s (%d curves, %d samples)", r.Path, r.WellID, r.Doc.NumCurves(), r.Doc.NumSamples())
	}

	failed := ingest.Failed(results)
	log.Printf("Imported %d of %d files", len(results)-failed, len(results))
	if failed > 0 {
		os.Exit(1)
	}
}

func handleList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", "", "Database path (default from config)")
	fs.Parse(args)

	database, store := openStore(loadToolConfig(), *dbPath)
	defer database.Close()

	wells, err := store.List()
	if err != nil {
		log.Fatalf("Failed to list wells: %v", err)
	}
	printWells(os.Stdout, wells)
}

func printWells(w io.Writer, wells []db.WellRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWELL\tCOUNTRY\tCURVES\tSAMPLES\tIMPORTED\tSOURCE")
	for _, r := range wells {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			r.ID, r.Well.Name, r.Well.Country, r.NumCurves, r.NumSamples,
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.SourcePath)
	}
	tw.Flush()
}

func handleExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath := fs.String("db", "", "Database path (default from config)")
	curves := fs.String("curves", "", "Comma separated curves to keep (default all)")
	output := fs.String("o", "", "Output path (default stdout)")
	fs.Parse(args)
	requireArgs(fs, 1, "a well ID")

	cfg := loadToolConfig()
	database, store := openStore(cfg, *dbPath)
	defer database.Close()

	doc, err := store.LoadDocument(fs.Arg(0))
	if errors.Is(err, db.ErrNotFound) {
		log.Fatalf("No well with ID %s", fs.Arg(0))
	}
	if err != nil {
		log.Fatalf("Failed to load well: %v", err)
	}

	w := las.NewWriter(las.WriterOptions{ColumnWidth: cfg.GetColumnWidth(), Precision: cfg.GetPrecision()})
	lines, err := w.Write(doc, splitCurves(*curves))
	if err != nil {
		log.Fatalf("Failed to write LAS: %v", err)
	}
	if *output == "" {
		fmt.Println(strings.Join(lines, "\n"))
		return
	}
	if err := fsutil.WriteLines(fsutil.OSFileSystem{}, *output, lines); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}
	log.Printf("Exported %s to %s", fs.Arg(0), *output)
}

func handleServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := fs.String("db", "", "Database path (default from config)")
	listen := fs.String("listen", "", "Listen address (default from config)")
	admin := fs.Bool("admin", true, "Mount tailsql and backup routes under /debug/")
	assetsHost := fs.String("assets-host", "", "Override the chart JavaScript CDN")
	fs.Parse(args)

	cfg := loadToolConfig()
	addr := cfg.GetListen()
	if *listen != "" {
		addr = *listen
	}

	database, store := openStore(cfg, *dbPath)
	defer database.Close()

	opts := api.Options{
		Writer:          las.WriterOptions{ColumnWidth: cfg.GetColumnWidth(), Precision: cfg.GetPrecision()},
		Encoding:        cfg.GetInputEncoding(),
		ChartAssetsHost: *assetsHost,
		PlotWidthIn:     cfg.GetPlotWidthIn(),
		PlotHeightIn:    cfg.GetPlotHeightIn(),
	}
	if *admin {
		opts.Admin = database
	}
	server := &http.Server{
		Addr:    addr,
		Handler: api.NewServer(store, loadLookup(cfg), opts).Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	case <-ctx.Done():
	}

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Printf("Graceful shutdown complete")
}
