// Command welllog reads, normalises, stores and plots LAS well-log files.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/banshee-data/welllog/internal/config"
	"github.com/banshee-data/welllog/internal/las"
	"github.com/banshee-data/welllog/internal/units"
	"github.com/banshee-data/welllog/internal/version"
)

var (
	configPath = flag.String("config", "", "Path to a JSON tool config (defaults apply when empty)")
	verbose    = flag.Bool("v", false, "Log parser diagnostics to stderr")
	trace      = flag.Bool("trace", false, "Log per-record parser telemetry to stderr")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	configureLogging(os.Stderr, *verbose, *trace)

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "info":
		handleInfo(args)
	case "convert":
		handleConvert(args)
	case "stats":
		handleStats(args)
	case "plot":
		handlePlot(args)
	case "import":
		handleImport(args)
	case "list":
		handleList(args)
	case "export":
		handleExport(args)
	case "serve":
		handleServe(args)
	case "migrate":
		handleMigrate(args)
	case "version":
		fmt.Println(version.Get())
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`welllog - LAS well-log toolkit

Usage: welllog [-config file.json] [-v] [-trace] <command> [options]

Commands:
  info       Show header, curves and sample counts of a LAS file
  convert    Rewrite a LAS file as normalised LAS 2.0, optionally selecting curves
  stats      Print per-curve summary statistics
  plot       Draw curves against depth as PNG tracks or an HTML chart
  import     Parse LAS files and store them in the well database
  list       List wells in the database
  export     Write a stored well back out as LAS 2.0
  serve      Run the HTTP API over the well database
  migrate    Manage the well database schema (up, down, status, version, force)
  version    Show welllog version
  help       Show this help message

Examples:
  welllog info logs/15-9-19.las
  welllog convert -curves GR,RHOB -o out.las logs/15-9-19.las
  welllog plot -curves GR,NPHI -o tracks.png logs/15-9-19.las
  welllog import -workers 8 'logs/*.las'
  welllog serve -listen :8090`)
}

// configureLogging routes the parser's ops stream to w always, and its diag
// and trace streams only when asked.
func configureLogging(w io.Writer, diag, tr bool) {
	var diagW, traceW io.Writer
	if diag || tr {
		diagW = w
	}
	if tr {
		traceW = w
	}
	las.SetLogWriters(w, diagW, traceW)
}

func loadToolConfig() *config.ToolConfig {
	if *configPath == "" {
		return config.EmptyConfig()
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func loadLookup(cfg *config.ToolConfig) units.Lookup {
	if path := cfg.GetUnitCatalogue(); path != "" {
		cat, err := units.LoadCatalogueFile(path)
		if err != nil {
			log.Fatalf("Failed to load unit catalogue: %v", err)
		}
		return cat
	}
	cat, err := units.DefaultCatalogue()
	if err != nil {
		log.Fatalf("Failed to load built-in unit catalogue: %v", err)
	}
	return cat
}

// splitCurves parses a comma separated -curves flag.
func splitCurves(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// requireArgs exits with usage when fs has fewer than n positional args.
func requireArgs(fs *flag.FlagSet, n int, what string) {
	if fs.NArg() < n {
		fmt.Fprintf(os.Stderr, "Error: %s is required\n", what)
		fs.Usage()
		os.Exit(1)
	}
}
