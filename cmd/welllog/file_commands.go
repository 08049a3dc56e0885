package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/banshee-data/welllog/internal/config"
	"github.com/banshee-data/welllog/internal/curvestats"
	"github.com/banshee-data/welllog/internal/fsutil"
	"github.com/banshee-data/welllog/internal/ingest"
	"github.com/banshee-data/welllog/internal/las"
	"github.com/banshee-data/welllog/internal/logplot"
)

func readDocument(cfg *config.ToolConfig, path, encoding string) *las.Document {
	if encoding == "" {
		encoding = cfg.GetInputEncoding()
	}
	doc, err := ingest.ParseFile(fsutil.OSFileSystem{}, path, ingest.Options{
		Lookup:   loadLookup(cfg),
		Encoding: encoding,
	})
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}
	return doc
}

func handleInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	encoding := fs.String("encoding", "", "Input encoding: auto, utf-8, latin1, windows-1252")
	asJSON := fs.Bool("json", false, "Print the header as JSON")
	fs.Parse(args)
	requireArgs(fs, 1, "a LAS file")

	doc := readDocument(loadToolConfig(), fs.Arg(0), *encoding)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Header las.Header            `json:"header"`
			Curves []las.CurveDefinition `json:"curves"`
		}{doc.Header(), doc.Curves()}); err != nil {
			log.Fatalf("Failed to encode header: %v", err)
		}
		return
	}
	printInfo(os.Stdout, doc)
}

func printInfo(w io.Writer, doc *las.Document) {
	well := doc.Well()
	fmt.Fprintf(w, "Version:    %s (wrapped: %v, delimiter: %s)\n", doc.Version(), doc.Wrapped(), doc.Delimiter())
	fmt.Fprintf(w, "Well:       %s\n", well.Name)
	if well.Company != "" {
		fmt.Fprintf(w, "Company:    %s\n", well.Company)
	}
	if well.Field != "" {
		fmt.Fprintf(w, "Field:      %s\n", well.Field)
	}
	if well.Country != las.CountryUnknown {
		fmt.Fprintf(w, "Country:    %s\n", well.Country)
	}
	if well.ServiceDate != nil {
		fmt.Fprintf(w, "Date:       %s\n", well.ServiceDate.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "Null:       %g\n", doc.NullValue())
	fmt.Fprintf(w, "Index unit: %s\n", doc.IndexUnit().Name)

	samples := fmt.Sprintf("%d", doc.NumSamples())
	if est, ok := doc.EstimatedSamples(); ok && est != doc.NumSamples() {
		samples += fmt.Sprintf(" (header implies %d)", est)
	}
	fmt.Fprintf(w, "Samples:    %s\n\n", samples)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MNEMONIC\tFILE UNIT\tUNIT\tDESCRIPTION")
	for _, c := range doc.Curves() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Mnemonic, c.FileUnit, c.Unit.Name, c.Comment)
	}
	tw.Flush()
}

func handleConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	curves := fs.String("curves", "", "Comma separated curves to keep (default all)")
	output := fs.String("o", "", "Output path (default stdout)")
	encoding := fs.String("encoding", "", "Input encoding: auto, utf-8, latin1, windows-1252")
	width := fs.Int("width", 0, "Data column width (default from config)")
	precision := fs.Int("precision", 0, "Minimum decimals written; negative for shortest exact form (default from config)")
	fs.Parse(args)
	requireArgs(fs, 1, "a LAS file")

	cfg := loadToolConfig()
	doc := readDocument(cfg, fs.Arg(0), *encoding)

	opts := las.WriterOptions{ColumnWidth: cfg.GetColumnWidth(), Precision: cfg.GetPrecision()}
	if *width > 0 {
		opts.ColumnWidth = *width
	}
	if *precision != 0 {
		opts.Precision = *precision
	}
	lines, err := las.NewWriter(opts).Write(doc, splitCurves(*curves))
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
	log.Printf("Wrote %d lines (%d samples) to %s", len(lines), doc.NumSamples(), *output)
}

func handleStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	curves := fs.String("curves", "", "Comma separated curves (default all)")
	encoding := fs.String("encoding", "", "Input encoding: auto, utf-8, latin1, windows-1252")
	asJSON := fs.Bool("json", false, "Print statistics as JSON")
	fs.Parse(args)
	requireArgs(fs, 1, "a LAS file")

	doc := readDocument(loadToolConfig(), fs.Arg(0), *encoding)
	summaries, err := selectSummaries(doc, splitCurves(*curves))
	if err != nil {
		log.Fatal(err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaries); err != nil {
			log.Fatalf("Failed to encode statistics: %v", err)
		}
		return
	}
	printStats(os.Stdout, summaries)
}

func selectSummaries(doc *las.Document, names []string) ([]curvestats.CurveSummary, error) {
	if len(names) == 0 {
		return curvestats.Summarise(doc), nil
	}
	out := make([]curvestats.CurveSummary, 0, len(names))
	for _, name := range names {
		s, ok := curvestats.SummariseCurve(doc, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", las.ErrUnknownCurve, name)
		}
		out = append(out, s)
	}
	return out, nil
}

func printStats(w io.Writer, summaries []curvestats.CurveSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CURVE\tUNIT\tCOUNT\tNULLS\tMIN\tP10\tP50\tP90\tMAX\tMEAN\tSTDDEV\t")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t\n",
			s.Mnemonic, s.Unit, s.Count, s.Nulls, s.Min, s.P10, s.P50, s.P90, s.Max, s.Mean, s.StdDev)
	}
	tw.Flush()
}

func handlePlot(args []string) {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	curves := fs.String("curves", "", "Comma separated curves to draw (default all but depth)")
	output := fs.String("o", "", "Output path ending in .png or .html (required)")
	encoding := fs.String("encoding", "", "Input encoding: auto, utf-8, latin1, windows-1252")
	width := fs.Float64("width", 0, "PNG width in inches (default from config)")
	height := fs.Float64("height", 0, "PNG height in inches (default from config)")
	fs.Parse(args)
	requireArgs(fs, 1, "a LAS file")
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg := loadToolConfig()
	doc := readDocument(cfg, fs.Arg(0), *encoding)
	w, h := cfg.GetPlotWidthIn(), cfg.GetPlotHeightIn()
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}

	if err := renderPlot(*output, doc, splitCurves(*curves), w, h); err != nil {
		log.Fatalf("Failed to plot: %v", err)
	}
	log.Printf("Wrote %s", *output)
}

// renderPlot picks PNG tracks or an HTML chart from the output extension.
func renderPlot(path string, doc *las.Document, curves []string, widthIn, heightIn float64) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".html" && ext != ".htm" {
		return fmt.Errorf("unsupported plot format %q (want .png or .html)", ext)
	}

	f, err := fsutil.OSFileSystem{}.Create(path)
	if err != nil {
		return err
	}
	if ext == ".png" {
		err = logplot.RenderPNG(f, doc, curves, widthIn, heightIn)
	} else {
		err = logplot.RenderHTML(f, doc, curves, logplot.ChartOptions{})
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
