package logplot

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/welllog/internal/las"
)

// ChartOptions controls the HTML chart page.
type ChartOptions struct {
	Title      string
	AssetsHost string // empty uses the go-echarts default CDN
	Width      string
	Height     string
}

// RenderHTML writes an interactive line chart with depth on the x axis and
// one series per curve. Null samples are left as gaps.
func RenderHTML(w io.Writer, doc *las.Document, mnemonics []string, o ChartOptions) error {
	axis, all, err := resolveSeries(doc, mnemonics)
	if err != nil {
		return err
	}
	if o.Width == "" {
		o.Width = "1200px"
	}
	if o.Height == "" {
		o.Height = "600px"
	}
	if o.Title == "" {
		o.Title = doc.Well().Name
	}

	initOpts := opts.Initialization{PageTitle: o.Title, Width: o.Width, Height: o.Height}
	if o.AssetsHost != "" {
		initOpts.AssetsHost = o.AssetsHost
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: fmt.Sprintf("curves=%d samples=%d", len(all), doc.NumSamples())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: axis, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)

	colors := generateColors(len(all))
	for _, s := range all {
		line.AddSeries(s.name, lineData(s))
	}
	palette := make([]string, len(colors))
	for i, c := range colors {
		palette[i] = hexColor(c)
	}
	line.SetGlobalOptions(charts.WithColorsOpts(opts.Colors(palette)))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// lineData pairs each sample with its depth. echarts reads "-" as missing.
func lineData(s series) []opts.LineData {
	data := make([]opts.LineData, len(s.value))
	for i, v := range s.value {
		d := s.depth[i]
		if s.null(v) || math.IsInf(v, 0) || s.null(d) {
			data[i] = opts.LineData{Value: []interface{}{d, "-"}}
			continue
		}
		data[i] = opts.LineData{Value: []interface{}{d, v}}
	}
	return data
}
