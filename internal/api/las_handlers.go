package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/banshee-data/welllog/internal/curvestats"
	"github.com/banshee-data/welllog/internal/fsutil"
	"github.com/banshee-data/welllog/internal/httputil"
	"github.com/banshee-data/welllog/internal/las"
	"github.com/banshee-data/welllog/internal/logplot"
	"github.com/banshee-data/welllog/internal/units"
	"github.com/banshee-data/welllog/internal/version"
)

// documentSummary is the JSON view of a parsed document. The data matrix
// is summarised, not returned.
type documentSummary struct {
	WellID           string                    `json:"well_id,omitempty"`
	Version          string                    `json:"version"`
	Wrapped          bool                      `json:"wrapped"`
	Delimiter        las.Delimiter             `json:"delimiter"`
	NullValue        float64                   `json:"null_value"`
	Well             las.WellMetadata          `json:"well"`
	Range            las.DataRange             `json:"range"`
	IndexUnit        units.Unit                `json:"index_unit"`
	NumSamples       int                       `json:"num_samples"`
	EstimatedSamples *int                      `json:"estimated_samples,omitempty"`
	Curves           []las.CurveDefinition     `json:"curves"`
	Stats            []curvestats.CurveSummary `json:"stats"`
}

func summarise(doc *las.Document) documentSummary {
	out := documentSummary{
		Version:    doc.Version(),
		Wrapped:    doc.Wrapped(),
		Delimiter:  doc.Delimiter(),
		NullValue:  doc.NullValue(),
		Well:       doc.Well(),
		Range:      doc.Range(),
		IndexUnit:  doc.IndexUnit(),
		NumSamples: doc.NumSamples(),
		Curves:     doc.Curves(),
		Stats:      curvestats.Summarise(doc),
	}
	if n, ok := doc.EstimatedSamples(); ok {
		out.EstimatedSamples = &n
	}
	return out
}

func (s *Server) showVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, version.Get())
}

// readDocument parses the request body as LAS text. On failure the error
// response has already been written and ok is false.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (doc *las.Document, ok bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RequestTooLarge(w, "LAS body exceeds upload limit")
			return nil, false
		}
		httputil.BadRequest(w, "failed to read request body")
		return nil, false
	}

	text, err := fsutil.DecodeText(raw, s.opts.Encoding)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return nil, false
	}
	doc, err = las.Parse(fsutil.SplitLines(text), s.lookup)
	if err != nil {
		writeLASError(w, err)
		return nil, false
	}
	return doc, true
}

// writeLASError maps LAS and rendering failures to HTTP statuses.
func writeLASError(w http.ResponseWriter, err error) {
	var (
		parseErr  *las.ParseError
		decodeErr *las.DecodeError
	)
	switch {
	case errors.As(err, &parseErr):
		httputil.UnprocessableEntity(w, err.Error(), parseErr.Line)
	case errors.As(err, &decodeErr):
		httputil.UnprocessableEntity(w, err.Error(), decodeErr.Line)
	case errors.Is(err, las.ErrUnknownCurve), errors.Is(err, las.ErrNoCurvesSelected):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, logplot.ErrNoSamples):
		httputil.UnprocessableEntity(w, err.Error(), 0)
	default:
		httputil.InternalServerError(w, err.Error())
	}
}

// curvesParam reads ?curves=A,B,C. Blank entries are dropped; no
// parameter means every curve.
func curvesParam(r *http.Request) []string {
	var out []string
	for _, c := range strings.Split(r.URL.Query().Get("curves"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) parseLAS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	httputil.WriteJSONOK(w, summarise(doc))
}

func (s *Server) convertLAS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	s.writeLAS(w, doc, curvesParam(r), "")
}

func (s *Server) writeLAS(w http.ResponseWriter, doc *las.Document, selected []string, filename string) {
	lines, err := s.writer.Write(doc, selected)
	if err != nil {
		writeLASError(w, err)
		return
	}
	body := strings.Join(lines, "\n") + "\n"
	httputil.WriteBody(w, "text/plain; charset=utf-8", filename, strings.NewReader(body))
}
