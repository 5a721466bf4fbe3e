package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/FabioUrbina/rdkit/pkg/buildinfo"
	"github.com/FabioUrbina/rdkit/pkg/errors"
	molio "github.com/FabioUrbina/rdkit/pkg/io"
	"github.com/FabioUrbina/rdkit/pkg/moldraw"
	"github.com/FabioUrbina/rdkit/pkg/observability"
	"github.com/FabioUrbina/rdkit/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

type renderRequest struct {
	Document json.RawMessage `json:"document"`
	Options  json.RawMessage `json:"options,omitempty"`
}

type renderResponse struct {
	DocHash   string            `json:"doc_hash"`
	CacheHit  bool              `json:"cache_hit"`
	Metadata  *moldraw.Metadata `json:"metadata,omitempty"`
	Artifacts map[string][]byte `json:"artifacts"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pipeline.DefaultOptions())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)

	opts := pipeline.DefaultOptions()
	doc, err := s.decodeBody(ctx, r, &opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := renderQuery(r.URL.Query(), &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	release, err := s.acquire(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer release()

	res, err := s.runner.Execute(ctx, doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Doc-Hash", res.DocHash)
	w.Header().Set("X-Cache", cacheStatus(res.CacheHit))
	if len(opts.Formats) == 1 {
		f := opts.Formats[0]
		writeArtifact(w, f, res.Artifacts[f])
		return
	}
	resp := renderResponse{DocHash: res.DocHash, CacheHit: res.CacheHit, Artifacts: res.Artifacts}
	if !res.CacheHit {
		resp.Metadata = &res.Metadata
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)

	var opts pipeline.GraphOptions
	doc, err := s.decodeBody(ctx, r, &opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := graphQuery(r.URL.Query(), &opts); err != nil {
		s.writeError(w, r, err)
		return
	}

	release, err := s.acquire(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer release()

	refresh := r.URL.Query().Get("refresh") == "true"
	data, hit, err := s.runner.Graph(ctx, doc, opts, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	format := opts.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	writeArtifact(w, format, data)
}

// decodeBody reads the document, and for JSON bodies the options into
// opts, which must be a pointer.
func (s *Server) decodeBody(ctx context.Context, r *http.Request, opts any) (*molio.Document, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/bson") {
		return pipeline.Load(ctx, r.Body, molio.FormatBSON)
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
	}
	if len(req.Document) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request has no document")
	}
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, opts); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode options")
		}
	}
	return pipeline.Load(ctx, bytes.NewReader(req.Document), molio.FormatJSON)
}

// renderQuery applies query parameters over opts.
func renderQuery(q url.Values, opts *pipeline.Options) error {
	if v := q.Get("mode"); v != "" {
		opts.Mode = v
	}
	if v := q.Get("format"); v != "" {
		opts.Formats = strings.Split(v, ",")
	}
	if v := q.Get("legend"); v != "" {
		opts.Legend = v
	}
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"panel_width", &opts.PanelWidth},
		{"panel_height", &opts.PanelHeight},
		{"png_scale", &opts.PNGScale},
	} {
		if v := q.Get(p.name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidOptions, "invalid %s: %q", p.name, v)
			}
			*p.dst = f
		}
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"index", &opts.Index},
		{"columns", &opts.Columns},
	} {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidOptions, "invalid %s: %q", p.name, v)
			}
			*p.dst = n
		}
	}
	opts.Interactive = opts.Interactive || q.Get("interactive") == "true"
	opts.NoLegends = opts.NoLegends || q.Get("no_legends") == "true"
	opts.Refresh = q.Get("refresh") == "true"
	return nil
}

func graphQuery(q url.Values, opts *pipeline.GraphOptions) error {
	if v := q.Get("format"); v != "" {
		opts.Format = v
	}
	if v := q.Get("index"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidOptions, "invalid index: %q", v)
		}
		opts.Index = n
	}
	opts.Detailed = opts.Detailed || q.Get("detailed") == "true"
	opts.UseCoords = opts.UseCoords || q.Get("use_coords") == "true"
	return nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes it as JSON. Server-side
// failures are also reported to the error hook.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
		err = errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
	case stderrors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		status = 499 // client closed request
	}

	id := RequestID(r.Context())
	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), id, r.Method, r.URL.Path, err)
		s.logger.Error("request failed", "id", id, "path", r.URL.Path, "error", err)
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError && errors.GetCode(err) == "" {
		msg = fmt.Sprintf("internal error (request %s)", id)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: string(errors.GetCode(err)), RequestID: id})
}
