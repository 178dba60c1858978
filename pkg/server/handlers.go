package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bisegni/qprint/pkg/database"
	"github.com/bisegni/qprint/pkg/engine"
	"github.com/bisegni/qprint/pkg/export"
)

// Query string keys that select the data rather than shape the export.
const (
	keyDataset = "dataset"
	keyFile    = "file"
	keyQuery   = "q"
	keyMode    = "mode"
)

// httpError is an error with the status it should be reported with.
type httpError struct {
	status int
	reason string
	err    error
}

func (e *httpError) Error() string { return e.err.Error() }

func fail(status int, reason string, err error) *httpError {
	return &httpError{status: status, reason: reason, err: err}
}

// exportRequest is a parsed /export or /link request.
type exportRequest struct {
	opts     *export.Options
	source   string // "dataset" or "file"
	name     string
	sql      string
	prepared *engine.Prepared
}

// parseRequest validates the export parameters, resolves the input and plans
// the query. On failure the request is returned as far as it was parsed.
func (s *Server) parseRequest(r *http.Request) (*exportRequest, *httpError) {
	values := r.URL.Query()

	params := make(map[string]string)
	for k, v := range values {
		switch k {
		case keyDataset, keyFile, keyQuery, keyMode:
			continue
		}
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	opts, err := s.export.Options(params)
	if err != nil {
		return nil, fail(http.StatusBadRequest, "params", err)
	}
	req := &exportRequest{opts: opts, sql: values.Get(keyQuery)}

	if req.sql == "" {
		return req, fail(http.StatusBadRequest, "query", errors.New("missing q parameter"))
	}
	if s.cfg.MaxQueryLength > 0 && len(req.sql) > s.cfg.MaxQueryLength {
		return req, fail(http.StatusRequestEntityTooLarge, "query", fmt.Errorf("query longer than %d bytes", s.cfg.MaxQueryLength))
	}

	table, herr := s.resolveTable(values.Get(keyDataset), values.Get(keyFile), req)
	if herr != nil {
		return req, herr
	}

	req.prepared, err = s.executor.Prepare(req.sql, table, opts.Limit)
	if err != nil {
		return req, fail(http.StatusBadRequest, "query", err)
	}
	return req, nil
}

// resolveTable picks the input: a catalog dataset or a file under the data
// directory. A query may also name its dataset with FROM, in which case
// neither is required.
func (s *Server) resolveTable(dataset, file string, req *exportRequest) (database.Table, *httpError) {
	switch {
	case dataset != "" && file != "":
		return nil, fail(http.StatusBadRequest, "params", errors.New("dataset and file are mutually exclusive"))
	case dataset != "":
		t, err := s.catalog.GetTable(dataset)
		if err != nil {
			return nil, fail(http.StatusNotFound, "dataset", err)
		}
		req.source, req.name = keyDataset, dataset
		return t, nil
	case file != "":
		if s.cfg.DataDir == "" {
			return nil, fail(http.StatusForbidden, "file", errors.New("file access is disabled"))
		}
		if !filepath.IsLocal(file) {
			return nil, fail(http.StatusBadRequest, "file", fmt.Errorf("file %q is outside the data directory", file))
		}
		if ext := filepath.Ext(file); ext != ".json" && ext != ".jsonl" {
			return nil, fail(http.StatusBadRequest, "file", fmt.Errorf("file %q is not .json or .jsonl", file))
		}
		path := filepath.Join(s.cfg.DataDir, file)
		if _, err := os.Stat(path); err != nil {
			return nil, fail(http.StatusNotFound, "file", fmt.Errorf("file %q not found", file))
		}
		req.source, req.name = keyFile, file
		return database.NewJSONTable(path), nil
	}
	return nil, nil
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, herr := s.parseRequest(r)
	if herr != nil {
		s.reject(w, r, herr, req)
		return
	}

	res, err := req.prepared.Open(req.opts.MainLabel)
	if err != nil {
		s.reject(w, r, fail(http.StatusInternalServerError, "scan", err), req)
		return
	}
	defer res.Close()

	printer, err := export.NewPrinter(req.opts, nil)
	if err != nil {
		s.reject(w, r, fail(http.StatusBadRequest, "params", err), req)
		return
	}
	// Buffer the whole body so that a scan error still yields an error status
	out, err := printer.Print(res, export.ModeFile)
	if err != nil {
		s.reject(w, r, fail(http.StatusUnprocessableEntity, "scan", err), req)
		return
	}
	doc := out.(*export.Document)

	w.Header().Set("Content-Type", mime.FormatMediaType(doc.MimeType, map[string]string{"charset": "utf-8"}))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	if _, err := w.Write([]byte(doc.Text)); err != nil {
		s.logger.WarnContext(r.Context(), "write failed", "error", err, "request_id", RequestID(r.Context()))
		return
	}

	s.metrics.RecordExport(string(req.opts.Format), export.ModeFile.String(), doc.Rows, len(doc.Text), time.Since(start))
	s.logger.InfoContext(r.Context(), "export materialized",
		"format", req.opts.Format,
		"rows", doc.Rows,
		"bytes", len(doc.Text),
		"request_id", RequestID(r.Context()),
	)
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, herr := s.parseRequest(r)
	if herr != nil {
		s.reject(w, r, herr, req)
		return
	}

	mode := export.ModeHTML
	if m := r.URL.Query().Get(keyMode); m != "" {
		parsed, err := export.ParseOutputMode(m)
		if err != nil || parsed == export.ModeFile {
			s.reject(w, r, fail(http.StatusBadRequest, "params", fmt.Errorf("mode must be html or wiki, got %q", m)), req)
			return
		}
		mode = parsed
	}

	links := s.links
	if req.source != "" {
		links = links.With(req.source, req.name)
	}
	printer, err := export.NewPrinter(req.opts, links.With(keyQuery, req.sql))
	if err != nil {
		s.reject(w, r, fail(http.StatusBadRequest, "params", err), req)
		return
	}
	// Link modes never read the result
	out, err := printer.Print(nil, mode)
	if err != nil {
		s.reject(w, r, fail(http.StatusInternalServerError, "link", err), req)
		return
	}
	l := out.(*export.Link)

	if l.HTML {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	fmt.Fprint(w, l.Text)
	s.metrics.RecordExport(string(req.opts.Format), mode.String(), 0, 0, time.Since(start))
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"datasets": s.catalog.Names()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request, herr *httpError, req *exportRequest) {
	format := "unknown"
	if req != nil && req.opts != nil {
		format = string(req.opts.Format)
	}
	s.metrics.RecordFailure(format, herr.reason)
	s.logger.WarnContext(r.Context(), "export rejected",
		"status", herr.status,
		"reason", herr.reason,
		"error", herr.err,
		"request_id", RequestID(r.Context()),
	)
	http.Error(w, herr.Error(), herr.status)
}
