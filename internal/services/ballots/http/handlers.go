// Package http provides http transport for ballots
package http

import (
	"fmt"
	"mime"
	stdhttp "net/http"
	"strconv"
	"time"

	"ballotbox/internal/adapters/workbook"
	"ballotbox/internal/modkit/httpkit"
	perr "ballotbox/internal/platform/errors"
	"ballotbox/internal/platform/logger"
	"ballotbox/internal/platform/net/middleware"
	"ballotbox/internal/services/ballots/domain"
	svc "ballotbox/internal/services/ballots/service"
)

// Options caps request bodies and guards the write routes
type Options struct {
	// MaxUpload is the multipart upload cap in bytes
	MaxUpload int64
	// MaxRows is the JSON table cap in bytes
	MaxRows int64
	// Auth guards ingestion and reset, nil leaves them open
	Auth middleware.AuthPort
}

// DefaultOptions matches CORE_BALLOTS_MAX_UPLOAD_MB=10 with no guard
var DefaultOptions = Options{MaxUpload: 10 << 20, MaxRows: 10 << 20}

// multipart parts above this spill to disk
const formMemory = 8 << 20

// Register mounts ballots endpoints on the given router
func Register(r httpkit.Router, s svc.Service, opt Options) {
	if opt.MaxUpload <= 0 {
		opt.MaxUpload = DefaultOptions.MaxUpload
	}
	if opt.MaxRows <= 0 {
		opt.MaxRows = DefaultOptions.MaxRows
	}
	h := &handlers{svc: s, opt: opt, now: time.Now}

	// ingestion
	httpkit.Protected(r, opt.Auth, func(w httpkit.Router) {
		httpkit.Post(w, "/upload", h.upload)
		httpkit.Post(w, "/rows", h.rows)
		httpkit.Post(w, "/reload", h.reload)
		httpkit.Delete(w, "/", h.reset)
	})

	// published state
	httpkit.Get(r, "/", h.snapshot)
	httpkit.Get(r, "/stats", h.stats)

	// browse views
	httpkit.Get(r, "/names", h.names)
	httpkit.Get(r, "/units", h.units)
	httpkit.Get(r, "/votes", h.votes)
	httpkit.Get(r, "/candidates/{candidate}/voters", h.voters)

	// blank workbook
	r.Get("/template", h.template)
}

type handlers struct {
	svc svc.Service
	opt Options
	now func() time.Time
}

// swagger:route POST /ballots/upload Ballots ballotsUpload
// @Summary Upload a ballot workbook
// @Description Replaces the published ballots with the first sheet of an .xlsx or .xls workbook
// @Tags Ballots
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook (.xlsx or .xls)"
// @Success 200 {object} domain.Report "ok"
// @Failure 400 {object} httpkit.Envelope "invalid structure"
// @Failure 413 {object} httpkit.Envelope "too large"
// @Failure 415 {object} httpkit.Envelope "unsupported file type"
// @Failure 422 {object} httpkit.Envelope "undecodable or no valid rows"
// @Security bearer
// @Router /ballots/upload [post]
func (h *handlers) upload(r *stdhttp.Request) (any, error) {
	r.Body = stdhttp.MaxBytesReader(nil, r.Body, h.opt.MaxUpload)
	if err := r.ParseMultipartForm(formMemory); err != nil {
		if httpkit.TooLarge(err) {
			return nil, perr.TooLargef("upload exceeds %d MB", h.opt.MaxUpload>>20)
		}
		return nil, perr.WithField(perr.InvalidArgf("expected a multipart form: %v", err), "file")
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("ballots: multipart cleanup failed")
		}
	}()

	f, fh, err := r.FormFile("file")
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("multipart field file is required"), "file")
	}
	defer func() { _ = f.Close() }()

	return h.svc.IngestWorkbook(r.Context(), domain.Upload{
		Filename:    fh.Filename,
		ContentType: uploadType(fh.Header.Get("Content-Type"), fh.Filename),
		Body:        f,
	})
}

// uploadType falls back to the extension when the client sent no useful type
func uploadType(declared, filename string) string {
	mt, _, _ := mime.ParseMediaType(declared)
	if mt == "" || mt == "application/octet-stream" {
		if byExt := workbook.TypeByExtension(filename); byExt != "" {
			return byExt
		}
	}
	return declared
}

// swagger:route POST /ballots/rows Ballots ballotsRows
// @Summary Ingest a raw table
// @Description Rows are objects keyed by header name, as a spreadsheet reader would produce them
// @Tags Ballots
// @Accept json
// @Produce json
// @Param payload body domain.RowsInput true "Raw table"
// @Success 200 {object} domain.Report "ok"
// @Failure 400 {object} httpkit.Envelope "invalid structure"
// @Failure 422 {object} httpkit.Envelope "no valid rows"
// @Security bearer
// @Router /ballots/rows [post]
func (h *handlers) rows(r *stdhttp.Request) (any, error) {
	in, err := httpkit.BodyLimit[domain.RowsInput](r, h.opt.MaxRows)
	if err != nil {
		return nil, err
	}
	return h.svc.IngestTable(r.Context(), in)
}

// swagger:route POST /ballots/reload Ballots ballotsReload
// @Summary Reload persisted ballots
// @Tags Ballots
// @Produce json
// @Success 200 {object} domain.Report "ok"
// @Security bearer
// @Router /ballots/reload [post]
func (h *handlers) reload(r *stdhttp.Request) (any, error) {
	return h.svc.Reload(r.Context())
}

// swagger:route DELETE /ballots Ballots ballotsReset
// @Summary Clear ballots
// @Tags Ballots
// @Produce json
// @Success 200 {object} domain.Snapshot "ok"
// @Security bearer
// @Router /ballots [delete]
func (h *handlers) reset(r *stdhttp.Request) (any, error) {
	if err := h.svc.Reset(r.Context()); err != nil {
		return nil, err
	}
	logger.C(r.Context()).Info().Str("by", httpkit.OperatorOr(r, "anonymous")).Msg("ballots: reset")
	return h.svc.Snapshot(), nil
}

// swagger:route GET /ballots Ballots ballotsSnapshot
// @Summary Published ballots
// @Tags Ballots
// @Produce json
// @Success 200 {object} domain.Snapshot "ok"
// @Router /ballots [get]
func (h *handlers) snapshot(_ *stdhttp.Request) (any, error) {
	return h.svc.Snapshot(), nil
}

// swagger:route GET /ballots/stats Ballots ballotsStats
// @Summary Aggregate statistics
// @Tags Ballots
// @Produce json
// @Success 200 {object} tally.Stats "ok"
// @Failure 404 {object} httpkit.Envelope "no data"
// @Router /ballots/stats [get]
func (h *handlers) stats(_ *stdhttp.Request) (any, error) {
	return h.svc.Stats()
}

// swagger:route GET /ballots/names Ballots ballotsNames
// @Summary Unique voter names
// @Tags Ballots
// @Produce json
// @Param q query string false "Case insensitive filter"
// @Param page query int false "1-based page"
// @Param page_size query int false "Page size, max 100"
// @Success 200 {object} tally.Page[string] "ok"
// @Router /ballots/names [get]
func (h *handlers) names(r *stdhttp.Request) (any, error) {
	q, err := httpkit.Query[domain.BrowseQuery](r)
	if err != nil {
		return nil, err
	}
	return h.svc.Names(q)
}

// swagger:route GET /ballots/units Ballots ballotsUnits
// @Summary Unique units
// @Tags Ballots
// @Produce json
// @Param q query string false "Case insensitive filter"
// @Param page query int false "1-based page"
// @Param page_size query int false "Page size, max 100"
// @Success 200 {object} tally.Page[string] "ok"
// @Router /ballots/units [get]
func (h *handlers) units(r *stdhttp.Request) (any, error) {
	q, err := httpkit.Query[domain.BrowseQuery](r)
	if err != nil {
		return nil, err
	}
	return h.svc.Units(q)
}

// swagger:route GET /ballots/votes Ballots ballotsVotes
// @Summary Every cast vote
// @Tags Ballots
// @Produce json
// @Param q query string false "Filter on name, unit or candidate"
// @Param page query int false "1-based page"
// @Param page_size query int false "Page size, max 100"
// @Success 200 {object} tally.Page[tally.Vote] "ok"
// @Router /ballots/votes [get]
func (h *handlers) votes(r *stdhttp.Request) (any, error) {
	q, err := httpkit.Query[domain.BrowseQuery](r)
	if err != nil {
		return nil, err
	}
	return h.svc.Votes(q)
}

// swagger:route GET /ballots/candidates/{candidate}/voters Ballots ballotsVoters
// @Summary Voters of one candidate
// @Tags Ballots
// @Produce json
// @Param candidate path string true "Candidate as written on the ballot"
// @Param q query string false "Filter on name or unit"
// @Param page query int false "1-based page"
// @Param page_size query int false "Page size, max 100"
// @Success 200 {object} tally.Page[ballot.Voter] "ok"
// @Failure 404 {object} httpkit.Envelope "unknown candidate"
// @Router /ballots/candidates/{candidate}/voters [get]
func (h *handlers) voters(r *stdhttp.Request) (any, error) {
	q, err := httpkit.Query[domain.BrowseQuery](r)
	if err != nil {
		return nil, err
	}
	return h.svc.Voters(httpkit.URLParam(r, "candidate"), q)
}

// swagger:route GET /ballots/template Ballots ballotsTemplate
// @Summary Blank upload workbook
// @Tags Ballots
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "workbook"
// @Router /ballots/template [get]
func (h *handlers) template(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	buf, err := h.svc.Template(h.now())
	if err != nil {
		httpkit.Handle(func(*stdhttp.Request) httpkit.Response { return httpkit.Error(err) })(w, r)
		return
	}
	w.Header().Set("Content-Type", workbook.MIMEXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", workbook.TemplateFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(stdhttp.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.C(r.Context()).Warn().Err(err).Msg("ballots: template write failed")
	}
}
