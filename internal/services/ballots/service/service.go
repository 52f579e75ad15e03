// Package service runs the ballot ingestion pipeline and serves the published aggregate
package service

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"time"

	"ballotbox/internal/adapters/workbook"
	"ballotbox/internal/core/ballot"
	"ballotbox/internal/core/tally"
	"ballotbox/internal/core/timestamp"
	perr "ballotbox/internal/platform/errors"
	"ballotbox/internal/platform/logger"
	ptime "ballotbox/internal/platform/time"
	"ballotbox/internal/services/ballots/domain"
	"ballotbox/internal/services/ballots/repo"

	"github.com/google/uuid"
)

// Service defines the ballots service contract
type Service interface {
	domain.ServicePort
}

// ErrNoData is returned by views that need a committed record set
var ErrNoData = perr.New(perr.ErrorCodeNotFound, "no ballot data loaded")

// Config tunes the pipeline
type Config struct {
	// Location is the zone text timestamps are read in, nil means time.Local
	Location *time.Location
	// Date1904 forces the 1904 date system for posted tables that do not say
	Date1904 bool
	// Decode limits workbook decoding
	Decode workbook.Options
	// PageSize is used when a browse query names none, 0 means tally.DefaultPageSize
	PageSize int

	// Now and NewID default to time.Now and uuid.New
	Now   func() time.Time
	NewID func() uuid.UUID
}

// State is one published record set with its aggregate
// a State is never mutated after it is stored
type State struct {
	Records   []ballot.VoterRecord
	Stats     tally.Stats
	HasData   bool
	BatchID   uuid.UUID
	Source    domain.Source
	UpdatedAt time.Time
}

func emptyState() *State {
	return &State{Records: []ballot.VoterRecord{}, Stats: tally.Aggregate(nil)}
}

// Svc implements Service
type Svc struct {
	store repo.Storage
	ts    *timestamp.Normalizer
	cfg   Config
	state atomic.Pointer[State]
}

var _ Service = (*Svc)(nil)

// New constructs the service with an empty published state
func New(st repo.Storage, cfg Config) *Svc {
	if st == nil {
		panic("ballots.Service requires a non nil Storage")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.New
	}
	s := &Svc{
		store: st,
		ts:    timestamp.New(timestamp.Options{Location: cfg.Location, Date1904: cfg.Date1904}),
		cfg:   cfg,
	}
	s.state.Store(emptyState())
	return s
}

// IngestWorkbook decodes the first sheet of an uploaded workbook and commits its rows
func (s *Svc) IngestWorkbook(ctx context.Context, up domain.Upload) (domain.Report, error) {
	rep := s.report(domain.SourceUpload)
	rep.Filename = up.Filename

	sheet, err := workbook.Decode(up.Body, up.ContentType, s.cfg.Decode)
	if err != nil {
		return s.fail(ctx, rep, err)
	}
	rep.Sheet = sheet.Name
	return s.ingest(ctx, rep, sheet.Table, s.ts.With1904(sheet.Date1904))
}

// IngestTable validates, normalizes and commits an already decoded table
func (s *Svc) IngestTable(ctx context.Context, in domain.RowsInput) (domain.Report, error) {
	rep := s.report(domain.SourceRows)
	return s.ingest(ctx, rep, in.Rows, s.ts.With1904(in.Date1904 || s.cfg.Date1904))
}

// IngestRecords commits canonical records as they are, skipping validation and normalization
func (s *Svc) IngestRecords(ctx context.Context, recs []ballot.VoterRecord) (domain.Report, error) {
	rep := s.report(domain.SourceRecords)
	rep.RowsRead = len(recs)
	rep.RowsAccepted = len(recs)
	return s.commit(ctx, rep, cloneRecords(recs))
}

// Reload publishes the persisted record set
// nothing persisted leaves the state alone; a corrupt blob is cleared along with the state
func (s *Svc) Reload(ctx context.Context) (domain.Report, error) {
	rep := s.report(domain.SourceStorage)
	log := s.log(ctx, rep)

	blob, found, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, repo.ErrCorrupt):
		log.Warn().Err(err).Msg("ballots: clearing corrupt stored data")
		if cerr := s.store.Clear(ctx); cerr != nil {
			return s.fail(ctx, rep, storageErr(cerr))
		}
		s.state.Store(emptyState())
		return rep, nil
	case err != nil:
		return s.fail(ctx, rep, storageErr(err))
	case !found || len(blob.Records) == 0:
		log.Debug().Msg("ballots: nothing stored")
		return rep, nil
	}

	if blob.BatchID != uuid.Nil {
		rep.BatchID = blob.BatchID.String()
	}
	at := blob.SavedAt
	if at.IsZero() {
		at = s.cfg.Now()
	}
	rep.RowsRead = len(blob.Records)
	rep.RowsAccepted = len(blob.Records)
	rep.HasData = true
	s.publish(blob.Records, rep, at)

	s.log(ctx, rep).Info().Int("records", rep.RowsAccepted).Msg("ballots: reloaded")
	return rep, nil
}

// Reset clears storage and the published state
func (s *Svc) Reset(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return storageErr(err)
	}
	s.state.Store(emptyState())
	logger.C(ctx).Info().Str("component", "ballots").Msg("ballots: reset")
	return nil
}

// Snapshot returns the published records and, when there are any, their aggregate
func (s *Svc) Snapshot() domain.Snapshot {
	st := s.state.Load()
	out := domain.Snapshot{HasData: st.HasData, Records: cloneRecords(st.Records)}
	if !st.HasData {
		return out
	}
	stats := st.Stats
	out.BatchID = st.BatchID.String()
	out.Source = st.Source
	out.UpdatedAt = ptime.Ptr(st.UpdatedAt)
	out.Stats = &stats
	return out
}

// Stats returns the published aggregate or ErrNoData
func (s *Svc) Stats() (tally.Stats, error) {
	st := s.state.Load()
	if !st.HasData {
		return tally.Stats{}, ErrNoData
	}
	return st.Stats, nil
}

// Names pages the unique voter names
func (s *Svc) Names(q domain.BrowseQuery) (tally.Page[string], error) {
	return s.state.Load().Stats.Names(q.Q, s.page(q)), nil
}

// Units pages the unique units
func (s *Svc) Units(q domain.BrowseQuery) (tally.Page[string], error) {
	return s.state.Load().Stats.Units(q.Q, s.page(q)), nil
}

// Votes pages every cast vote flattened with its voter
func (s *Svc) Votes(q domain.BrowseQuery) (tally.Page[tally.Vote], error) {
	return s.state.Load().Stats.Votes(q.Q, s.page(q)), nil
}

// Voters pages the roster of one candidate
func (s *Svc) Voters(candidate string, q domain.BrowseQuery) (tally.Page[ballot.Voter], error) {
	page, ok := s.state.Load().Stats.Voters(candidate, q.Q, s.page(q))
	if !ok {
		return tally.Page[ballot.Voter]{}, perr.WithField(perr.NotFoundf("candidate %q not found", candidate), "candidate")
	}
	return page, nil
}

// Template builds the blank upload workbook
func (s *Svc) Template(now time.Time) (*bytes.Buffer, error) {
	return workbook.Template(now.In(s.location()))
}

func (s *Svc) ingest(ctx context.Context, rep domain.Report, table ballot.RawTable, ts ballot.TimestampNormalizer) (domain.Report, error) {
	if err := ballot.Validate(table).Err(); err != nil {
		return s.fail(ctx, rep, err)
	}

	log := s.log(ctx, rep)
	rep.RowsRead = len(table)
	recs := make([]ballot.VoterRecord, 0, len(table))
	for i, row := range table {
		rec, err := ballot.NormalizeRow(row, ts)
		if err != nil {
			rep.RowsRejected++
			log.Debug().Int("row", i+1).Err(err).Msg("ballots: row rejected")
			continue
		}
		recs = append(recs, rec)
	}
	rep.RowsAccepted = len(recs)
	return s.commit(ctx, rep, recs)
}

// commit saves first so a failed save leaves the published state as it was
func (s *Svc) commit(ctx context.Context, rep domain.Report, recs []ballot.VoterRecord) (domain.Report, error) {
	if len(recs) == 0 {
		return s.fail(ctx, rep, ballot.Failf(ballot.ErrNoValidRows, "no valid rows: %d read, %d rejected", rep.RowsRead, rep.RowsRejected))
	}

	id, _ := uuid.Parse(rep.BatchID)
	now := s.cfg.Now()
	if err := s.store.Save(ctx, repo.Blob{BatchID: id, SavedAt: now, Records: recs}); err != nil {
		return s.fail(ctx, rep, storageErr(err))
	}

	rep.HasData = true
	s.publish(recs, rep, now)

	s.log(ctx, rep).Info().
		Int("read", rep.RowsRead).
		Int("accepted", rep.RowsAccepted).
		Int("rejected", rep.RowsRejected).
		Msg("ballots: committed")
	return rep, nil
}

func (s *Svc) publish(recs []ballot.VoterRecord, rep domain.Report, at time.Time) {
	id, _ := uuid.Parse(rep.BatchID)
	s.state.Store(&State{
		Records:   recs,
		Stats:     tally.Aggregate(recs),
		HasData:   true,
		BatchID:   id,
		Source:    rep.Source,
		UpdatedAt: at,
	})
}

// cloneRecords copies recs down to the Suara slices, published state shares nothing with callers
func cloneRecords(recs []ballot.VoterRecord) []ballot.VoterRecord {
	if recs == nil {
		return nil
	}
	out := slices.Clone(recs)
	for i := range out {
		out[i].Suara = slices.Clone(out[i].Suara)
	}
	return out
}

func (s *Svc) fail(ctx context.Context, rep domain.Report, err error) (domain.Report, error) {
	s.log(ctx, rep).Warn().
		Int("read", rep.RowsRead).
		Int("rejected", rep.RowsRejected).
		Err(err).
		Msg("ballots: ingestion failed")
	return rep, err
}

func (s *Svc) report(src domain.Source) domain.Report {
	return domain.Report{BatchID: s.cfg.NewID().String(), Source: src}
}

func (s *Svc) log(ctx context.Context, rep domain.Report) *logger.Logger {
	l := logger.C(ctx).With().
		Str("component", "ballots").
		Str("batch_id", rep.BatchID).
		Str("source", string(rep.Source)).
		Logger()
	return &l
}

func (s *Svc) page(q domain.BrowseQuery) tally.PageRequest {
	req := q.PageRequest()
	if req.Size == 0 {
		req.Size = s.cfg.PageSize
	}
	return req
}

func (s *Svc) location() *time.Location {
	if s.cfg.Location != nil {
		return s.cfg.Location
	}
	return time.Local
}

// storageErr keeps coded errors and marks the rest as an unavailable backend
func storageErr(err error) error {
	if _, ok := perr.As(err); ok {
		return err
	}
	return perr.Wrap(err, perr.ErrorCodeUnavailable, "ballot storage unavailable")
}
