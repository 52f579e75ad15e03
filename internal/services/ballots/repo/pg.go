package repo

import (
	"context"
	"errors"
	"time"

	"ballotbox/internal/modkit/repokit"
	perr "ballotbox/internal/platform/errors"
	"ballotbox/internal/platform/store"

	"github.com/google/uuid"
)

// Queries is the sql surface of the postgres backend
type Queries interface {
	Migrate(ctx context.Context) error
	Get(ctx context.Context, key string) (Row, error)
	Upsert(ctx context.Context, key string, raw []byte, batchID uuid.UUID, savedAt time.Time) error
	Delete(ctx context.Context, key string) error
}

// Row is one ballot_snapshots row
type Row struct {
	Records []byte
	BatchID string
	SavedAt time.Time
}

// queries implements Queries
type queries struct{ q repokit.Queryer }

// NewPGBinder binds Queries to the pool or an open transaction
func NewPGBinder() repokit.Binder[Queries] {
	return repokit.BindFunc[Queries](func(q repokit.Queryer) Queries { return &queries{q: q} })
}

func (r *queries) Migrate(ctx context.Context) error {
	const sql = `
create table if not exists ballot_snapshots (
	key text primary key,
	records jsonb not null,
	batch_id uuid,
	saved_at timestamptz not null default now()
)
`
	_, err := store.Exec(ctx, r.q, sql)
	return err
}

func (r *queries) Get(ctx context.Context, key string) (Row, error) {
	const sql = `
select records::text, coalesce(batch_id::text, ''), saved_at
from ballot_snapshots
where key = $1
`
	return store.One(ctx, r.q, func(row store.Row) (Row, error) {
		var out Row
		var records string
		if err := row.Scan(&records, &out.BatchID, &out.SavedAt); err != nil {
			return Row{}, err
		}
		out.Records = []byte(records)
		return out, nil
	}, sql, key)
}

func (r *queries) Upsert(ctx context.Context, key string, raw []byte, batchID uuid.UUID, savedAt time.Time) error {
	const sql = `
insert into ballot_snapshots (key, records, batch_id, saved_at)
values ($1, $2::jsonb, nullif($3, '')::uuid, $4)
on conflict (key) do update
set records = excluded.records, batch_id = excluded.batch_id, saved_at = excluded.saved_at
`
	batch := ""
	if batchID != uuid.Nil {
		batch = batchID.String()
	}
	return store.ExecOne(ctx, r.q, sql, key, string(raw), batch, savedAt)
}

func (r *queries) Delete(ctx context.Context, key string) error {
	const sql = `delete from ballot_snapshots where key = $1`
	_, err := store.Exec(ctx, r.q, sql, key)
	return err
}

// PG stores the blob as a jsonb row keyed by blob key
type PG struct {
	db     repokit.TxRunner
	binder repokit.Binder[Queries]
	key    string
}

var _ Storage = (*PG)(nil)

// lockTimeout bounds how long a save waits on a concurrent writer's row lock
const lockTimeout = `set local lock_timeout = '5s'`

const saveAttempts = 2

// NewPG constructs the postgres backend
func NewPG(db repokit.TxRunner, binder repokit.Binder[Queries], key string) *PG {
	if db == nil {
		panic("ballots.repo.PG requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ballots.repo.PG requires a non nil binder")
	}
	if key == "" {
		key = DefaultKey
	}
	return &PG{db: db, binder: binder, key: key}
}

// Migrate creates the snapshot table when missing
func (p *PG) Migrate(ctx context.Context) error {
	return p.binder.Bind(p.db).Migrate(ctx)
}

// Load reads and decodes the row for the key
func (p *PG) Load(ctx context.Context) (Blob, bool, error) {
	row, err := p.binder.Bind(p.db).Get(ctx, p.key)
	if errors.Is(err, perr.ErrNotFound) {
		return Blob{}, false, nil
	}
	if err != nil {
		return Blob{}, false, perr.FromPostgres(err, "ballots: load snapshot")
	}
	recs, err := decode(row.Records)
	if err != nil {
		return Blob{}, true, err
	}
	b := Blob{SavedAt: row.SavedAt, Records: recs}
	if id, uerr := uuid.Parse(row.BatchID); uerr == nil {
		b.BatchID = id
	}
	return b, true, nil
}

// Save upserts the row in one transaction
// contention (deadlock, serialization, lock timeout) is retried up to saveAttempts times
func (p *PG) Save(ctx context.Context, b Blob) error {
	raw, err := encode(b.Records)
	if err != nil {
		return err
	}
	tx := repokit.WithBeginHooks(p.db, setLockTimeout)
	for attempt := 1; ; attempt++ {
		err = repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
			return p.binder.Bind(q).Upsert(ctx, p.key, raw, b.BatchID, b.SavedAt)
		})
		if err == nil || attempt >= saveAttempts || !perr.IsRetryable(err) {
			return perr.FromPostgres(err, "ballots: save snapshot")
		}
	}
}

// Clear deletes the row
func (p *PG) Clear(ctx context.Context) error {
	return perr.FromPostgres(p.binder.Bind(p.db).Delete(ctx, p.key), "ballots: clear snapshot")
}

func setLockTimeout(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, lockTimeout)
	return err
}
