package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/store"

	_ "modernc.org/sqlite"
)

// ensure backend implements store.Store
var _ store.Store = (*Backend)(nil)

type Backend struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at path and runs
// migrations. Use ":memory:" for tests.
func Open(path string) (*Backend, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	if path == ":memory:" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite wants a single writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Backend{db: db}, nil
}

func migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  token TEXT NOT NULL DEFAULT '',
  target_location TEXT NOT NULL DEFAULT '',
  target_industry TEXT NOT NULL DEFAULT '',
  leads_per_search INTEGER NOT NULL DEFAULT 20,
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS leads (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  business_name TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  website TEXT NOT NULL DEFAULT '',
  rating REAL,
  review_count INTEGER NOT NULL DEFAULT 0,
  maps_url TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  place_id TEXT NOT NULL,
  status TEXT NOT NULL,
  priority TEXT NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  search_query TEXT NOT NULL DEFAULT '',
  found_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_token
ON users(token)
WHERE token != '';
`); err != nil {
		return err
	}

	// The dedup contract: one lead per (user, place).
	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_leads_user_place
ON leads(user_id, place_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_leads_status
ON leads(status);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *Backend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *Backend) EnsureUser(ctx context.Context, u domain.User) error {
	_, err := b.db.ExecContext(ctx, `
INSERT INTO users (id, name, token, target_location, target_industry, leads_per_search, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name,
  token = excluded.token,
  target_location = excluded.target_location,
  target_industry = excluded.target_industry,
  leads_per_search = excluded.leads_per_search;`,
		u.ID, u.Name, u.Token,
		u.Preferences.TargetLocation, u.Preferences.TargetIndustry, u.Preferences.LeadsPerSearch,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

func (b *Backend) UserIDForToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", store.ErrNotFound
	}
	var id string
	err := b.db.QueryRowContext(ctx, `SELECT id FROM users WHERE token = ? LIMIT 1;`, token).Scan(&id)
	if err == sql.ErrNoRows {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("token lookup: %w", err)
	}
	return id, nil
}

func (b *Backend) Preferences(ctx context.Context, userID string) (domain.SearchPreferences, error) {
	var p domain.SearchPreferences
	err := b.db.QueryRowContext(ctx, `
SELECT target_location, target_industry, leads_per_search
FROM users WHERE id = ? LIMIT 1;`, userID).
		Scan(&p.TargetLocation, &p.TargetIndustry, &p.LeadsPerSearch)
	if err == sql.ErrNoRows {
		return p, store.ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("preferences: %w", err)
	}
	return p, nil
}

func (b *Backend) SavePreferences(ctx context.Context, userID string, p domain.SearchPreferences) error {
	res, err := b.db.ExecContext(ctx, `
UPDATE users
SET target_location = ?, target_industry = ?, leads_per_search = ?
WHERE id = ?;`,
		p.TargetLocation, p.TargetIndustry, p.LeadsPerSearch, userID)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b *Backend) InsertLeadIfNew(ctx context.Context, l *domain.Lead) (added bool, err error) {
	// relies on unique index on (user_id, place_id)
	_, err = b.db.ExecContext(ctx, `
INSERT OR IGNORE INTO leads
  (id, user_id, business_name, address, phone, website, rating, review_count,
   maps_url, category, place_id, status, priority, note, search_query, found_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		l.ID, l.UserID, l.BusinessName, l.Address, l.Phone, l.Website,
		l.Rating, l.ReviewCount, l.MapsURL, l.Category, l.PlaceID,
		l.Status, l.Priority, l.Note, l.SearchQuery,
		l.FoundAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert lead: %w", err)
	}

	// changes() says whether OR IGNORE actually wrote a row.
	var changes int
	if e := b.db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

const leadColumns = `id, user_id, business_name, address, phone, website, rating, review_count,
maps_url, category, place_id, status, priority, note, search_query, found_at`

func (b *Backend) ListLeads(ctx context.Context, opts store.ListLeadsOpts) ([]domain.Lead, error) {
	// whitelist sort columns (prevents SQL injection)
	sortCol := map[string]string{
		"found_at": "found_at DESC",
		"name":     "business_name ASC",
		"rating":   "rating DESC",
		"priority": "priority ASC", // HIGH sorts before MEDIUM
	}[opts.Sort]
	if sortCol == "" {
		sortCol = "found_at DESC"
	}
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	args := []any{}
	if opts.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, opts.UserID)
	}
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, opts.Status)
	}
	if opts.HasWebsite != nil {
		if *opts.HasWebsite {
			query += ` AND website != ''`
		} else {
			query += ` AND website = ''`
		}
	}
	query += ` ORDER BY ` + sortCol + ` LIMIT ?;`
	args = append(args, opts.Limit)

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (b *Backend) GetLead(ctx context.Context, id string) (domain.Lead, error) {
	row := b.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ? LIMIT 1;`, id)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return domain.Lead{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func (b *Backend) UpdateLeadStatus(ctx context.Context, id, status, note string) error {
	res, err := b.db.ExecContext(ctx, `
UPDATE leads SET status = ?, note = ? WHERE id = ?;`, status, note, id)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b *Backend) DeleteLead(ctx context.Context, id string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}

func (b *Backend) CleanupOldLeads(ctx context.Context) (int64, error) {
	// found_at is stored as RFC3339, so the cutoff must use the same format
	res, err := b.db.ExecContext(ctx, `
DELETE FROM leads
WHERE found_at < strftime('%Y-%m-%dT%H:%M:%SZ', 'now', '-3 months');`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old leads: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(r rowScanner) (domain.Lead, error) {
	var l domain.Lead
	var rating sql.NullFloat64
	var foundAt string
	err := r.Scan(
		&l.ID, &l.UserID, &l.BusinessName, &l.Address, &l.Phone, &l.Website,
		&rating, &l.ReviewCount, &l.MapsURL, &l.Category, &l.PlaceID,
		&l.Status, &l.Priority, &l.Note, &l.SearchQuery, &foundAt,
	)
	if err != nil {
		return l, err
	}
	if rating.Valid {
		v := rating.Float64
		l.Rating = &v
	}
	l.FoundAt, _ = time.Parse(time.RFC3339, foundAt)
	return l, nil
}
