package postgres

import (
	"context"
	"fmt"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ensure backend implements store.Store
var _ store.Store = (*Backend)(nil)

type Backend struct {
	pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	token TEXT NOT NULL DEFAULT '',
	target_location TEXT NOT NULL DEFAULT '',
	target_industry TEXT NOT NULL DEFAULT '',
	leads_per_search INTEGER NOT NULL DEFAULT 20,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	business_name TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	rating DOUBLE PRECISION,
	review_count INTEGER NOT NULL DEFAULT 0,
	maps_url TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	place_id TEXT NOT NULL,
	status TEXT NOT NULL,
	priority TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	search_query TEXT NOT NULL DEFAULT '',
	found_at TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, place_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_token ON users(token) WHERE token != '';
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
`

// Open connects to postgres, applies the schema and returns the backend.
func Open(ctx context.Context, dsn string) (*Backend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return &Backend{pool: pool}, nil
}

func (b *Backend) Close() error {
	b.pool.Close()
	return nil
}

func (b *Backend) EnsureUser(ctx context.Context, u domain.User) error {
	_, err := b.pool.Exec(ctx, `
INSERT INTO users (id, name, token, target_location, target_industry, leads_per_search)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  token = EXCLUDED.token,
  target_location = EXCLUDED.target_location,
  target_industry = EXCLUDED.target_industry,
  leads_per_search = EXCLUDED.leads_per_search;`,
		u.ID, u.Name, u.Token,
		u.Preferences.TargetLocation, u.Preferences.TargetIndustry, u.Preferences.LeadsPerSearch,
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
	err := b.pool.QueryRow(ctx, `SELECT id FROM users WHERE token = $1 LIMIT 1;`, token).Scan(&id)
	if err == pgx.ErrNoRows {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("token lookup: %w", err)
	}
	return id, nil
}

func (b *Backend) Preferences(ctx context.Context, userID string) (domain.SearchPreferences, error) {
	var p domain.SearchPreferences
	err := b.pool.QueryRow(ctx, `
SELECT target_location, target_industry, leads_per_search
FROM users WHERE id = $1 LIMIT 1;`, userID).
		Scan(&p.TargetLocation, &p.TargetIndustry, &p.LeadsPerSearch)
	if err == pgx.ErrNoRows {
		return p, store.ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("preferences: %w", err)
	}
	return p, nil
}

func (b *Backend) SavePreferences(ctx context.Context, userID string, p domain.SearchPreferences) error {
	tag, err := b.pool.Exec(ctx, `
UPDATE users
SET target_location = $1, target_industry = $2, leads_per_search = $3
WHERE id = $4;`,
		p.TargetLocation, p.TargetIndustry, p.LeadsPerSearch, userID)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b *Backend) InsertLeadIfNew(ctx context.Context, l *domain.Lead) (bool, error) {
	// the UNIQUE (user_id, place_id) constraint makes this a single
	// atomic conditional insert
	tag, err := b.pool.Exec(ctx, `
INSERT INTO leads
  (id, user_id, business_name, address, phone, website, rating, review_count,
   maps_url, category, place_id, status, priority, note, search_query, found_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (user_id, place_id) DO NOTHING;`,
		l.ID, l.UserID, l.BusinessName, l.Address, l.Phone, l.Website,
		l.Rating, l.ReviewCount, l.MapsURL, l.Category, l.PlaceID,
		l.Status, l.Priority, l.Note, l.SearchQuery, l.FoundAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert lead: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const leadColumns = `id, user_id, business_name, address, phone, website, rating, review_count,
maps_url, category, place_id, status, priority, note, search_query, found_at`

func (b *Backend) ListLeads(ctx context.Context, opts store.ListLeadsOpts) ([]domain.Lead, error) {
	sortCol := map[string]string{
		"found_at": "found_at DESC",
		"name":     "business_name ASC",
		"rating":   "rating DESC NULLS LAST",
		"priority": "priority ASC",
	}[opts.Sort]
	if sortCol == "" {
		sortCol = "found_at DESC"
	}
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	args := []any{}
	n := 1
	if opts.UserID != "" {
		query += fmt.Sprintf(` AND user_id = $%d`, n)
		args = append(args, opts.UserID)
		n++
	}
	if opts.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, n)
		args = append(args, opts.Status)
		n++
	}
	if opts.HasWebsite != nil {
		if *opts.HasWebsite {
			query += ` AND website != ''`
		} else {
			query += ` AND website = ''`
		}
	}
	query += ` ORDER BY ` + sortCol + fmt.Sprintf(` LIMIT $%d;`, n)
	args = append(args, opts.Limit)

	rows, err := b.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []domain.Lead
	for rows.Next() {
		var l domain.Lead
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.BusinessName, &l.Address, &l.Phone, &l.Website,
			&l.Rating, &l.ReviewCount, &l.MapsURL, &l.Category, &l.PlaceID,
			&l.Status, &l.Priority, &l.Note, &l.SearchQuery, &l.FoundAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (b *Backend) GetLead(ctx context.Context, id string) (domain.Lead, error) {
	var l domain.Lead
	err := b.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1 LIMIT 1;`, id).Scan(
		&l.ID, &l.UserID, &l.BusinessName, &l.Address, &l.Phone, &l.Website,
		&l.Rating, &l.ReviewCount, &l.MapsURL, &l.Category, &l.PlaceID,
		&l.Status, &l.Priority, &l.Note, &l.SearchQuery, &l.FoundAt,
	)
	if err == pgx.ErrNoRows {
		return domain.Lead{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func (b *Backend) UpdateLeadStatus(ctx context.Context, id, status, note string) error {
	tag, err := b.pool.Exec(ctx, `
UPDATE leads SET status = $1, note = $2 WHERE id = $3;`, status, note, id)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b *Backend) DeleteLead(ctx context.Context, id string) error {
	_, err := b.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}

func (b *Backend) CleanupOldLeads(ctx context.Context) (int64, error) {
	tag, err := b.pool.Exec(ctx, `
DELETE FROM leads WHERE found_at < now() - interval '3 months';`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old leads: %w", err)
	}
	return tag.RowsAffected(), nil
}
