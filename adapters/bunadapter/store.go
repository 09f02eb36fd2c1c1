package bunadapter

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-accessgate/store"
)

// DefaultTable is the default table name for persisted selections.
const DefaultTable = "user_selections"

// ErrDBRequired indicates the underlying Bun DB is missing.
var ErrDBRequired = errors.New("bunadapter: db is required")

// ErrUserIDRequired indicates a missing user id.
var ErrUserIDRequired = errors.New("bunadapter: user id required")

// Store persists tenant/project selections per user through Bun.
type Store struct {
	db    bun.IDB
	table string
	now   func() time.Time
}

// Option customizes the Bun store adapter.
type Option func(*Store)

// NewStore constructs a new Bun-backed selection store.
func NewStore(db bun.IDB, opts ...Option) *Store {
	adapter := &Store{
		db:    db,
		table: DefaultTable,
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(adapter)
		}
	}
	if adapter.table == "" {
		adapter.table = DefaultTable
	}
	if adapter.now == nil {
		adapter.now = time.Now
	}
	return adapter
}

// WithTable sets the table name used for selections.
func WithTable(table string) Option {
	return func(adapter *Store) {
		if adapter == nil {
			return
		}
		adapter.table = strings.TrimSpace(table)
	}
}

// WithNowFunc overrides the timestamp function used for updates.
func WithNowFunc(now func() time.Time) Option {
	return func(adapter *Store) {
		if adapter == nil {
			return
		}
		adapter.now = now
	}
}

// SelectionRecord maps to the user_selections table. The tenant identifier
// and project id always change as a pair.
type SelectionRecord struct {
	bun.BaseModel    `bun:"table:user_selections"`
	UserID           string    `bun:"user_id,pk"`
	TenantIdentifier string    `bun:"tenant_identifier,nullzero"`
	ProjectID        *int64    `bun:"project_id,nullzero"`
	UpdatedAt        time.Time `bun:"updated_at,nullzero"`
}

// Load implements store.Store.
func (s *Store) Load(ctx context.Context, userID string) (store.Record, bool, error) {
	if s == nil || s.db == nil {
		return store.Record{}, false, ErrDBRequired
	}
	userID, err := normalizeUserID(userID)
	if err != nil {
		return store.Record{}, false, err
	}
	record := SelectionRecord{}
	query := s.db.NewSelect().Model(&record).
		Where("user_id = ?", userID).
		Limit(1)
	if s.table != "" {
		query = query.TableExpr(s.table)
	}
	if err := query.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Record{}, false, nil
		}
		return store.Record{}, false, err
	}
	return store.Record{
		TenantIdentifier: record.TenantIdentifier,
		ProjectID:        record.ProjectID,
	}, true, nil
}

// Save implements store.Store.
func (s *Store) Save(ctx context.Context, userID string, rec store.Record) error {
	if s == nil || s.db == nil {
		return ErrDBRequired
	}
	userID, err := normalizeUserID(userID)
	if err != nil {
		return err
	}
	record := SelectionRecord{
		UserID:           userID,
		TenantIdentifier: rec.TenantIdentifier,
		ProjectID:        rec.ProjectID,
		UpdatedAt:        s.now(),
	}
	query := s.db.NewInsert().Model(&record).
		On("CONFLICT (user_id) DO UPDATE").
		Set("tenant_identifier = EXCLUDED.tenant_identifier").
		Set("project_id = EXCLUDED.project_id").
		Set("updated_at = EXCLUDED.updated_at")
	if s.table != "" {
		query = query.TableExpr(s.table)
	}
	_, err = query.Exec(ctx)
	return err
}

// Clear implements store.Store.
func (s *Store) Clear(ctx context.Context, userID string) error {
	if s == nil || s.db == nil {
		return ErrDBRequired
	}
	userID, err := normalizeUserID(userID)
	if err != nil {
		return err
	}
	query := s.db.NewDelete().
		Where("user_id = ?", userID)
	if s.table != "" {
		query = query.TableExpr(s.table)
	}
	_, err = query.Exec(ctx)
	return err
}

func normalizeUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrUserIDRequired
	}
	return userID, nil
}

var _ store.Store = (*Store)(nil)
