package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quill-labs/quill-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// the article, snapshot, and embedding store interfaces through
// wrapper types sharing one database handle.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.quill/data/quill.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".quill", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "quill.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ArticleStore returns an ArticleStore interface backed by this store.
func (s *Store) ArticleStore() driven.ArticleStore {
	return &articleStore{store: s}
}

// SnapshotStore returns a SnapshotStore interface backed by this store.
func (s *Store) SnapshotStore() driven.SnapshotStore {
	return &snapshotStore{store: s}
}

// EmbeddingStore returns an EmbeddingStore interface backed by this store.
func (s *Store) EmbeddingStore() driven.EmbeddingStore {
	return &embeddingStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Article Store ====================

// articleStore implements driven.ArticleStore.
type articleStore struct {
	store *Store
}

var _ driven.ArticleStore = (*articleStore)(nil)

// SaveArticle stores or updates an article.
func (s *articleStore) SaveArticle(ctx context.Context, article domain.Article) error {
	var publishedAt sql.NullTime
	if article.Date != nil {
		publishedAt = sql.NullTime{Time: article.Date.UTC(), Valid: true}
	}

	now := time.Now().UTC()
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO articles
			(id, platform, source_name, title, subtitle, url, content, published_at, word_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			platform = excluded.platform,
			source_name = excluded.source_name,
			title = excluded.title,
			subtitle = excluded.subtitle,
			url = excluded.url,
			content = excluded.content,
			published_at = excluded.published_at,
			word_count = excluded.word_count,
			updated_at = excluded.updated_at
	`, article.ID, string(article.Platform), article.SourceName, article.Title,
		article.Subtitle, article.URL, article.Content, publishedAt, article.WordCount, now, now)

	if err != nil {
		return fmt.Errorf("saving article: %w", err)
	}
	return nil
}

// GetArticle retrieves an article by ID.
func (s *articleStore) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, platform, source_name, title, subtitle, url, content, published_at, word_count
		FROM articles WHERE id = ?
	`, id)

	article, err := scanArticle(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning article: %w", err)
	}
	return article, nil
}

// HasArticle reports whether an article with the ID exists.
func (s *articleStore) HasArticle(ctx context.Context, id string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking article: %w", err)
	}
	return count > 0, nil
}

// ListArticles returns every stored article, ordered by ID.
func (s *articleStore) ListArticles(ctx context.Context) ([]domain.Article, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, platform, source_name, title, subtitle, url, content, published_at, word_count
		FROM articles ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article //nolint:prealloc // size unknown from query
	for rows.Next() {
		article, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		articles = append(articles, *article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating articles: %w", err)
	}

	return articles, nil
}

// scanArticle scans one article row via the given Scan function.
func scanArticle(scan func(dest ...any) error) (*domain.Article, error) {
	var article domain.Article
	var platform string
	var publishedAt sql.NullTime

	if err := scan(&article.ID, &platform, &article.SourceName, &article.Title,
		&article.Subtitle, &article.URL, &article.Content, &publishedAt, &article.WordCount); err != nil {
		return nil, err
	}

	article.Platform = domain.Platform(platform)
	if publishedAt.Valid {
		t := publishedAt.Time
		article.Date = &t
	}
	return &article, nil
}

// ==================== Snapshot Store ====================

// snapshotStore implements driven.SnapshotStore.
type snapshotStore struct {
	store *Store
}

var _ driven.SnapshotStore = (*snapshotStore)(nil)

// SaveSnapshot atomically replaces the snapshot for a cache key.
func (s *snapshotStore) SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	idsJSON, err := json.Marshal(snapshot.ArticleIDs)
	if err != nil {
		return fmt.Errorf("marshalling article ids: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO source_snapshots (cache_key, article_ids, last_fetch)
		VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			article_ids = excluded.article_ids,
			last_fetch = excluded.last_fetch
	`, snapshot.CacheKey, string(idsJSON), snapshot.LastFetch.UTC())

	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// GetSnapshot retrieves the snapshot for a cache key.
func (s *snapshotStore) GetSnapshot(ctx context.Context, cacheKey string) (*domain.Snapshot, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT cache_key, article_ids, last_fetch
		FROM source_snapshots WHERE cache_key = ?
	`, cacheKey)

	var snapshot domain.Snapshot
	var idsJSON string
	if err := row.Scan(&snapshot.CacheKey, &idsJSON, &snapshot.LastFetch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(idsJSON), &snapshot.ArticleIDs); err != nil {
		return nil, fmt.Errorf("unmarshalling article ids: %w", err)
	}

	return &snapshot, nil
}

// ==================== Embedding Store ====================

// embeddingStore implements driven.EmbeddingStore.
type embeddingStore struct {
	store *Store
}

var _ driven.EmbeddingStore = (*embeddingStore)(nil)

// PutEmbedding stores the embedding vector for an article.
func (s *embeddingStore) PutEmbedding(ctx context.Context, articleID string, embedding []float32) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO embeddings (article_id, vector)
		VALUES (?, ?)
		ON CONFLICT(article_id) DO UPDATE SET
			vector = excluded.vector
	`, articleID, float32SliceToBytes(embedding))

	if err != nil {
		return fmt.Errorf("saving embedding: %w", err)
	}
	return nil
}

// GetEmbedding retrieves the cached embedding for an article.
func (s *embeddingStore) GetEmbedding(ctx context.Context, articleID string) ([]float32, error) {
	var blob []byte
	err := s.store.db.QueryRowContext(ctx,
		"SELECT vector FROM embeddings WHERE article_id = ?", articleID).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning embedding: %w", err)
	}
	return bytesToFloat32Slice(blob), nil
}

// HasEmbedding reports whether an embedding exists for the article.
func (s *embeddingStore) HasEmbedding(ctx context.Context, articleID string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM embeddings WHERE article_id = ?", articleID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking embedding: %w", err)
	}
	return count > 0, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a little-endian byte slice.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
