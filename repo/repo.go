package repo

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/arloliu/fossick/artifact"
	"github.com/arloliu/fossick/compress"
	"github.com/arloliu/fossick/format"
	"github.com/arloliu/fossick/internal/cache"
	"github.com/arloliu/fossick/internal/hash"
)

// ErrNotFound is the sentinel wrapped when a lookup key, a uuid prefix, or a
// rid/uuid point query resolves to no blob row.
var ErrNotFound = errors.New("artifact not found")

// DefaultCacheSize is the blob cache capacity used when WithCacheSize is not
// given.
const DefaultCacheSize = 64

type config struct {
	verify           bool
	cacheSize        int
	cacheCompression format.CompressionType
}

// Option configures Open.
type Option func(*config) error

// WithVerify enables checksum verification of every delta application.
// Verification is off by default; the declared sum is then ignored.
func WithVerify(verify bool) Option {
	return func(cfg *config) error {
		cfg.verify = verify
		return nil
	}
}

// WithCacheSize sets the blob cache capacity in entries. Zero disables the
// cache; every lookup then reconstructs its full chain.
func WithCacheSize(entries int) Option {
	return func(cfg *config) error {
		if entries < 0 {
			return fmt.Errorf("cache size must not be negative, got %d", entries)
		}
		cfg.cacheSize = entries

		return nil
	}
}

// WithCacheCompression stores cache entries through the given codec so the
// cache holds more reconstructed blobs for the same memory budget.
// format.CompressionLZ4 is the recommended choice; the default is
// format.CompressionNone.
func WithCacheCompression(compressionType format.CompressionType) Option {
	return func(cfg *config) error {
		if _, err := compress.GetCodec(compressionType); err != nil {
			return err
		}
		cfg.cacheCompression = compressionType

		return nil
	}
}

// memoEntry records one uuid→rid mapping. The full uuid is kept so that a
// fingerprint collision degrades to a memo miss instead of a wrong row.
type memoEntry struct {
	uuid string
	rid  int64
}

// Repository is the read-only façade over one repository database.
//
// A Repository owns its database handle, its blob cache and its uuid memo
// exclusively and is not safe for concurrent use. Callers that want
// parallelism open one Repository per goroutine (the database file accepts
// any number of read-only readers) or serialize access externally. All
// methods are synchronous and run to completion.
type Repository struct {
	db     *sqlx.DB
	cache  *cache.Cache
	memo   map[uint64]memoEntry
	verify bool
}

// Open opens the repository database at path read-only.
//
// Case-sensitive LIKE is enabled on every connection so that uuid prefix
// search matches the lowercase hex hashes exactly.
func Open(path string, opts ...Option) (*Repository, error) {
	cfg := config{
		cacheSize:        DefaultCacheSize,
		cacheCompression: format.CompressionNone,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	codec, err := compress.GetCodec(cfg.cacheCompression)
	if err != nil {
		return nil, err
	}
	blobCache, err := cache.New(cfg.cacheSize, codec)
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=case_sensitive_like(1)", path)
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	// One synchronous owner, one connection; also keeps the pragma scope
	// trivially correct.
	db.SetMaxOpenConns(1)

	return &Repository{
		db:     db,
		cache:  blobCache,
		memo:   make(map[uint64]memoEntry),
		verify: cfg.verify,
	}, nil
}

// Close releases the database handle and drops every cached blob.
func (r *Repository) Close() error {
	r.cache.Purge()
	return r.db.Close()
}

// Lookup reconstructs the blob identified by key and returns it as a Raw
// artifact.
func (r *Repository) Lookup(key Key) (*artifact.Artifact, error) {
	return r.resolve(key)
}

// LookupFile reconstructs the blob identified by key as checked-in file
// content.
func (r *Repository) LookupFile(key Key) (*artifact.File, error) {
	a, err := r.resolve(key)
	if err != nil {
		return nil, err
	}

	return &artifact.File{Artifact: *a}, nil
}

// LookupStructural reconstructs the blob identified by key and parses it as
// a structural artifact (manifest, tag, wiki page, ticket, technote, ...).
func (r *Repository) LookupStructural(key Key) (*artifact.Structural, error) {
	a, err := r.resolve(key)
	if err != nil {
		return nil, err
	}

	return artifact.ParseStructural(a)
}

// FindByPrefix returns the first blob whose uuid starts with the given hex
// prefix. Which row is first is unspecified but deterministic for a given
// database. A prefix matching nothing returns ErrNotFound.
func (r *Repository) FindByPrefix(prefix string) (int64, string, error) {
	var row struct {
		Rid  int64  `db:"rid"`
		UUID string `db:"uuid"`
	}
	err := r.db.Get(&row, `SELECT rid, uuid FROM blob WHERE uuid LIKE ? LIMIT 1`, prefix+"%")
	if err != nil {
		if isNoRows(err) {
			return 0, "", fmt.Errorf("%w: no blob with uuid prefix %q", ErrNotFound, prefix)
		}

		return 0, "", fmt.Errorf("prefix lookup %q: %w", prefix, err)
	}

	return row.Rid, row.UUID, nil
}

// RidToUUID returns the content hash of the blob with the given row id.
func (r *Repository) RidToUUID(rid int64) (string, error) {
	var uuid string
	err := r.db.Get(&uuid, `SELECT uuid FROM blob WHERE rid = ?`, rid)
	if err != nil {
		if isNoRows(err) {
			return "", fmt.Errorf("%w: rid %d", ErrNotFound, rid)
		}

		return "", fmt.Errorf("rid lookup %d: %w", rid, err)
	}

	return uuid, nil
}

// UUIDToRid returns the row id of the blob with the given content hash.
// Repeated lookups for the same uuid are answered from an in-memory memo
// keyed by xxHash64 fingerprints.
func (r *Repository) UUIDToRid(uuid string) (int64, error) {
	fp := hash.ID(uuid)
	if e, ok := r.memo[fp]; ok && e.uuid == uuid {
		return e.rid, nil
	}

	var rid int64
	err := r.db.Get(&rid, `SELECT rid FROM blob WHERE uuid = ?`, uuid)
	if err != nil {
		if isNoRows(err) {
			return 0, fmt.Errorf("%w: uuid %q", ErrNotFound, uuid)
		}

		return 0, fmt.Errorf("uuid lookup %q: %w", uuid, err)
	}
	r.memo[fp] = memoEntry{uuid: uuid, rid: rid}

	return rid, nil
}

// JulianToUnix converts a Julian-day timestamp, as stored in the
// repository's event tables, to seconds since the Unix epoch.
func JulianToUnix(julianDay float64) float64 {
	return (julianDay - 2440587.5) * 86400
}

// UnixToJulian converts seconds since the Unix epoch to a Julian-day
// timestamp.
func UnixToJulian(unixSeconds float64) float64 {
	return unixSeconds/86400 + 2440587.5
}
