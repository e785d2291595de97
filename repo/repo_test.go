package repo

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fossick/compress"
	"github.com/arloliu/fossick/encoding"
	"github.com/arloliu/fossick/format"
	"github.com/arloliu/fossick/internal/hash"
)

var (
	uuid1 = strings.Repeat("a1", 20)
	uuid2 = strings.Repeat("b2", 20)
	uuid3 = strings.Repeat("c3", 20)

	blobV1 = []byte("C first\\srevision\nD 2020-01-01T00:00:00\nZ 11112222\n")
	blobV2 = []byte("C second\\srevision\nD 2020-01-01T12:00:00\nP " + strings.Repeat("a1", 20) + "\nZ 33334444\n")
	blobV3 = []byte("C hello\\sworld\nD 2020-01-02T03:04:05\nT +bgcolor abcd red\nT +bgcolor abcd green\nZ deadbeef\n")
)

// storedContent encodes payload the way the blob table stores it: a 4-byte
// big-endian declared size followed by a zlib stream.
func storedContent(t *testing.T, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(len(payload))))
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// insertDelta builds a delta materializing target with one insert
// instruction and a correct declared size and checksum.
func insertDelta(target []byte) []byte {
	d := encoding.PutVarint(nil, uint64(len(target)))
	d = append(d, '\n')
	d = encoding.PutVarint(d, uint64(len(target)))
	d = append(d, ':')
	d = append(d, target...)
	d = encoding.PutVarint(d, uint64(encoding.Checksum(target)))

	return append(d, ';')
}

// newFixture writes a repository database with a three-link chain:
// rid 1 (undeltified) ← rid 2 ← rid 3.
func newFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.fossil")
	db, err := sqlx.Connect("sqlite", "file:"+path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE blob (rid INTEGER PRIMARY KEY, uuid TEXT UNIQUE, content BLOB)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE delta (rid INTEGER, srcid INTEGER)`)
	require.NoError(t, err)

	insertBlob := func(rid int64, uuid string, content []byte) {
		_, err := db.Exec(`INSERT INTO blob (rid, uuid, content) VALUES (?, ?, ?)`, rid, uuid, content)
		require.NoError(t, err)
	}

	insertBlob(1, uuid1, storedContent(t, blobV1))
	insertBlob(2, uuid2, storedContent(t, insertDelta(blobV2)))
	insertBlob(3, uuid3, storedContent(t, insertDelta(blobV3)))

	_, err = db.Exec(`INSERT INTO delta (rid, srcid) VALUES (2, 1), (3, 2)`)
	require.NoError(t, err)

	return path
}

func openFixture(t *testing.T, opts ...Option) *Repository {
	t.Helper()

	r, err := Open(newFixture(t), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	return r
}

func TestRepository_LookupByRid(t *testing.T) {
	r := openFixture(t)

	a, err := r.Lookup(Rid(3))
	require.NoError(t, err)
	require.Equal(t, int64(3), a.Rid)
	require.Equal(t, uuid3, a.UUID)
	require.Equal(t, blobV3, a.Blob)
	require.Equal(t, format.KindRaw, a.Kind())
}

func TestRepository_LookupByUUID(t *testing.T) {
	r := openFixture(t)

	a, err := r.Lookup(UUID(uuid2))
	require.NoError(t, err)
	require.Equal(t, int64(2), a.Rid)
	require.Equal(t, blobV2, a.Blob)
}

func TestRepository_LookupUndeltified(t *testing.T) {
	r := openFixture(t)

	a, err := r.Lookup(Rid(1))
	require.NoError(t, err)
	require.Equal(t, blobV1, a.Blob)
}

func TestRepository_LookupFile(t *testing.T) {
	r := openFixture(t)

	f, err := r.LookupFile(Rid(3))
	require.NoError(t, err)
	require.Equal(t, format.KindFile, f.Kind())
	require.Equal(t, blobV3, f.Blob)
}

func TestRepository_LookupStructural(t *testing.T) {
	r := openFixture(t)

	s, err := r.LookupStructural(UUID(uuid3))
	require.NoError(t, err)
	require.Equal(t, format.KindStructural, s.Kind())

	comment, err := s.Get("comment")
	require.NoError(t, err)
	require.Equal(t, "hello world", comment.Text)

	tags, err := s.Lookup("T")
	require.NoError(t, err)
	require.Len(t, tags, 2)
}

func TestRepository_LookupNotFound(t *testing.T) {
	r := openFixture(t)

	_, err := r.Lookup(Rid(999))
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "rid 999")

	_, err = r.Lookup(UUID("ffff"))
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "ffff")
}

func TestRepository_ReconstructionIndependentOfCache(t *testing.T) {
	configs := map[string][]Option{
		"default":          nil,
		"no cache":         {WithCacheSize(0)},
		"tiny cache":       {WithCacheSize(1)},
		"verify":           {WithVerify(true)},
		"compressed cache": {WithCacheCompression(format.CompressionLZ4)},
	}

	for name, opts := range configs {
		t.Run(name, func(t *testing.T) {
			r := openFixture(t, opts...)

			// Cold cache.
			a, err := r.Lookup(Rid(3))
			require.NoError(t, err)
			require.Equal(t, blobV3, a.Blob)

			// Warm cache: every chain row was just cached.
			a, err = r.Lookup(Rid(3))
			require.NoError(t, err)
			require.Equal(t, blobV3, a.Blob)

			// Partially warm: ancestor cached by an unrelated lookup.
			_, err = r.Lookup(Rid(2))
			require.NoError(t, err)
			a, err = r.Lookup(Rid(3))
			require.NoError(t, err)
			require.Equal(t, blobV3, a.Blob)
		})
	}
}

func TestRepository_FindByPrefix(t *testing.T) {
	r := openFixture(t)

	rid, uuid, err := r.FindByPrefix(uuid2[:8])
	require.NoError(t, err)
	require.Equal(t, int64(2), rid)
	require.Equal(t, uuid2, uuid)

	// Matching is case-sensitive; stored hashes are lowercase.
	_, _, err = r.FindByPrefix(strings.ToUpper(uuid2[:8]))
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = r.FindByPrefix("0000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_RidUUIDMaps(t *testing.T) {
	r := openFixture(t)

	uuid, err := r.RidToUUID(1)
	require.NoError(t, err)
	require.Equal(t, uuid1, uuid)

	rid, err := r.UUIDToRid(uuid1)
	require.NoError(t, err)
	require.Equal(t, int64(1), rid)

	// Second lookup is served from the memo.
	rid, err = r.UUIDToRid(uuid1)
	require.NoError(t, err)
	require.Equal(t, int64(1), rid)

	_, err = r.RidToUUID(999)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = r.UUIDToRid("not-there")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ResolvePopulatesMemo(t *testing.T) {
	r := openFixture(t)

	_, err := r.Lookup(UUID(uuid3))
	require.NoError(t, err)

	require.Contains(t, r.memo, hash.ID(uuid3))
	rid, err := r.UUIDToRid(uuid3)
	require.NoError(t, err)
	require.Equal(t, int64(3), rid)
}

func TestRepository_CorruptDelta(t *testing.T) {
	path := newFixture(t)

	db, err := sqlx.Connect("sqlite", "file:"+path)
	require.NoError(t, err)
	bad := insertDelta(blobV3)
	bad[len(bad)-2] ^= 1 // still a digit, now the wrong sum
	_, err = db.Exec(`UPDATE blob SET content = ? WHERE rid = 3`, storedContent(t, bad))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	r, err := Open(path, WithVerify(true))
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Lookup(Rid(3))
	require.ErrorIs(t, err, encoding.ErrCorruptDelta)
}

func TestRepository_CorruptBlobContent(t *testing.T) {
	path := newFixture(t)

	db, err := sqlx.Connect("sqlite", "file:"+path)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE blob SET content = ? WHERE rid = 1`,
		[]byte{0x00, 0x00, 0x00, 0x08, 0xDE, 0xAD, 0xBE, 0xEF})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Lookup(Rid(1))
	require.ErrorIs(t, err, compress.ErrCorruptBlob)
}

func TestOpen_OptionValidation(t *testing.T) {
	_, err := Open("unused.fossil", WithCacheSize(-1))
	require.Error(t, err)

	_, err = Open("unused.fossil", WithCacheCompression(format.CompressionType(0xFF)))
	require.Error(t, err)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.fossil"))
	require.Error(t, err)
}

func TestJulianConversion(t *testing.T) {
	// 2440587.5 is the Julian day of the Unix epoch.
	require.InDelta(t, 0.0, JulianToUnix(2440587.5), 1e-6)
	require.InDelta(t, 86400.0, JulianToUnix(2440588.5), 1e-6)
	require.InDelta(t, 2440587.5, UnixToJulian(0), 1e-9)

	for _, unix := range []float64{0, 1577934245, 1.5e9} {
		require.InDelta(t, unix, JulianToUnix(UnixToJulian(unix)), 1e-3)
	}
}
