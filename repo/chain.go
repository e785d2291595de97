package repo

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/arloliu/fossick/artifact"
	"github.com/arloliu/fossick/compress"
	"github.com/arloliu/fossick/encoding"
	"github.com/arloliu/fossick/internal/hash"
)

// chainQuery expands the delta chain of one blob in a single round trip.
// The walk starts at the requested blob (depth 0) and follows delta.srcid
// upward, tagging each ancestor with a more negative depth; ordering by
// depth then hands the client the undeltified ancestor first and the
// requested blob last. The %s placeholder is filled with a fixed column
// name from Key.column, never caller input.
const chainQuery = `
WITH RECURSIVE chain(rid, uuid, content, depth) AS (
    SELECT rid, uuid, content, 0 FROM blob WHERE %s = ?
    UNION ALL
    SELECT blob.rid, blob.uuid, blob.content, chain.depth - 1
    FROM blob, delta, chain
    WHERE delta.rid = chain.rid AND blob.rid = delta.srcid
)
SELECT rid, uuid, content FROM chain ORDER BY depth`

type blobRow struct {
	Rid     int64  `db:"rid"`
	UUID    string `db:"uuid"`
	Content []byte `db:"content"`
}

// resolve reconstructs the blob identified by key.
//
// Rows arrive ancestor-first. The working buffer starts from the ancestor's
// decompressed content and each later row's content decodes to a delta that
// advances the buffer one link down the chain. A cached row short-circuits:
// its bytes replace the working buffer wholesale, discarding any partial
// reconstruction, since the cached value already is that row's full blob.
// Every freshly computed buffer is cached before moving on; a failure
// caches nothing for the failing row.
func (r *Repository) resolve(key Key) (*artifact.Artifact, error) {
	var rows []blobRow
	query := fmt.Sprintf(chainQuery, key.column())
	if err := r.db.Select(&rows, query, key.value()); err != nil {
		return nil, fmt.Errorf("chain query for %s: %w", key, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	var blob []byte
	have := false
	for i := range rows {
		row := &rows[i]

		cached, hit, err := r.cache.Get(row.Rid)
		if err != nil {
			return nil, err
		}
		if hit {
			blob = cached
			have = true
			continue
		}

		content, err := compress.DecodeBlob(row.Content)
		if err != nil {
			return nil, fmt.Errorf("blob rid %d: %w", row.Rid, err)
		}

		if have {
			blob, err = encoding.ApplyDelta(blob, content, r.verify)
			if err != nil {
				return nil, fmt.Errorf("delta rid %d: %w", row.Rid, err)
			}
		} else {
			blob = content
			have = true
		}

		if err := r.cache.Put(row.Rid, blob); err != nil {
			return nil, err
		}
	}

	target := rows[len(rows)-1]
	r.memo[hash.ID(target.UUID)] = memoEntry{uuid: target.UUID, rid: target.Rid}

	return &artifact.Artifact{
		Rid:  target.Rid,
		UUID: target.UUID,
		Blob: blob,
	}, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
