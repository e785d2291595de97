// Package fossick is a read-only library for distributed version-control
// repositories stored as a single SQLite database file.
//
// A repository holds a pool of compressed, content-addressed blobs. Most
// blobs are stored as binary deltas against another blob and are
// reconstructed by walking the chain of delta sources back to an undeltified
// ancestor, then applying each delta in order. Structural artifacts —
// manifests, tags, wiki pages, tickets, technotes, attachments — carry their
// metadata in a line-oriented card grammar that parses into a typed record.
//
// # Basic Usage
//
// Opening a repository and reading artifacts:
//
//	import "github.com/arloliu/fossick"
//
//	r, err := fossick.Open("project.fossil")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	// Raw artifact by row id
//	a, err := r.Lookup(fossick.Rid(1))
//
//	// Checked-in file content by content hash
//	f, err := r.LookupFile(fossick.UUID("4f0c8c..."))
//
//	// Parsed manifest: cards by letter or long name
//	m, err := r.LookupStructural(fossick.UUID("a3d19e..."))
//	comment, err := m.Get("comment") // same card as m.Get("C")
//
// Reconstruction keeps an LRU cache of intermediate blobs, so reading many
// artifacts that share chain prefixes touches each stored blob once.
//
// # Package Structure
//
// This package provides thin wrappers over the repo package, which owns the
// database handle and the cache. The artifact package defines the artifact
// variants and the card grammar; encoding and compress implement the wire
// codecs. A Repository and everything reachable from it is single-owner:
// open one per goroutine or serialize access externally.
package fossick

import (
	"github.com/arloliu/fossick/format"
	"github.com/arloliu/fossick/repo"
)

// Repository is the read-only façade over one repository database.
// See the repo package for the full API.
type Repository = repo.Repository

// Key identifies a blob by row id or content hash.
type Key = repo.Key

// Option configures Open.
type Option = repo.Option

// Open opens the repository database at path read-only.
func Open(path string, opts ...Option) (*Repository, error) {
	return repo.Open(path, opts...)
}

// Rid keys a lookup by internal row id.
func Rid(rid int64) Key {
	return repo.Rid(rid)
}

// UUID keys a lookup by lowercase hex content hash.
func UUID(uuid string) Key {
	return repo.UUID(uuid)
}

// WithVerify enables checksum verification of delta application.
func WithVerify(verify bool) Option {
	return repo.WithVerify(verify)
}

// WithCacheSize sets the blob cache capacity in entries; zero disables the
// cache.
func WithCacheSize(entries int) Option {
	return repo.WithCacheSize(entries)
}

// WithCacheCompression compresses cache entries with the given codec.
func WithCacheCompression(compressionType format.CompressionType) Option {
	return repo.WithCacheCompression(compressionType)
}
