// Package repo opens a repository database and reconstructs artifacts from
// it.
//
// The entire repository is one SQLite file with two tables of interest:
// blob(rid, uuid, content) holds every stored object, and delta(rid, srcid)
// marks blobs stored as deltas against a source blob. Reconstruction walks
// the delta chain to its undeltified ancestor with a single recursive query
// and applies deltas ancestor-first, caching intermediate results.
package repo
