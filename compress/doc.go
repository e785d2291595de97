// Package compress handles the two compression concerns of the repository
// read path.
//
// DecodeBlob decodes stored blob content: every row in the blob table holds
// a 4-byte big-endian declared-size header followed by a zlib stream, whether
// the row is an undeltified blob or a delta against another blob.
//
// The Codec interface and its implementations (None, S2, LZ4, Zstd) compress
// reconstructed blobs held in the in-memory cache. Reconstructed artifacts
// can be orders of magnitude larger than their stored form, so a fast codec
// lets the cache hold many more entries for the same budget. Cache
// compression is opt-in and None is the default.
package compress
