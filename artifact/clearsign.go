package artifact

import "bytes"

var (
	clearsignHeader = []byte("-----BEGIN PGP SIGNED MESSAGE-----")
	signatureHeader = []byte("-----BEGIN PGP SIGNATURE-----")
	dashEscape      = []byte("- ")
)

// StripClearsign removes a PGP clear-sign envelope from a blob, if present.
//
// Blobs that do not start with the clear-sign header are returned unchanged
// (file content never matches it). Otherwise the armor header block is
// skipped up to and including its terminating blank line, dash-escaped
// lines lose their "- " prefix, and everything from the signature header on
// is discarded. The signature itself is never verified.
//
// Stripping is idempotent: the payload of a signed artifact cannot itself
// begin with the clear-sign header line once the envelope is gone.
func StripClearsign(blob []byte) []byte {
	if !bytes.HasPrefix(blob, clearsignHeader) {
		return blob
	}

	rest := blob

	// Armor header block: everything up to the first blank line.
	for len(rest) > 0 {
		line, tail := nextLine(rest)
		rest = tail
		if len(bytes.TrimRight(line, " \t\r\n")) == 0 {
			break
		}
	}

	out := make([]byte, 0, len(rest))
	for len(rest) > 0 {
		line, tail := nextLine(rest)
		rest = tail
		if bytes.Equal(bytes.TrimRight(line, " \t\r\n"), signatureHeader) {
			break
		}
		if bytes.HasPrefix(line, dashEscape) {
			line = line[len(dashEscape):]
		}
		out = append(out, line...)
	}

	return out
}

// nextLine splits off the first line of data, retaining its terminator, and
// returns it together with the remainder.
func nextLine(data []byte) (line, rest []byte) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i+1], data[i+1:]
	}

	return data, nil
}
