// Package artifact defines the reconstructed-artifact variants and the card
// grammar parser for structural artifacts.
//
// A structural artifact (manifest, tag, wiki page, ticket, technote,
// attachment, forum post) is a line-oriented text blob where each line is a
// "card": a single uppercase letter followed by space-separated values whose
// shape depends on the letter. Some artifacts arrive wrapped in a PGP
// clear-sign envelope, which is stripped (never verified) before parsing.
package artifact
