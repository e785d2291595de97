package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/fossick/format"
)

// ErrCorruptCard is the sentinel wrapped by card grammar violations: an
// unrecognized card letter, a missing or malformed value, a bad datetime, or
// a truncated wiki-text block.
var ErrCorruptCard = errors.New("corrupt card")

// ErrCardNotFound is returned by lookups for a card type the artifact does
// not carry.
var ErrCardNotFound = errors.New("card not found")

// cardTimeLayout is the datetime format of D cards and the leading E field.
// Fractional seconds and any suffix are ignored; the value is UTC.
const cardTimeLayout = "2006-01-02T15:04:05"

// Card is one parsed card. Which fields are populated depends on the card
// type:
//
//   - Text: single-token cards (B G I K M N R Z), unescaped text cards
//     (C H L U) and the wiki-text block (W)
//   - Fields: tuple cards — unescaped for A F J T, raw tokens for P Q and
//     the trailing technote fields of E
//   - Time: seconds since the Unix epoch for D and E
type Card struct {
	Type   format.CardType
	Text   string
	Fields []string
	Time   int64
}

// Structural is an artifact whose blob follows the card grammar: manifests,
// control artifacts (tags), wiki pages, tickets, technotes, attachments and
// forum posts. Cards are exposed as a multimap: types in the repeatable set
// (F J M Q T) accumulate in file order, all others hold a single value.
type Structural struct {
	Artifact

	cards map[format.CardType][]Card
	types []format.CardType
}

// Kind returns format.KindStructural.
func (s *Structural) Kind() format.ArtifactKind {
	return format.KindStructural
}

func (s *Structural) String() string {
	return fmt.Sprintf("<StructuralArtifact rid=%d, uuid=%q>", s.Rid, s.UUID)
}

// ParseStructural parses an artifact's blob as a structural artifact. A
// clear-sign envelope, if present, is stripped first. Parsing the same blob
// is deterministic; any grammar violation returns an error wrapping
// ErrCorruptCard and no partial artifact.
func ParseStructural(a *Artifact) (*Structural, error) {
	data := StripClearsign(a.Blob)
	s := &Structural{
		Artifact: *a,
		cards:    make(map[format.CardType][]Card),
	}

	pos := 0
	for pos < len(data) {
		line, next := cutCardLine(data, pos)

		toks := strings.Split(line, " ")
		head, args := toks[0], toks[1:]
		if len(head) != 1 || !format.ValidCard(format.CardType(head[0])) {
			return nil, fmt.Errorf("%w: unrecognized card %q", ErrCorruptCard, line)
		}
		t := format.CardType(head[0])

		card := Card{Type: t}
		switch t {
		case format.CardAttachment, format.CardFile, format.CardTicketChange, format.CardTag:
			card.Fields = make([]string, len(args))
			for i, tok := range args {
				card.Fields[i] = UnescapeText(tok)
			}

		case format.CardBaseline, format.CardThreadRoot, format.CardInReplyTo,
			format.CardTicketID, format.CardManifest, format.CardMimetype,
			format.CardRepoChecksum, format.CardChecksum:
			tok, err := oneToken(t, args)
			if err != nil {
				return nil, err
			}
			card.Text = tok

		case format.CardComment, format.CardThreadTitle, format.CardWikiTitle, format.CardUserLogin:
			tok, err := oneToken(t, args)
			if err != nil {
				return nil, err
			}
			card.Text = UnescapeText(tok)

		case format.CardDatetime:
			tok, err := oneToken(t, args)
			if err != nil {
				return nil, err
			}
			if card.Time, err = parseCardTime(tok); err != nil {
				return nil, err
			}

		case format.CardTechnote:
			tok, err := oneToken(t, args)
			if err != nil {
				return nil, err
			}
			if card.Time, err = parseCardTime(tok); err != nil {
				return nil, err
			}
			card.Fields = args[1:]

		case format.CardParents, format.CardCherryPick:
			card.Fields = args

		case format.CardWikiText:
			tok, err := oneToken(t, args)
			if err != nil {
				return nil, err
			}
			size, err := strconv.Atoi(tok)
			if err != nil || size < 0 {
				return nil, fmt.Errorf("%w: invalid wiki text size %q", ErrCorruptCard, tok)
			}
			// The block is size bytes of text plus the newline that
			// terminates it; both are consumed from the raw stream.
			end := next + size + 1
			if end > len(data) {
				return nil, fmt.Errorf("%w: wiki text block truncated at %d of %d bytes",
					ErrCorruptCard, len(data)-next, size+1)
			}
			card.Text = string(data[next:end])
			next = end
		}

		s.store(t, card)
		pos = next
	}

	return s, nil
}

// store adds a parsed card to the multimap. Repeatable types accumulate in
// encounter order; a repeated single-value type silently overwrites (the
// format forbids the repeat, the parser stays lenient).
func (s *Structural) store(t format.CardType, card Card) {
	existing, seen := s.cards[t]
	switch {
	case format.MultiCard(t):
		s.cards[t] = append(existing, card)
	default:
		s.cards[t] = []Card{card}
	}
	if !seen {
		s.types = append(s.types, t)
	}
}

// Lookup returns the cards of the given type, by one-letter card type
// (case-insensitive) or by long name ("comment", "tag", ...). Repeatable
// types return their accumulated sequence in file order; all others return
// a single-element slice. The returned slice is shared; callers must not
// modify it.
func (s *Structural) Lookup(key string) ([]Card, error) {
	t, ok := s.resolve(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCardNotFound, key)
	}

	return s.cards[t], nil
}

// Get returns the first card of the given type; see Lookup for key forms.
func (s *Structural) Get(key string) (Card, error) {
	cards, err := s.Lookup(key)
	if err != nil {
		return Card{}, err
	}

	return cards[0], nil
}

// Has reports whether the artifact carries a card of the given type.
func (s *Structural) Has(key string) bool {
	_, ok := s.resolve(key)
	return ok
}

// Types returns the card types present, in first-encounter order.
func (s *Structural) Types() []format.CardType {
	out := make([]format.CardType, len(s.types))
	copy(out, s.types)

	return out
}

// resolve maps a lookup key to a card type present in the artifact.
func (s *Structural) resolve(key string) (format.CardType, bool) {
	var t format.CardType
	if len(key) == 1 {
		t = format.CardType(key[0])
		if t >= 'a' && t <= 'z' {
			t -= 'a' - 'A'
		}
	} else if byName, ok := format.CardByName(key); ok {
		t = byName
	} else {
		return 0, false
	}

	_, ok := s.cards[t]

	return t, ok
}

// cutCardLine returns the card line starting at pos with trailing whitespace
// and terminator removed, plus the offset just past the terminator.
func cutCardLine(data []byte, pos int) (string, int) {
	rest := data[pos:]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
		pos += i + 1
	} else {
		pos = len(data)
	}

	return strings.TrimRight(string(rest), " \t\r"), pos
}

func oneToken(t format.CardType, args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", fmt.Errorf("%w: %c card without value", ErrCorruptCard, t)
	}

	return args[0], nil
}

func parseCardTime(tok string) (int64, error) {
	if len(tok) < len(cardTimeLayout) {
		return 0, fmt.Errorf("%w: malformed datetime %q", ErrCorruptCard, tok)
	}

	ts, err := time.Parse(cardTimeLayout, tok[:len(cardTimeLayout)])
	if err != nil {
		return 0, fmt.Errorf("%w: malformed datetime %q", ErrCorruptCard, tok)
	}

	return ts.Unix(), nil
}
