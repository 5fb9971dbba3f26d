package style

import (
	"strings"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/grid"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark-emoji/definition"
)

// Kind distinguishes the two style token variants
type Kind int

const (
	KindColor Kind = iota
	KindEmoji
)

func (k Kind) String() string {
	if k == KindEmoji {
		return "emoji"
	}
	return "color"
}

// cellWidth is the number of terminal columns one grid cell occupies
const cellWidth = 2

var emojiSet = definition.Github()

// Token is a resolved style: a palette color or an emoji glyph
type Token struct {
	Kind Kind
	Name string

	// seq holds the SGR pair for colors and the glyph for emoji
	seq string
}

// ParseToken resolves a palette color name or an emoji short name.
// Emoji names may be given bare ("smile") or wrapped in colons (":smile:").
func ParseToken(name string) (Token, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if seq, ok := ansiColormap[lower]; ok {
		return Token{Kind: KindColor, Name: lower, seq: seq}, nil
	}

	short := strings.Trim(lower, ":")
	if short != "" {
		if e, ok := emojiSet.Get(short); ok && len(e.Unicode) > 0 {
			return Token{Kind: KindEmoji, Name: short, seq: string(e.Unicode)}, nil
		}
	}

	return Token{}, errors.Newf(errors.ErrUnknownStyle,
		"unrecognized color or emoji `%s'", name).
		WithDetail("style", name)
}

// MustToken is ParseToken for names known to be valid
func MustToken(name string) Token {
	t, err := ParseToken(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Glyph returns the emoji glyph, or "" for colors
func (t Token) Glyph() string {
	if t.Kind == KindEmoji {
		return t.seq
	}
	return ""
}

// Sequence returns the SGR pair for colors, or "" for emoji
func (t Token) Sequence() string {
	if t.Kind == KindColor {
		return t.seq
	}
	return ""
}

// Apply renders one cell holding ch with this token
func (t Token) Apply(ch rune) string {
	switch t.Kind {
	case KindEmoji:
		pad := cellWidth - runewidth.StringWidth(t.seq)
		if pad < 0 {
			pad = 0
		}
		return t.seq + strings.Repeat(" ", pad)
	default:
		return t.seq + string(ch) + " " + Reset
	}
}

// Map assigns at most one style token per character
type Map map[rune]Token

// NewMap builds a Map from character → style name pairs
func NewMap(assign map[string]string) (Map, error) {
	m := make(Map, len(assign))
	for key, name := range assign {
		ch, err := grid.ValidateChar("style key", key)
		if err != nil {
			return nil, err
		}
		tok, err := ParseToken(name)
		if err != nil {
			return nil, err
		}
		m[ch] = tok
	}
	return m, nil
}
