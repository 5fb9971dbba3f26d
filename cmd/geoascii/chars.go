package geoascii

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/grid"
	"github.com/arthur-debert/geoascii/pkg/style"
)

// charSyntax is the form of one --char or --fill value
type charSyntax int

const (
	syntaxChar  charSyntax = iota // +
	syntaxColor                   // blue
	syntaxPair                    // +=blue, +=:smile:
)

func syntaxOf(v string) charSyntax {
	switch {
	case strings.Contains(v, "="):
		return syntaxPair
	case style.IsColor(v):
		return syntaxColor
	default:
		return syntaxChar
	}
}

// parseCharSpecs resolves the values of a repeatable --char style flag into
// per-layer assignments. Values must be unique and share one syntax. A bare
// color selects its default ramp character.
func parseCharSpecs(flag string, values []string) (style.CharMap, error) {
	out := make(style.CharMap, 0, len(values))
	seenValue := make(map[string]bool, len(values))
	seenChar := make(map[rune]bool, len(values))

	var mode charSyntax
	for i, v := range values {
		if seenValue[v] {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrDuplicateChars, flag).
				WithDetail("flag", flag).
				WithDetail("value", v)
		}
		seenValue[v] = true

		m := syntaxOf(v)
		if i == 0 {
			mode = m
		} else if m != mode {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrMixedSyntax, flag).
				WithDetail("flag", flag)
		}

		a, err := parseCharSpec(flag, v, m)
		if err != nil {
			return nil, err
		}
		if seenChar[a.Char] {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrDuplicateChars, flag).
				WithDetail("flag", flag).
				WithDetail("value", string(a.Char))
		}
		seenChar[a.Char] = true
		out = append(out, a)
	}
	return out, nil
}

func parseCharSpec(flag, v string, m charSyntax) (style.Assignment, error) {
	switch m {
	case syntaxPair:
		i := strings.LastIndex(v, "=")
		ch, name := v[:i], v[i+1:]
		if style.IsColor(name) {
			name = strings.ToLower(name)
		}
		if _, err := style.ParseToken(name); err != nil {
			return style.Assignment{}, err
		}
		r, err := grid.ValidateChar(flag, ch)
		if err != nil {
			return style.Assignment{}, err
		}
		return style.Assignment{Char: r, Style: name}, nil
	case syntaxColor:
		name := strings.ToLower(v)
		r, ok := style.DefaultColorChar(name)
		if !ok {
			return style.Assignment{}, errors.Newf(errors.ErrUnknownStyle, "color `%s' has no default character", v).
				WithDetail("style", v)
		}
		return style.Assignment{Char: r, Style: name}, nil
	default:
		r, err := grid.ValidateChar(flag, v)
		if err != nil {
			return style.Assignment{}, errors.Wrap(err, errors.ErrInvalidChar,
				fmt.Sprintf("value must be a single character, color, or character=style (colors: %s)",
					strings.Join(style.ColorNames(), ", "))).
				WithDetail("flag", flag)
		}
		return style.Assignment{Char: r}, nil
	}
}

// checkFillCollision rejects a fill character that is also a layer character
func checkFillCollision(fill rune, chars style.CharMap) error {
	for _, c := range chars.Chars() {
		if c == fill {
			return errors.Newf(errors.ErrInvalidChar, MsgErrFillCollision, fill).
				WithDetail("fill", string(fill))
		}
	}
	return nil
}
