package render

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/geom"
	"github.com/arthur-debert/geoascii/pkg/grid"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/arthur-debert/geoascii/pkg/style"
	"github.com/arthur-debert/geoascii/pkg/table"
)

// AllProperties requests every property of a feature, sorted by name
const AllProperties = "%all"

// PaginateOptions controls Paginate
type PaginateOptions struct {
	Render Options

	// Properties lists the attributes shown above each feature. Empty
	// means no table.
	Properties []string

	// Style is applied to each rendered feature when non-empty
	Style style.Map
}

// Paginate lazily renders the input one top-level item at a time. Each page
// holds the optional attribute table followed by the rendering and ends with
// a newline. Errors are yielded at the offending item; pages already
// delivered stay delivered. The sequence reads its input once.
func Paginate(input any, opts PaginateOptions) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		logger := logging.GetLogger("render.paginate")
		n := 0
		for item, err := range geom.Items(input) {
			if err != nil {
				yield("", err)
				return
			}
			page, err := renderPage(item, opts)
			if err != nil {
				yield("", errors.Wrapf(err, errors.GetErrorCode(err), "item %d", n).
					WithDetail("item", n))
				return
			}
			n++
			if !yield(page, nil) {
				logger.Debug().Int("pages", n).Msg("pagination stopped by consumer")
				return
			}
		}
		logger.Debug().Int("pages", n).Msg("pagination finished")
	}
}

func renderPage(item any, opts PaginateOptions) (string, error) {
	var parts []string

	if len(opts.Properties) > 0 {
		props, ok := geom.Properties(item)
		if !ok {
			return "", errors.New(errors.ErrMissingProperty,
				"cannot show properties - item is not a feature")
		}
		t, err := table.FromProperties(propertyKeys(opts.Properties, props), props)
		if err != nil {
			return "", err
		}
		parts = append(parts, t)
	}

	r, err := Render(item, opts.Render)
	if err != nil {
		return "", err
	}
	if len(opts.Style) > 0 {
		r = style.Style(r, opts.Style)
	}
	parts = append(parts, r)

	return strings.Join(parts, grid.LineSeparator) + grid.LineSeparator, nil
}

// propertyKeys expands AllProperties into the sorted property names
func propertyKeys(requested []string, props map[string]any) []string {
	if slices.Contains(requested, AllProperties) {
		return slices.Sorted(maps.Keys(props))
	}
	return requested
}
