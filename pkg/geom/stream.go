package geom

import "io"

// SliceStream is a Stream over an in-memory slice. Like any Stream it can be
// consumed only once.
type SliceStream struct {
	items []any
	pos   int
}

// NewSliceStream creates a single-pass stream over items
func NewSliceStream(items ...any) *SliceStream {
	return &SliceStream{items: items}
}

// Next returns the next item or io.EOF
func (s *SliceStream) Next() (any, error) {
	if s.pos >= len(s.items) {
		return nil, io.EOF
	}
	v := s.items[s.pos]
	s.pos++
	return v, nil
}

// tee shares one upstream between two readers. Items pulled by one reader are
// queued for the other until it catches up. Not safe for concurrent use.
type tee struct {
	src    Stream
	queues [2][]any
	err    error
}

type teeBranch struct {
	t   *tee
	idx int
}

// Tee forks a single-pass stream into two independent streams that each see
// every element. Elements are buffered only until the slower reader consumes
// them. The upstream must not be read directly afterwards.
func Tee(s Stream) (Stream, Stream) {
	t := &tee{src: s}
	return &teeBranch{t: t, idx: 0}, &teeBranch{t: t, idx: 1}
}

// Next implements Stream
func (b *teeBranch) Next() (any, error) {
	q := &b.t.queues[b.idx]
	if len(*q) > 0 {
		v := (*q)[0]
		(*q)[0] = nil
		*q = (*q)[1:]
		return v, nil
	}
	if b.t.err != nil {
		return nil, b.t.err
	}

	v, err := b.t.src.Next()
	if err != nil {
		// io.EOF and read errors are sticky for both readers
		b.t.err = err
		return nil, err
	}
	other := &b.t.queues[1-b.idx]
	*other = append(*other, v)
	return v, nil
}

// Collect drains a stream into a slice
func Collect(s Stream) ([]any, error) {
	var out []any
	for {
		v, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}
