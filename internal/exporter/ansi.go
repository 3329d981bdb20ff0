package exporter

import (
	"bytes"

	"github.com/badele/ansispan/internal/types"
)

const (
	oscIntro  = "\x1b]"
	oscTitle  = "2;"
	oscLink   = "8;;"
	oscFinish = "\x1b\\"
)

// wrapState tracks the wrap region left open between writes. The end marker
// is the one of the policy that opened the region.
type wrapState struct {
	open bool
	end  string
}

// openFor opens a region with the markers of wrap unless one is already
// open. Nothing happens when wrap is disabled.
func (st *wrapState) openFor(w Sink, wrap types.WrapPolicy) error {
	if st.open || !wrap.Enabled() {
		return nil
	}

	begin, end := wrap.Markers()
	if err := writeString(w, begin); err != nil {
		return err
	}
	st.open = true
	st.end = end
	return nil
}

func (st *wrapState) close(w Sink) error {
	if !st.open {
		return nil
	}
	st.open = false
	return writeString(w, st.end)
}

// writeInner writes what lies between the style prefix and suffix. When
// continues is set the following segment also wraps, so the region is left
// open for it instead of being closed and reopened.
func writeInner[T types.Payload](w Sink, seg types.Segment[T], st *wrapState, continues bool) error {
	openOSC := func(code string) error {
		if err := st.openFor(w, seg.Wrap()); err != nil {
			return err
		}
		return writeString(w, oscIntro+code)
	}

	finishOSC := func() error {
		if err := writeString(w, oscFinish); err != nil {
			return err
		}
		if continues {
			return nil
		}
		return st.close(w)
	}

	switch seg.Control() {
	case types.ControlTitle:
		if err := openOSC(oscTitle); err != nil {
			return err
		}
		if err := writePayload(w, seg.Text()); err != nil {
			return err
		}
		return finishOSC()

	case types.ControlLink:
		url, _ := seg.URL()
		if err := openOSC(oscLink); err != nil {
			return err
		}
		if err := writePayload(w, url); err != nil {
			return err
		}
		if err := writeString(w, oscFinish); err != nil {
			return err
		}
		// the label is visible text
		if err := st.close(w); err != nil {
			return err
		}
		if err := writePayload(w, seg.Text()); err != nil {
			return err
		}
		if err := openOSC(oscLink); err != nil {
			return err
		}
		return finishOSC()

	default:
		if err := st.close(w); err != nil {
			return err
		}
		return writePayload(w, seg.Text())
	}
}

// hidden writes s inside its own wrap region when wrap is enabled.
func hidden(w Sink, wrap types.WrapPolicy, s string) error {
	if s == "" || !wrap.Enabled() {
		return writeString(w, s)
	}
	begin, end := wrap.Markers()
	return writeString(w, begin+s+end)
}

// WriteSegment writes a single segment: style prefix, payload and style
// suffix. A wrapping link keeps its style codes outside the markers, which
// only surround its OSC sequences; any other wrapping segment hides its
// prefix and suffix in regions of their own.
func WriteSegment[T types.Payload](w Sink, seg types.Segment[T]) error {
	var st wrapState

	wrap := seg.Wrap()
	if seg.Control() == types.ControlLink {
		wrap = types.NoWrap
	}

	if err := hidden(w, wrap, seg.Style().Prefix()); err != nil {
		return err
	}
	if err := writeInner(w, seg, &st, false); err != nil {
		return err
	}
	return hidden(w, wrap, seg.Style().Suffix())
}

// WriteSequence writes segments one after the other, emitting only the
// codes needed to go from one style to the next. Terminal attributes are
// back to default at the end whenever a styled segment was written. When
// segments request wrapping, every escape byte they cause is kept inside a
// wrap region.
//
// A reset into a wrapping segment is hidden as well as added codes: the
// region opens before ESC[0m, not only before an incremental prefix.
func WriteSequence[T types.Payload](w Sink, segs []types.Segment[T]) error {
	if len(segs) == 0 {
		return nil
	}

	var st wrapState

	continues := func(i int) bool {
		return i+1 < len(segs) && segs[i].Wrap().Enabled() && segs[i+1].Wrap().Enabled()
	}

	first := segs[0]
	owed := !first.Style().IsPlain()
	if prefix := first.Style().Prefix(); prefix != "" {
		if err := st.openFor(w, first.Wrap()); err != nil {
			return err
		}
		if err := writeString(w, prefix); err != nil {
			return err
		}
	}
	if err := writeInner(w, first, &st, continues(0)); err != nil {
		return err
	}

	for i := 1; i < len(segs); i++ {
		prev, next := segs[i-1], segs[i]

		diff := types.Between(prev.Style(), next.Style())
		switch diff.Kind {
		case types.DiffExtraStyles:
			if err := st.openFor(w, next.Wrap()); err != nil {
				return err
			}
			if err := writeString(w, diff.Extra.Prefix()); err != nil {
				return err
			}
			owed = owed || !next.Style().IsPlain()

		case types.DiffReset:
			if err := st.openFor(w, next.Wrap()); err != nil {
				return err
			}
			if err := writeString(w, types.Reset+next.Style().Prefix()); err != nil {
				return err
			}
			owed = !next.Style().IsPlain()

		case types.DiffEmpty:
		}

		if err := writeInner(w, next, &st, continues(i)); err != nil {
			return err
		}
	}

	last := segs[len(segs)-1]
	if !owed && last.Style().IsPlain() {
		return nil
	}

	switch {
	case st.open:
		if err := writeString(w, types.Reset); err != nil {
			return err
		}
		return st.close(w)
	case last.Wrap().Enabled():
		begin, end := last.Wrap().Markers()
		return writeString(w, begin+types.Reset+end)
	default:
		return writeString(w, types.Reset)
	}
}

// ExportSegment renders a single segment into a new payload.
func ExportSegment[T types.Payload](seg types.Segment[T]) (T, error) {
	var buf bytes.Buffer
	if err := WriteSegment(&buf, seg); err != nil {
		var zero T
		return zero, err
	}
	return T(buf.Bytes()), nil
}

// ExportSequence renders segments into a new payload with minimal escapes.
func ExportSequence[T types.Payload](segs []types.Segment[T]) (T, error) {
	var buf bytes.Buffer
	if err := WriteSequence(&buf, segs); err != nil {
		var zero T
		return zero, err
	}
	return T(buf.Bytes()), nil
}
