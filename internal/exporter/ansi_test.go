package exporter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badele/ansispan/internal/types"
)

const exampleURL = "https://example.com"

func render(t *testing.T, segs ...types.String) string {
	t.Helper()
	out, err := ExportSequence(segs)
	require.NoError(t, err)
	return out
}

func exampleLink() types.String {
	link := types.Paint(types.Blue.Normal().Underlined(), "Link to example.com.")
	link.SetWrap(types.CtrlWrap)
	link.Hyperlink(exampleURL)
	return link
}

func TestWriteSequence_PlainSegmentsHaveNoEscapes(t *testing.T) {
	one := types.NewSegment("one")
	two := types.Paint(types.Style{}, "two")

	assert.Equal(t, "onetwo", render(t, one, two))
}

func TestWriteSequence_Empty(t *testing.T) {
	assert.Equal(t, "", render(t))
}

func TestWriteSequence_SingleStyledSegment(t *testing.T) {
	style := types.Red.Normal().Bolded()
	seg := types.Paint(style, "hello")

	want := style.Prefix() + "hello" + style.Suffix()
	assert.Equal(t, want, render(t, seg))

	single, err := ExportSegment(seg)
	require.NoError(t, err)
	assert.Equal(t, want, single)
}

func TestWriteSequence_Transitions(t *testing.T) {
	red := types.Red.Normal()

	tests := []struct {
		name string
		segs []types.String
		want string
	}{
		{
			name: "identical styles",
			segs: []types.String{types.Paint(red, "a"), types.Paint(red, "b")},
			want: "\x1b[31mab\x1b[0m",
		},
		{
			name: "superset only adds new codes",
			segs: []types.String{types.Paint(red, "a"), types.Paint(red.Bolded(), "b")},
			want: "\x1b[31ma\x1b[1mb\x1b[0m",
		},
		{
			name: "color change is incremental",
			segs: []types.String{types.Paint(red, "a"), types.Paint(types.Green.Normal(), "b")},
			want: "\x1b[31ma\x1b[32mb\x1b[0m",
		},
		{
			name: "dropping an attribute resets",
			segs: []types.String{types.Paint(red.Bolded(), "a"), types.Paint(red, "b")},
			want: "\x1b[1;31ma\x1b[0m\x1b[31mb\x1b[0m",
		},
		{
			name: "ending plain emits no trailing reset",
			segs: []types.String{types.Paint(types.Green.Normal(), "a"), types.NewSegment("b")},
			want: "\x1b[32ma\x1b[0mb",
		},
		{
			name: "plain then styled",
			segs: []types.String{types.NewSegment("a"), types.Paint(red, "b")},
			want: "a\x1b[31mb\x1b[0m",
		},
		{
			name: "styled then plain then styled",
			segs: []types.String{types.Paint(red, "a"), types.NewSegment("b"), types.Paint(red, "c")},
			want: "\x1b[31ma\x1b[0mb\x1b[31mc\x1b[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.segs...))
		})
	}
}

func TestTitle(t *testing.T) {
	title := types.Title("Test Title")

	out, err := ExportSegment(title)
	require.NoError(t, err)
	assert.Equal(t, "\x1b]2;Test Title\x1b\\", out)

	title.SetWrap(types.CtrlWrap)
	out, err = ExportSegment(title)
	require.NoError(t, err)
	assert.Equal(t, "\x01\x1b]2;Test Title\x1b\\\x02", out)

	title.SetWrap(types.CustomWrap("<zw>", "</zw>"))
	out, err = ExportSegment(title)
	require.NoError(t, err)
	assert.Equal(t, "<zw>\x1b]2;Test Title\x1b\\</zw>", out)
}

func TestTitleDoesNotDisturbNeighbours(t *testing.T) {
	title := types.Title("Test Title")
	titleOut, err := ExportSegment(title)
	require.NoError(t, err)

	beforeGreen := types.Paint(types.Green.Normal(), "Before is Green. ")
	before := types.NewSegment("Before is Plain. ")
	afterGreen := types.Paint(types.Green.Normal(), " After is Green.")
	after := types.NewSegment(" After is Plain.")

	joined := render(t, beforeGreen, title)
	assert.True(t, strings.HasPrefix(joined, "\x1b[32mBefore is Green. \x1b[0m"), "%q", joined)
	assert.True(t, strings.HasSuffix(joined, titleOut), "%q", joined)

	joined = render(t, title, afterGreen)
	assert.True(t, strings.HasPrefix(joined, titleOut), "%q", joined)
	assert.True(t, strings.HasSuffix(joined, "\x1b[32m After is Green.\x1b[0m"), "%q", joined)

	for _, segs := range [][]types.String{
		{title},
		{before, title},
		{before, title, after},
		{title, after},
	} {
		assert.NotContains(t, render(t, segs...), "\x1b[")
	}
}

func TestHyperlink(t *testing.T) {
	styled := types.Paint(types.Red.Normal(), "Link to example.com.")
	styled.SetWrap(types.CtrlWrap)
	styled.Hyperlink(exampleURL)

	out, err := ExportSegment(styled)
	require.NoError(t, err)
	assert.Equal(t,
		"\x1b[31m\x01\x1b]8;;https://example.com\x1b\\\x02Link to example.com.\x01\x1b]8;;\x1b\\\x02\x1b[0m",
		out)
}

func TestHyperlinkWithoutWrap(t *testing.T) {
	seg := types.NewSegment("label")
	seg.Hyperlink(exampleURL)

	out, err := ExportSegment(seg)
	require.NoError(t, err)
	assert.Equal(t, "\x1b]8;;https://example.com\x1b\\label\x1b]8;;\x1b\\", out)
}

func TestHyperlinksInSequence(t *testing.T) {
	before := types.Paint(types.Green.Normal(), "Before link. ")
	after := types.Paint(types.Green.Normal(), " After link.")
	link := exampleLink()

	const linkBody = "\x1b]8;;https://example.com\x1b\\\x02Link to example.com.\x01\x1b]8;;\x1b\\\x02"

	assert.Equal(t,
		"\x01\x1b[4;34m"+linkBody+"\x01\x1b[0m\x02",
		render(t, link))

	assert.Equal(t,
		"\x1b[32mBefore link. \x01\x1b[4;34m"+linkBody+"\x1b[0m\x1b[32m After link.\x1b[0m",
		render(t, before, link, after))

	assert.Equal(t,
		"\x01\x1b[4;34m"+linkBody+"\x1b[0m\x1b[32m After link.\x1b[0m",
		render(t, link, after))

	assert.Equal(t,
		"\x1b[32mBefore link. \x01\x1b[4;34m"+linkBody+"\x01\x1b[0m\x02",
		render(t, before, link))
}

func TestWrappedSegmentsShareRegion(t *testing.T) {
	first := types.Title("A").WithWrap(types.CtrlWrap)
	second := types.Title("B").WithWrap(types.CtrlWrap)

	assert.Equal(t, "\x01\x1b]2;A\x1b\\\x1b]2;B\x1b\\\x02", render(t, first, second))
}

func TestResetIntoWrappedSegmentIsHidden(t *testing.T) {
	styled := types.Paint(types.Red.Normal(), "a")
	plain := types.NewSegment("b").WithWrap(types.CtrlWrap)

	assert.Equal(t, "\x1b[31ma\x01\x1b[0m\x02b", render(t, styled, plain))
}

func TestWrapBoundaryIsolation(t *testing.T) {
	title := types.Title("T").WithWrap(types.CtrlWrap)
	out := render(t, types.NewSegment("a"), title, types.NewSegment("b"))

	assert.Equal(t, "a\x01\x1b]2;T\x1b\\\x02b", out)
	assert.Equal(t, "ab", StripWrapped(out, "\x01", "\x02"))
}

func TestWrappedSequenceHidesEveryEscape(t *testing.T) {
	styles := []types.Style{
		{},
		types.Red.Normal(),
		types.Red.Normal().Bolded(),
		types.Blue.Normal().Underlined(),
		types.Style{Bg: types.Indexed(208), Italic: true},
		{Fg: types.RGB(1, 2, 3)},
	}

	var segs []types.String
	var want strings.Builder
	for i, style := range styles {
		for j, other := range styles {
			text := string(rune('a'+i)) + string(rune('a'+j))
			seg := types.Paint(style, text).WithWrap(types.CtrlWrap)
			if j%2 == 1 {
				seg.Hyperlink(exampleURL)
			}
			segs = append(segs, seg, types.Paint(other, "-").WithWrap(types.CtrlWrap))
			want.WriteString(text + "-")
		}
	}
	segs = append(segs, types.Title("done").WithWrap(types.CtrlWrap))

	out := render(t, segs...)
	visible := StripWrapped(out, "\x01", "\x02")

	assert.Equal(t, want.String(), visible)
	assert.NotContains(t, visible, "\x1b")
	assert.Equal(t, len(want.String()), VisibleWidth(out, types.CtrlWrap))
}

func TestBytesMatchStrings(t *testing.T) {
	red := types.Red.Normal()

	strs := []types.String{
		types.Paint(red, "a"),
		types.Paint(red.Bolded(), "b"),
		types.Title("title").WithWrap(types.CtrlWrap),
	}
	link := types.NewSegment("c")
	link.Hyperlink(exampleURL)
	strs = append(strs, link)

	raws := []types.Bytes{
		types.Paint(red, []byte("a")),
		types.Paint(red.Bolded(), []byte("b")),
		types.Title([]byte("title")).WithWrap(types.CtrlWrap),
	}
	rawLink := types.NewSegment([]byte("c"))
	rawLink.Hyperlink([]byte(exampleURL))
	raws = append(raws, rawLink)

	str, err := ExportSequence(strs)
	require.NoError(t, err)
	raw, err := ExportSequence(raws)
	require.NoError(t, err)

	assert.Equal(t, []byte(str), raw)
}

func TestOSCPayloadIsNotSanitized(t *testing.T) {
	title := types.Title("evil\x1b\\tail")

	out, err := ExportSegment(title)
	require.NoError(t, err)
	assert.Equal(t, "\x1b]2;evil\x1b\\tail\x1b\\", out)
}

type failingWriter struct {
	limit int
	calls int
	buf   bytes.Buffer
}

var errSink = errors.New("sink closed")

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls > w.limit {
		return 0, errSink
	}
	return w.buf.Write(p)
}

func TestWriteSequence_PropagatesSinkError(t *testing.T) {
	segs := []types.String{
		types.Paint(types.Red.Normal(), "a"),
		exampleLink(),
		types.Paint(types.Green.Normal(), "b"),
	}

	full := render(t, segs...)

	for limit := 0; limit < 12; limit++ {
		w := &failingWriter{limit: limit}
		err := WriteSequence(NewSink(w), segs)

		require.ErrorIs(t, err, errSink, "limit %d", limit)
		assert.Equal(t, limit+1, w.calls, "writes must stop at the first failure")
		assert.True(t, strings.HasPrefix(full, w.buf.String()))
	}
}

func TestWriteSegment_PropagatesSinkError(t *testing.T) {
	w := &failingWriter{limit: 1}
	err := WriteSegment(NewSink(w), exampleLink())

	require.ErrorIs(t, err, errSink)
	assert.Equal(t, 2, w.calls)
}

func TestWrappedSegmentMatchesSequence(t *testing.T) {
	policies := map[string]types.WrapPolicy{
		"ctrl":   types.CtrlWrap,
		"custom": types.CustomWrap("<zw>", "</zw>"),
	}

	for name, wrap := range policies {
		t.Run(name, func(t *testing.T) {
			seg := types.Paint(types.Red.Normal(), "hi").WithWrap(wrap)
			begin, end := wrap.Markers()

			single, err := ExportSegment(seg)
			require.NoError(t, err)
			assert.Equal(t, begin+"\x1b[31m"+end+"hi"+begin+"\x1b[0m"+end, single)

			assert.Equal(t, render(t, seg), single)
			assert.Equal(t, 2, VisibleWidth(single, wrap))
		})
	}
}

func TestMixedWrapPolicies(t *testing.T) {
	ctrl := types.CtrlWrap
	custom := types.CustomWrap("<zw>", "</zw>")

	tests := []struct {
		name    string
		segs    []types.String
		want    string
		visible string
	}{
		{
			name: "ctrl region continues into custom title",
			segs: []types.String{
				types.Title("A").WithWrap(ctrl),
				types.Title("B").WithWrap(custom),
			},
			want: "\x01\x1b]2;A\x1b\\\x1b]2;B\x1b\\\x02",
		},
		{
			name: "custom region continues into ctrl title",
			segs: []types.String{
				types.Title("A").WithWrap(custom),
				types.Title("B").WithWrap(ctrl),
			},
			want: "<zw>\x1b]2;A\x1b\\\x1b]2;B\x1b\\</zw>",
		},
		{
			name: "custom region closes before ctrl text",
			segs: []types.String{
				types.Title("A").WithWrap(custom),
				types.Paint(types.Red.Normal(), "x").WithWrap(ctrl),
			},
			want:    "<zw>\x1b]2;A\x1b\\\x1b[31m</zw>x\x01\x1b[0m\x02",
			visible: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, tt.segs...)
			assert.Equal(t, tt.want, out)

			stripped := StripWrapped(StripWrapped(out, "<zw>", "</zw>"), "\x01", "\x02")
			assert.Equal(t, tt.visible, stripped)
			assert.Equal(t, len(tt.visible), VisibleWidth(out, ctrl, custom))
		})
	}
}
