package las

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataUnwrapped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		spec  DecodeSpec
		want  [][]string
	}{
		{
			name:  "comma null substitution",
			lines: []string{"10.0,,30.0"},
			spec:  DecodeSpec{CurveCount: 3, Delimiter: DelimiterComma, NullValue: -999.25},
			want:  [][]string{{"10.0", "-999.25", "30.0"}},
		},
		{
			name:  "comma trailing empty",
			lines: []string{"10.0, 20.0,"},
			spec:  DecodeSpec{CurveCount: 3, Delimiter: DelimiterComma, NullValue: -999.25},
			want:  [][]string{{"10.0", "20.0", "-999.25"}},
		},
		{
			name:  "tab positional",
			lines: []string{"1\t\t3", "4\t5\t6"},
			spec:  DecodeSpec{CurveCount: 3, Delimiter: DelimiterTab, NullValue: -1},
			want:  [][]string{{"1", "-1", "3"}, {"4", "5", "6"}},
		},
		{
			name:  "space runs",
			lines: []string{"  1.0    2.0\t3.0  "},
			spec:  DecodeSpec{CurveCount: 3, Delimiter: DelimiterSpace, NullValue: -999.25},
			want:  [][]string{{"1.0", "2.0", "3.0"}},
		},
		{
			name:  "invalid decodes as space",
			lines: []string{"1.0 2.0"},
			spec:  DecodeSpec{CurveCount: 2, Delimiter: DelimiterInvalid, NullValue: -999.25},
			want:  [][]string{{"1.0", "2.0"}},
		},
		{
			name:  "short row padded",
			lines: []string{"1.0"},
			spec:  DecodeSpec{CurveCount: 3, Delimiter: DelimiterSpace, NullValue: -999.25},
			want:  [][]string{{"1.0", "-999.25", "-999.25"}},
		},
		{
			name:  "long row truncated",
			lines: []string{"1 2 3 4"},
			spec:  DecodeSpec{CurveCount: 2, Delimiter: DelimiterUnspecified, NullValue: -999.25},
			want:  [][]string{{"1", "2"}},
		},
		{
			name:  "blank and comment lines skipped",
			lines: []string{"", "# note", "1 2", "   ", "3 4"},
			spec:  DecodeSpec{CurveCount: 2, NullValue: -999.25},
			want:  [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:  "no data",
			lines: nil,
			spec:  DecodeSpec{CurveCount: 2, NullValue: -999.25},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeData(tt.lines, tt.spec)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeDataSpaceMatchesUnspecified(t *testing.T) {
	t.Parallel()

	lines := []string{"100.0 50.2", "101.0   -999.25"}
	space, err := DecodeData(lines, DecodeSpec{CurveCount: 2, Delimiter: DelimiterSpace, NullValue: -999.25})
	require.NoError(t, err)
	unspecified, err := DecodeData(lines, DecodeSpec{CurveCount: 2, Delimiter: DelimiterUnspecified, NullValue: -999.25})
	require.NoError(t, err)
	assert.Equal(t, space, unspecified)
}

func TestDecodeDataWrapped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		count int
		want  [][]string
	}{
		{
			name:  "record spans three lines",
			lines: []string{"100.0", "1.0 2.0", "3.0"},
			count: 4,
			want:  [][]string{{"100.0", "1.0", "2.0", "3.0"}},
		},
		{
			name:  "excess tokens truncated",
			lines: []string{"100.0", "1.0 2.0", "3.0"},
			count: 3,
			want:  [][]string{{"100.0", "1.0", "2.0"}},
		},
		{
			name: "variable physical lines per record",
			lines: []string{
				"1", "a b c d",
				"2", "a", "b", "c", "d",
				"3", "a b", "c d",
			},
			count: 5,
			want: [][]string{
				{"1", "a", "b", "c", "d"},
				{"2", "a", "b", "c", "d"},
				{"3", "a", "b", "c", "d"},
			},
		},
		{
			name:  "dangling partial record dropped",
			lines: []string{"1", "a b", "2", "a"},
			count: 3,
			want:  [][]string{{"1", "a", "b"}},
		},
		{
			name:  "comment between lines",
			lines: []string{"1", "# interruption", "a b"},
			count: 3,
			want:  [][]string{{"1", "a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeData(tt.lines, DecodeSpec{CurveCount: tt.count, Wrapped: true, NullValue: -999.25})
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
			for _, row := range got {
				assert.Len(t, row, tt.count)
			}
		})
	}
}

func TestDecodeDataWrappedFailures(t *testing.T) {
	t.Parallel()

	_, err := DecodeData([]string{"1 2 3"}, DecodeSpec{CurveCount: 3, Wrapped: true, Delimiter: DelimiterInvalid})
	assert.ErrorIs(t, err, ErrWrappedDelimiter)

	_, err = DecodeData([]string{"1", "2"}, DecodeSpec{CurveCount: 3, Wrapped: true})
	assert.ErrorIs(t, err, ErrIncompleteRecord)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 1, de.Line)

	_, err = DecodeData([]string{"1"}, DecodeSpec{CurveCount: 0})
	assert.ErrorIs(t, err, ErrNoCurves)
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"100.0", "50.2"},
		{"101.0", "garbled"},
		{"102.0", "-999.25"},
	}
	got := assemble(rows, 2)
	want := [][]float64{
		{100.0, 101.0, 102.0},
		{50.2, 0, -999.25},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("matrix mismatch (-want +got):\n%s", diff)
	}

	empty := assemble(nil, 3)
	assert.Len(t, empty, 3)
	for _, col := range empty {
		assert.Empty(t, col)
	}
}
