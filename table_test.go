package trisurf

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestReadTablePoints(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		want  PointSet
		width int
	}{
		{
			name:  "square",
			input: "0,0,0\n1,0,1\n0,1,1\n1,1,2\n",
			want: PointSet{
				X: []float64{0, 1, 0, 1},
				Y: []float64{0, 0, 1, 1},
				Z: []float64{0, 1, 1, 2},
			},
			width: 3,
		},
		{
			name:  "extra columns ignored",
			input: "1,2,3,4,5\n-1,-2,-3,9,9\n0.5,1e2,-7.25,0,0",
			want: PointSet{
				X: []float64{1, -1, 0.5},
				Y: []float64{2, -2, 100},
				Z: []float64{3, -3, -7.25},
			},
			width: 5,
		},
		{
			name:  "ragged wide rows",
			input: "1,2,3\n4,5,6,7\n",
			want: PointSet{
				X: []float64{1, 4},
				Y: []float64{2, 5},
				Z: []float64{3, 6},
			},
			width: 3,
		},
		{
			name:  "blank lines and leading spaces",
			input: "\n1, 2, 3\n\n4,  5,6\n",
			want: PointSet{
				X: []float64{1, 4},
				Y: []float64{2, 5},
				Z: []float64{3, 6},
			},
			width: 3,
		},
		{
			name:  "trailing spaces and CRLF",
			input: "0 ,0 ,0 \r\n1\t, 2 ,3\r\n",
			want: PointSet{
				X: []float64{0, 1},
				Y: []float64{0, 2},
				Z: []float64{0, 3},
			},
			width: 3,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			tbl, err := ReadTable(strings.NewReader(test.input))
			if err != nil {
				t.Fatal(err)
			}
			if tbl.Width() != test.width {
				t.Errorf("got width %d, want %d", tbl.Width(), test.width)
			}
			got := tbl.Points()
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("points mismatch (-want +got):\n%s", diff)
			}
			n := tbl.Len()
			if got.Len() != n || len(got.Y) != n || len(got.Z) != n {
				t.Errorf("columns not aligned with %d rows", n)
			}
			for i := 0; i < n; i++ {
				row := tbl.Row(i)
				if row[0] != got.X[i] || row[1] != got.Y[i] || row[2] != got.Z[i] {
					t.Errorf("row %d %v does not match point %v", i, row, got.At(i))
				}
			}
		})
	}
}

func TestReadTableErrors(t *testing.T) {
	for _, test := range []struct {
		name   string
		input  string
		target error // nil means any error.
	}{
		{name: "empty", input: "", target: ErrEmptyInput},
		{name: "only blank lines", input: "\n\n\n", target: ErrEmptyInput},
		{name: "two columns", input: "1,2\n3,4\n", target: ErrShortRow},
		{name: "later short row", input: "1,2,3\n4,5\n", target: ErrShortRow},
		{name: "non numeric", input: "a,b,c\n"},
		{name: "non numeric later", input: "1,2,3\n4,x,6\n"},
		{name: "nan", input: "1,2,NaN\n", target: ErrNotFinite},
		{name: "inf", input: "Inf,2,3\n", target: ErrNotFinite},
	} {
		t.Run(test.name, func(t *testing.T) {
			tbl, err := ReadTable(strings.NewReader(test.input))
			if err == nil {
				t.Fatalf("expected error, got table with %d rows", tbl.Len())
			}
			if test.target != nil && !errors.Is(err, test.target) {
				t.Errorf("got error %q, want %q", err, test.target)
			}
		})
	}
}
