package trisurf

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/soypat/trisurf/internal/d3"
	"go-hep.org/x/hep/csvutil"
	"gonum.org/v1/gonum/spatial/r3"
)

// Table is a fully buffered headerless numeric table. Only the first
// three columns of each row are retained. A Table is never mutated after
// ReadTable returns.
type Table struct {
	rows  [][minColumns]float64
	width int
}

// ReadTable reads r until EOF and parses it as comma separated values
// with no header row. Every row must have at least three fields and the
// first three fields must be numbers. Fields past the third are ignored.
// Blank lines are skipped and spaces around a field are ignored.
func ReadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "trisurf: could not read input")
	}
	data, width, err := trimColumns(data)
	if err != nil {
		return nil, err
	}

	tbl := &csvutil.Table{
		Reader: newCSVReader(bytes.NewReader(data)),
	}
	defer tbl.Close()

	rows, err := tbl.ReadRows(0, -1)
	if err != nil {
		return nil, errors.Wrap(err, "trisurf: could not read rows")
	}
	defer rows.Close()

	t := &Table{width: width}
	for rows.Next() {
		var row [minColumns]float64
		err = rows.Scan(&row[0], &row[1], &row[2])
		if err != nil {
			return nil, errors.Wrapf(err, "trisurf: could not scan row %d", len(t.rows)+1)
		}
		if !d3.IsFinite(r3.Vec{X: row[0], Y: row[1], Z: row[2]}) {
			return nil, errors.Wrapf(ErrNotFinite, "row %d", len(t.rows)+1)
		}
		t.rows = append(t.rows, row)
	}
	if err := rows.Err(); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "trisurf: error while processing row %d", len(t.rows)+1)
	}
	if len(t.rows) == 0 {
		return nil, ErrEmptyInput
	}
	return t, nil
}

// trimColumns verifies every record of data has at least three fields and
// returns the records cut down to their first three space trimmed fields,
// along with the number of fields of the first record.
func trimColumns(data []byte) (trimmed []byte, width int, err error) {
	cr := newCSVReader(bytes.NewReader(data))
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrapf(err, "trisurf: could not read row %d", row)
		}
		if len(record) < minColumns {
			return nil, 0, errors.Wrapf(ErrShortRow, "row %d has %d", row, len(record))
		}
		if row == 1 {
			width = len(record)
		}
		record = record[:minColumns]
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		if err = cw.Write(record); err != nil {
			return nil, 0, err
		}
	}
	if width == 0 {
		return nil, 0, ErrEmptyInput
	}
	cw.Flush()
	return buf.Bytes(), width, cw.Error()
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Width returns the number of fields in the first row of the input,
// including columns past the third which are not retained.
func (t *Table) Width() int { return t.width }

// Row returns the first three values of the ith row.
func (t *Table) Row(i int) [3]float64 { return t.rows[i] }

// Points extracts column 0 as X, column 1 as Y and column 2 as Z.
// The returned columns are index aligned with the table rows.
func (t *Table) Points() PointSet {
	n := len(t.rows)
	ps := PointSet{
		X: make([]float64, n),
		Y: make([]float64, n),
		Z: make([]float64, n),
	}
	for i, row := range t.rows {
		ps.X[i] = row[0]
		ps.Y[i] = row[1]
		ps.Z[i] = row[2]
	}
	return ps
}
