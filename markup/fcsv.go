package markup

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"honnef.co/go/curve3"
)

// FCSVVersion is the markups file version written by WriteFCSV.
const FCSVVersion = "4.11"

var fcsvColumns = []string{
	"id", "x", "y", "z", "ow", "ox", "oy", "oz",
	"vis", "sel", "lock", "label", "desc", "associatedNodeID",
}

// ReadFCSV reads a markups fiducial list. Header lines start with '#'; the
// "columns" header, if present, determines where coordinates and labels are
// found, otherwise the standard column order is assumed.
func ReadFCSV(r io.Reader) (*Markup, error) {
	m := &Markup{CoordinateSystem: LPS}
	cols := columnIndex(fcsvColumns)

	br := bufio.NewReader(r)
	var line int
	for {
		b, err := br.Peek(1)
		if err != nil || b[0] != '#' {
			break
		}
		s, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, errors.WithStack(err)
		}
		line++
		key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(s, "#")), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "CoordinateSystem":
			m.CoordinateSystem = coordinateSystem(strings.TrimSpace(value))
		case "columns":
			cols = columnIndex(strings.Split(strings.TrimSpace(value), ","))
		}
	}
	for _, c := range []string{"x", "y", "z"} {
		if _, ok := cols[c]; !ok {
			return nil, errors.Wrapf(ErrFormat, "no %q column", c)
		}
	}

	cr := csv.NewReader(br)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "%s", err)
		}
		row, _ := cr.FieldPos(0)
		row += line

		var xyz [3]float64
		for i, c := range []string{"x", "y", "z"} {
			idx := cols[c]
			if idx >= len(rec) {
				return nil, errors.Wrapf(ErrFormat, "line %d: missing %s coordinate", row, c)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx]), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrFormat, "line %d: %s coordinate: %s", row, c, err)
			}
			xyz[i] = v
		}
		m.Points = append(m.Points, curve3.Pt(xyz[0], xyz[1], xyz[2]))
		var label string
		if idx, ok := cols["label"]; ok && idx < len(rec) {
			label = rec[idx]
		}
		m.Labels = append(m.Labels, label)
	}
	return m, nil
}

// WriteFCSV writes m as a markups fiducial list.
func WriteFCSV(w io.Writer, m *Markup) error {
	bw := bufio.NewWriter(w)
	cs := m.CoordinateSystem
	if cs == "" {
		cs = LPS
	}
	bw.WriteString("# Markups fiducial file version = " + FCSVVersion + "\n")
	bw.WriteString("# CoordinateSystem = " + cs + "\n")
	bw.WriteString("# columns = " + strings.Join(fcsvColumns, ",") + "\n")

	cw := csv.NewWriter(bw)
	for i, pt := range m.Points {
		rec := []string{
			"vtkMRMLMarkupsFiducialNode_" + strconv.Itoa(i),
			formatFloat(pt.X), formatFloat(pt.Y), formatFloat(pt.Z),
			"0", "0", "0", "1",
			"1", "1", "0",
			m.Label(i), "", "",
		}
		if err := cw.Write(rec); err != nil {
			return errors.WithStack(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(bw.Flush())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func columnIndex(cols []string) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[strings.TrimSpace(c)] = i
	}
	return idx
}

// coordinateSystem maps the numeric codes used by older markups files to
// their names.
func coordinateSystem(s string) string {
	switch s {
	case "0":
		return "RAS"
	case "1":
		return LPS
	default:
		return s
	}
}
