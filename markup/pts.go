package markup

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"honnef.co/go/curve3"
)

// DefaultPTSHeader is the number of header lines in a landmark file written
// by common landmarking tools ("version: 1", "n_points: N").
const DefaultPTSHeader = 2

// ReadPTS reads a whitespace-separated landmark list. The first header lines
// are skipped. Every other line holds "name x y z"; blank lines and the braces
// that some tools wrap the points in are ignored.
func ReadPTS(r io.Reader, header int) (*Markup, error) {
	m := &Markup{CoordinateSystem: LPS}
	sc := bufio.NewScanner(r)
	var line int
	for sc.Scan() {
		line++
		if line <= header {
			continue
		}
		s := strings.TrimSpace(sc.Text())
		if s == "" || s == "{" || s == "}" {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) != 4 {
			return nil, errors.Wrapf(ErrFormat, "line %d: want 4 fields, got %d", line, len(fields))
		}
		var xyz [3]float64
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrFormat, "line %d: %s", line, err)
			}
			xyz[i] = v
		}
		m.Labels = append(m.Labels, fields[0])
		m.Points = append(m.Points, curve3.Pt(xyz[0], xyz[1], xyz[2]))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return m, nil
}
