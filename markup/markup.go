// Package markup reads and writes the landmark files that curves are stored
// in: 3D Slicer markups fiducial lists (.fcsv), plain landmark lists (.pts),
// and GeoJSON line strings.
package markup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"honnef.co/go/curve3"
)

// LPS is the coordinate system Slicer writes by default.
const LPS = "LPS"

// ErrFormat is wrapped by all errors caused by malformed input.
var ErrFormat = errors.New("malformed markup file")

// Markup is a named, ordered list of control points.
type Markup struct {
	Name             string
	CoordinateSystem string
	// Labels holds per-point labels. It is either empty or as long as Points.
	Labels []string
	Points []curve3.Point
}

// Label returns the label of the i-th point, falling back to "<name>-<i+1>".
func (m *Markup) Label(i int) string {
	if i < len(m.Labels) && m.Labels[i] != "" {
		return m.Labels[i]
	}
	return fmt.Sprintf("%s-%d", m.Name, i+1)
}

// Base returns the file name without directory and extension.
func Base(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads the curves stored in the file at path, picking the format by
// file extension. FCSV and PTS files hold a single curve named after the file;
// GeoJSON files may hold several.
func Load(path string) ([]*Markup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	var ms []*Markup
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".fcsv":
		m, err := ReadFCSV(f)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		ms = []*Markup{m}
	case ".pts":
		m, err := ReadPTS(f, DefaultPTSHeader)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		ms = []*Markup{m}
	case ".geojson", ".json":
		ms, err = ReadGeoJSON(f)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		for i, m := range ms {
			if m.Name == "" {
				m.Name = fmt.Sprintf("%s-%d", Base(path), i+1)
			}
		}
		return ms, nil
	default:
		return nil, errors.Errorf("%s: unsupported file extension %q", path, ext)
	}
	ms[0].Name = Base(path)
	return ms, nil
}

// Save writes m to path as a markups fiducial list.
func Save(path string, m *Markup) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.WithStack(cerr)
		}
	}()
	return WriteFCSV(f, m)
}
