package markup

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"honnef.co/go/curve3"
)

// ReadGeoJSON reads the LineString and MultiLineString features of a GeoJSON
// feature collection as planar curves at z = 0. Every line string becomes its
// own curve, named after the feature's "name" property if it has one. Other
// geometries are skipped.
func ReadGeoJSON(r io.Reader) ([]*Markup, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "%s", err)
	}

	var ms []*Markup
	for _, f := range fc.Features {
		name := f.Properties.MustString("name", "")
		switch g := f.Geometry.(type) {
		case orb.LineString:
			ms = append(ms, lineStringMarkup(name, g))
		case orb.MultiLineString:
			for i, ls := range g {
				part := name
				if part != "" {
					part = fmt.Sprintf("%s-%d", name, i+1)
				}
				ms = append(ms, lineStringMarkup(part, ls))
			}
		}
	}
	return ms, nil
}

// LineString converts a curve's XY projection to an orb line string.
func LineString(points []curve3.Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, pt := range points {
		ls[i] = orb.Point{pt.X, pt.Y}
	}
	return ls
}

func lineStringMarkup(name string, ls orb.LineString) *Markup {
	m := &Markup{Name: name, Points: make([]curve3.Point, len(ls))}
	for i, p := range ls {
		m.Points[i] = curve3.Pt(p.X(), p.Y(), 0)
	}
	return m
}
