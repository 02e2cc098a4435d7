/*
Copyright © 2025 the GeoShape authors.
This file is part of GeoShape.

GeoShape is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GeoShape is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GeoShape.  If not, see <http://www.gnu.org/licenses/>.
*/

package geoshape

import (
	"fmt"

	"github.com/ctessum/geom"
)

// Rings decomposes g into its vertex sequences: one slice per ring or
// part. A Point becomes a single one-vertex sequence, a MultiPolygon
// one sequence per ring of each polygon, and so on. Geometry
// collections are decomposed recursively.
func Rings(g geom.Geom) ([][]geom.Point, error) {
	switch t := g.(type) {
	case geom.Point:
		return [][]geom.Point{{t}}, nil
	case *geom.Point:
		return [][]geom.Point{{*t}}, nil
	case geom.MultiPoint:
		return [][]geom.Point{t}, nil
	case geom.LineString:
		return [][]geom.Point{t}, nil
	case geom.MultiLineString:
		o := make([][]geom.Point, len(t))
		for i, l := range t {
			o[i] = l
		}
		return o, nil
	case geom.Polygon:
		o := make([][]geom.Point, len(t))
		for i, r := range t {
			o[i] = r
		}
		return o, nil
	case geom.MultiPolygon:
		var o [][]geom.Point
		for _, p := range t {
			for _, r := range p {
				o = append(o, r)
			}
		}
		return o, nil
	case geom.GeometryCollection:
		var o [][]geom.Point
		for _, gg := range t {
			rings, err := Rings(gg)
			if err != nil {
				return nil, err
			}
			o = append(o, rings...)
		}
		return o, nil
	}
	return nil, fmt.Errorf("geoshape: unsupported geometry type %T", g)
}

// Points decomposes g into a single flattened vertex list.
func Points(g geom.Geom) ([]geom.Point, error) {
	rings, err := Rings(g)
	if err != nil {
		return nil, err
	}
	n := 0
	for _, r := range rings {
		n += len(r)
	}
	o := make([]geom.Point, 0, n)
	for _, r := range rings {
		o = append(o, r...)
	}
	return o, nil
}

// XY decomposes g into parallel x and y coordinate arrays, flattened
// across all rings and parts.
func XY(g geom.Geom) (x, y []float64, err error) {
	pts, err := Points(g)
	if err != nil {
		return nil, nil, err
	}
	x = make([]float64, len(pts))
	y = make([]float64, len(pts))
	for i, p := range pts {
		x[i] = p.X
		y[i] = p.Y
	}
	return x, y, nil
}
