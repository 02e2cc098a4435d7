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

// Package geoshape constructs planar geometry "materials" for GIS
// workflows: directional rectangle and fan buffers for spatial
// searches, regular hexagons sized by target area, and deterministic
// hexagon-grid tilings of arbitrary extents.
//
// All shapes are built on an already-projected Cartesian plane where x
// is easting and y is northing, in meters. Angles are compass
// bearings: degrees measured clockwise from true north.
package geoshape

import (
	"math"

	"github.com/ctessum/geom"
)

// Version gives the version number of this version of geoshape.
const Version = "0.1.0"

// destination returns the point reached by traveling distance meters
// from base along a compass bearing given in degrees clockwise from
// true north. All shape builders share this single bearing-to-vector
// conversion so that rounding and sign conventions cannot diverge.
func destination(base geom.Point, distance, angle float64) geom.Point {
	rad := angle * math.Pi / 180
	return geom.Point{
		X: base.X + distance*math.Sin(rad),
		Y: base.Y + distance*math.Cos(rad),
	}
}
