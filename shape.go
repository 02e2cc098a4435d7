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
	"math"

	"github.com/ctessum/geom"
)

// fanDegreesPerSegment is the default arc granularity for
// DirectionalFan when the caller does not choose a segment count.
const fanDegreesPerSegment = 5

// DirectionalRectangle builds a rectangular search buffer anchored at
// base. The rectangle's long axis runs from base along the compass
// bearing angle for distance meters, and the shape is centered
// width-wise on that axis, so its short-axis length is width. The
// returned ring is closed and wound counter-clockwise.
func DirectionalRectangle(base geom.Point, distance, angle, width float64) (geom.Polygon, error) {
	if distance <= 0 {
		return nil, InvalidParameterError{Param: "distance", Value: distance}
	}
	if width <= 0 {
		return nil, InvalidParameterError{Param: "width", Value: width}
	}
	far := destination(base, distance, angle)
	h := width / 2
	right := angle + 90
	left := angle - 90
	ring := []geom.Point{
		destination(base, h, right),
		destination(far, h, right),
		destination(far, h, left),
		destination(base, h, left),
	}
	ring = append(ring, ring[0])
	return geom.Polygon{ring}, nil
}

// DirectionalFan builds a circular sector of radius distance swept
// clockwise from bearing angle1 to bearing angle2, for example an
// airport approach corridor. The sweep is always clockwise: an end
// bearing numerically smaller than the start wraps through 360°/0°
// rather than taking the shorter arc, and equal bearings select the
// full circle. In the full-circle case the center vertex is omitted so
// the result approximates a disc instead of a zero-width wedge.
//
// segments is the number of arc subdivisions; more segments give a
// smoother arc at a higher vertex cost. Values below 1 choose one
// segment per 5° of sweep.
func DirectionalFan(base geom.Point, distance, angle1, angle2 float64, segments int) (geom.Polygon, error) {
	if distance <= 0 {
		return nil, InvalidParameterError{Param: "distance", Value: distance}
	}
	sweep := angle2 - angle1
	if sweep <= 0 {
		sweep += 360
	}
	if segments < 1 {
		segments = int(math.Ceil(sweep / fanDegreesPerSegment))
		if segments < 2 {
			segments = 2
		}
	}
	step := sweep / float64(segments)
	var ring []geom.Point
	if sweep < 360 {
		ring = make([]geom.Point, 0, segments+3)
		ring = append(ring, base)
		for i := 0; i <= segments; i++ {
			ring = append(ring, destination(base, distance, angle1+step*float64(i)))
		}
	} else {
		// Full circle: the first and last samples coincide, so the
		// last one is dropped before closing the ring.
		ring = make([]geom.Point, 0, segments+1)
		for i := 0; i < segments; i++ {
			ring = append(ring, destination(base, distance, angle1+step*float64(i)))
		}
	}
	ring = append(ring, ring[0])
	return geom.Polygon{ring}, nil
}
