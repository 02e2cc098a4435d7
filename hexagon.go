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
	"github.com/ctessum/unit"
)

// Hectare is the hexagon sizing unit: 10,000 square meters.
var Hectare = unit.New(1e4, unit.Meter2)

// HexRadius returns the circumradius of a regular hexagon enclosing
// the given area in hectares, solving A = (3√3/2)·r².
func HexRadius(areaHectares float64) float64 {
	area := areaHectares * Hectare.Value()
	return math.Sqrt(2 * area / (3 * math.Sqrt(3)))
}

// Hexagon builds a regular flat-top hexagon covering the given area in
// hectares, centered at center. The six vertices lie at equal radius
// from the center at bearings 30°+60°k, so hexagons laid out by
// NewHexGrid share vertical edges with their horizontal neighbors. The
// enclosed polygon area equals areaHectares × 10,000 m².
func Hexagon(areaHectares float64, center geom.Point) (geom.Polygon, error) {
	if areaHectares <= 0 {
		return nil, InvalidParameterError{Param: "areaHectares", Value: areaHectares}
	}
	r := HexRadius(areaHectares)
	ring := make([]geom.Point, 7)
	for k := 0; k < 6; k++ {
		ring[k] = destination(center, r, 30+60*float64(k))
	}
	ring[6] = ring[0]
	return geom.Polygon{ring}, nil
}
