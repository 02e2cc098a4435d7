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

// InvalidParameterError is returned when a shape parameter is outside
// its valid range, such as a non-positive distance or a negative
// margin. No partial result accompanies it.
type InvalidParameterError struct {
	Param string
	Value float64
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("geoshape: invalid parameter %s=%g", e.Param, e.Value)
}

// DegenerateExtentError is returned when a tiling extent's bounding
// box has zero width or height, so no lattice can be laid over it.
type DegenerateExtentError struct {
	Bounds *geom.Bounds
}

func (e DegenerateExtentError) Error() string {
	if e.Bounds == nil {
		return "geoshape: degenerate extent"
	}
	return fmt.Sprintf("geoshape: degenerate extent [%g %g %g %g]",
		e.Bounds.Min.X, e.Bounds.Min.Y, e.Bounds.Max.X, e.Bounds.Max.Y)
}
