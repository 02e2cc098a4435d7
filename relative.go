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

// GRS80 ellipsoid, the reference for JGD2011.
const (
	grs80A = 6378137.0
	grs80F = 1 / 298.257222101
)

// RelativeCoords holds the true-north azimuths (degrees, [0,360)) and
// horizontal distances (meters) between consecutive vertices of one
// geometry ring or part.
type RelativeCoords struct {
	Azimuth  []float64
	Distance []float64
}

// AzimuthDistance computes the true-north azimuth (degrees, normalized
// to [0,360)) and the geodesic distance (meters) from one lon/lat
// point to another on the GRS80 ellipsoid, using Vincenty's inverse
// formula. Coincident points give a zero azimuth and distance.
func AzimuthDistance(lon1, lat1, lon2, lat2 float64) (azimuth, distance float64) {
	const rad = math.Pi / 180
	b := grs80A * (1 - grs80F)
	u1 := math.Atan((1 - grs80F) * math.Tan(lat1*rad))
	u2 := math.Atan((1 - grs80F) * math.Tan(lat2*rad))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)
	l := (lon2 - lon1) * rad

	λ := l
	var sinλ, cosλ, sinσ, cosσ, σ, sinα, cosSqα, cos2σm float64
	for i := 0; i < 200; i++ {
		sinλ, cosλ = math.Sincos(λ)
		sinσ = math.Hypot(cosU2*sinλ, cosU1*sinU2-sinU1*cosU2*cosλ)
		cosσ = sinU1*sinU2 + cosU1*cosU2*cosλ
		if sinσ == 0 {
			return 0, 0
		}
		σ = math.Atan2(sinσ, cosσ)
		sinα = cosU1 * cosU2 * sinλ / sinσ
		cosSqα = 1 - sinα*sinα
		if cosSqα == 0 {
			cos2σm = 0 // equatorial line
		} else {
			cos2σm = cosσ - 2*sinU1*sinU2/cosSqα
		}
		c := grs80F / 16 * cosSqα * (4 + grs80F*(4-3*cosSqα))
		λPrev := λ
		λ = l + (1-c)*grs80F*sinα*
			(σ+c*sinσ*(cos2σm+c*cosσ*(-1+2*cos2σm*cos2σm)))
		if math.Abs(λ-λPrev) < 1e-12 {
			break
		}
	}

	uSq := cosSqα * (grs80A*grs80A - b*b) / (b * b)
	a := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bb := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	Δσ := bb * sinσ * (cos2σm + bb/4*
		(cosσ*(-1+2*cos2σm*cos2σm)-
			bb/6*cos2σm*(-3+4*sinσ*sinσ)*(-3+4*cos2σm*cos2σm)))
	distance = b * a * (σ - Δσ)

	azimuth = math.Atan2(cosU2*sinλ, cosU1*sinU2-sinU1*cosU2*cosλ) / rad
	if azimuth < 0 {
		azimuth += 360
	}
	return azimuth, distance
}

// AbsoluteToRelative converts the absolute lon/lat vertices of g into
// bearing-and-distance sequences, one RelativeCoords per ring or part
// of the geometry. epsg gives the spatial reference of g; anything
// other than EPSGLonLat is reprojected to lon/lat before the geodesic
// inverse. If closed is true, rings whose last vertex differs from
// their first are closed by appending the first vertex, so the result
// includes the segment back to the start.
func AbsoluteToRelative(g geom.Geom, epsg int, closed bool) ([]RelativeCoords, error) {
	if epsg != EPSGLonLat {
		var err error
		g, err = Transform(g, epsg, EPSGLonLat)
		if err != nil {
			return nil, err
		}
	}
	rings, err := Rings(g)
	if err != nil {
		return nil, err
	}
	out := make([]RelativeCoords, 0, len(rings))
	for _, ring := range rings {
		if closed && len(ring) > 1 && !ring[0].Equals(ring[len(ring)-1]) {
			closedRing := make([]geom.Point, len(ring)+1)
			copy(closedRing, ring)
			closedRing[len(ring)] = ring[0]
			ring = closedRing
		}
		rc := RelativeCoords{
			Azimuth:  make([]float64, 0, len(ring)),
			Distance: make([]float64, 0, len(ring)),
		}
		for i := 1; i < len(ring); i++ {
			az, d := AzimuthDistance(ring[i-1].X, ring[i-1].Y, ring[i].X, ring[i].Y)
			rc.Azimuth = append(rc.Azimuth, az)
			rc.Distance = append(rc.Distance, d)
		}
		out = append(out, rc)
	}
	return out, nil
}
