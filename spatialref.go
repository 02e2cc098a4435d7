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
	"github.com/ctessum/geom/proj"
)

// EPSGLonLat identifies geographic longitude/latitude coordinates.
const EPSGLonLat = 4326

// srDefs maps the EPSG codes used in Japanese survey work to proj4
// definitions: geographic lon/lat, the JGD2011 plane rectangular
// coordinate system zones I–XIX (6669–6687), and the JGD2011 UTM
// zones 51N–55N (6688–6692). JGD2011 is referenced to GRS80.
var srDefs = map[int]string{
	4326: "+proj=longlat +ellps=GRS80 +no_defs",

	6669: "+proj=tmerc +lat_0=33 +lon_0=129.5 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6670: "+proj=tmerc +lat_0=33 +lon_0=131 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6671: "+proj=tmerc +lat_0=36 +lon_0=132.166666666667 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6672: "+proj=tmerc +lat_0=33 +lon_0=133.5 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6673: "+proj=tmerc +lat_0=36 +lon_0=134.333333333333 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6674: "+proj=tmerc +lat_0=36 +lon_0=136 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6675: "+proj=tmerc +lat_0=36 +lon_0=137.166666666667 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6676: "+proj=tmerc +lat_0=36 +lon_0=138.5 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6677: "+proj=tmerc +lat_0=36 +lon_0=139.833333333333 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6678: "+proj=tmerc +lat_0=40 +lon_0=140.833333333333 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6679: "+proj=tmerc +lat_0=44 +lon_0=140.25 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6680: "+proj=tmerc +lat_0=44 +lon_0=142.25 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6681: "+proj=tmerc +lat_0=44 +lon_0=144.25 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6682: "+proj=tmerc +lat_0=26 +lon_0=142 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6683: "+proj=tmerc +lat_0=26 +lon_0=127.5 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6684: "+proj=tmerc +lat_0=26 +lon_0=124 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6685: "+proj=tmerc +lat_0=26 +lon_0=131 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6686: "+proj=tmerc +lat_0=20 +lon_0=136 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	6687: "+proj=tmerc +lat_0=26 +lon_0=154 +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs",

	6688: "+proj=utm +zone=51 +ellps=GRS80 +units=m +no_defs",
	6689: "+proj=utm +zone=52 +ellps=GRS80 +units=m +no_defs",
	6690: "+proj=utm +zone=53 +ellps=GRS80 +units=m +no_defs",
	6691: "+proj=utm +zone=54 +ellps=GRS80 +units=m +no_defs",
	6692: "+proj=utm +zone=55 +ellps=GRS80 +units=m +no_defs",
}

// SR returns the spatial reference for an EPSG code in the registry.
func SR(epsg int) (*proj.SR, error) {
	def, ok := srDefs[epsg]
	if !ok {
		return nil, fmt.Errorf("geoshape: unregistered EPSG code %d", epsg)
	}
	sr, err := proj.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("geoshape: parsing EPSG %d: %v", epsg, err)
	}
	return sr, nil
}

// Transform reprojects g from one registered EPSG code to another.
func Transform(g geom.Geom, inEPSG, outEPSG int) (geom.Geom, error) {
	in, err := SR(inEPSG)
	if err != nil {
		return nil, err
	}
	out, err := SR(outEPSG)
	if err != nil {
		return nil, err
	}
	ct, err := in.NewTransform(out)
	if err != nil {
		return nil, fmt.Errorf("geoshape: creating transform %d to %d: %v", inEPSG, outEPSG, err)
	}
	o, err := g.Transform(ct)
	if err != nil {
		return nil, fmt.Errorf("geoshape: transforming %d to %d: %v", inEPSG, outEPSG, err)
	}
	return o, nil
}

// jgdUTMZones pairs longitude intervals over Japan with the JGD2011
// UTM EPSG code covering them.
var jgdUTMZones = []struct {
	minLon, maxLon float64
	epsg           int
}{
	{120, 126, 6688},
	{126, 132, 6689},
	{132, 138, 6690},
	{138, 144, 6691},
	{144, 150, 6692},
}

// EstimateUTMZone returns the JGD2011 UTM EPSG code for a longitude in
// degrees. Longitudes outside the Japanese zones are an error.
func EstimateUTMZone(lon float64) (int, error) {
	for _, z := range jgdUTMZones {
		if z.minLon <= lon && lon < z.maxLon {
			return z.epsg, nil
		}
	}
	return 0, fmt.Errorf("geoshape: longitude %g is outside the JGD2011 UTM zones", lon)
}

// EstimateUTMZoneGeom returns the JGD2011 UTM EPSG code for the
// centroid of a polygonal geometry.
func EstimateUTMZoneGeom(g geom.Polygonal) (int, error) {
	return EstimateUTMZone(g.Centroid().X)
}
