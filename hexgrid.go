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
	"math"
	"os"
	"path/filepath"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/geom/proj"
	goshp "github.com/jonas-p/go-shp"
)

// TiledHexagon is one cell of a hexagon grid tiling. Row 0, Col 0 is
// the top-left lattice cell; Row increases downward and Col increases
// rightward. The index is a pure function of the cell's lattice
// position, so retiling the same inputs reproduces it exactly.
type TiledHexagon struct {
	geom.Polygon
	Row, Col int
}

// HexGrid is a tiling of an extent with regular flat-top hexagons
// addressed by stable (row, column) indices.
type HexGrid struct {
	Name string

	// Nrows and Ncols are the lattice dimensions.
	Nrows, Ncols int

	// Radius is the hexagon circumradius in meters.
	Radius float64

	// Cells holds the tiled hexagons in row-major order (row
	// ascending, then column ascending). The ordering is part of the
	// tiling contract and may be relied on by callers.
	Cells []*TiledHexagon

	// Extent is the margin-expanded bounding box the tiling covers.
	Extent geom.Polygon

	// SR is the spatial reference of the grid, if known.
	SR *proj.SR

	index *rtree.Rtree
}

// NewHexGrid tiles the axis-aligned bounding box of extent, expanded
// by margin on all four sides, with regular flat-top hexagons covering
// areaHectares each. Lattice pitch follows from the circumradius r:
// 1.5·r between columns and √3·r between rows, with odd columns
// shifted down by half a row so that adjacent hexagons share edges
// without overlapping. The first lattice center sits on the top-left
// corner of the expanded box; centers continue until they would pass
// its right or bottom edge, with the row and column counts fixed up
// front from the box size and pitch.
//
// Hexagons are not clipped to extent's exact boundary: every lattice
// cell inside the expanded box is included, even if it falls entirely
// outside extent itself. Callers needing exact coverage must intersect
// downstream.
func NewHexGrid(name string, areaHectares float64, extent geom.Polygonal, margin float64, sr *proj.SR) (*HexGrid, error) {
	if areaHectares <= 0 {
		return nil, InvalidParameterError{Param: "areaHectares", Value: areaHectares}
	}
	if margin < 0 {
		return nil, InvalidParameterError{Param: "margin", Value: margin}
	}
	b := extent.Bounds()
	if b.Empty() || b.Max.X-b.Min.X == 0 || b.Max.Y-b.Min.Y == 0 {
		return nil, DegenerateExtentError{Bounds: b}
	}
	b = b.Copy()
	b.Min.X -= margin
	b.Min.Y -= margin
	b.Max.X += margin
	b.Max.Y += margin

	r := HexRadius(areaHectares)
	hPitch := 1.5 * r
	vPitch := math.Sqrt(3) * r
	nCols := int((b.Max.X-b.Min.X)/hPitch) + 1
	nRows := int((b.Max.Y-b.Min.Y)/vPitch) + 1

	grid := &HexGrid{
		Name:   name,
		Nrows:  nRows,
		Ncols:  nCols,
		Radius: r,
		Cells:  make([]*TiledHexagon, 0, nRows*nCols),
		SR:     sr,
		index:  rtree.NewTree(25, 50),
	}
	for row := 0; row < nRows; row++ {
		for col := 0; col < nCols; col++ {
			center := geom.Point{
				X: b.Min.X + hPitch*float64(col),
				Y: b.Max.Y - vPitch*float64(row),
			}
			if col%2 == 1 {
				center.Y -= vPitch / 2
			}
			hex, err := Hexagon(areaHectares, center)
			if err != nil {
				return nil, err
			}
			cell := &TiledHexagon{Polygon: hex, Row: row, Col: col}
			grid.index.Insert(cell)
			grid.Cells = append(grid.Cells, cell)
		}
	}
	grid.Extent = geom.Polygon{{
		{X: b.Min.X, Y: b.Min.Y}, {X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y}, {X: b.Min.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Min.Y}}}
	return grid, nil
}

// GetIndex returns the row and column indices of the grid cells
// containing point p. Usually there is one of each, but a point lying
// on a shared edge belongs to every touching cell. withinGrid is false
// if p is outside the tiling.
func (grid *HexGrid) GetIndex(p geom.Point) (rows, cols []int, withinGrid bool) {
	for _, cI := range grid.index.SearchIntersect(p.Bounds()) {
		c := cI.(*TiledHexagon)
		if p.Within(c.Polygon) == geom.Outside {
			continue
		}
		rows = append(rows, c.Row)
		cols = append(cols, c.Col)
	}
	return rows, cols, len(rows) > 0
}

// WriteToShp writes the grid to a shapefile in directory outdir, with
// row and col attribute fields.
func (grid *HexGrid) WriteToShp(outdir string) error {
	for _, ext := range []string{".shp", ".prj", ".dbf", ".shx"} {
		os.Remove(filepath.Join(outdir, grid.Name+ext))
	}
	fields := make([]goshp.Field, 2)
	fields[0] = goshp.NumberField("row", 10)
	fields[1] = goshp.NumberField("col", 10)
	shpf, err := shp.NewEncoderFromFields(filepath.Join(outdir, grid.Name+".shp"),
		goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("geoshape: creating shapefile: %v", err)
	}
	for _, cell := range grid.Cells {
		if err := shpf.EncodeFields(cell.Polygon, cell.Row, cell.Col); err != nil {
			return fmt.Errorf("geoshape: writing shapefile: %v", err)
		}
	}
	shpf.Close()
	return nil
}
