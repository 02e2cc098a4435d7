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
	"io"

	"github.com/tealeg/xlsx"
	"gonum.org/v1/gonum/floats"
)

// WriteXLSX writes a tabular summary of the grid to w as an xlsx
// workbook: one row per hexagon with its indices, center coordinates,
// and area, in the same row-major order as Cells, followed by a total
// area row.
func (grid *HexGrid) WriteXLSX(w io.Writer) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(grid.Name)
	if err != nil {
		return fmt.Errorf("geoshape: creating xlsx sheet: %v", err)
	}
	header := sheet.AddRow()
	for _, h := range []string{"row", "col", "x", "y", "area_m2"} {
		header.AddCell().SetString(h)
	}
	areas := make([]float64, len(grid.Cells))
	for i, cell := range grid.Cells {
		c := cell.Polygon.Centroid()
		r := sheet.AddRow()
		r.AddCell().SetInt(cell.Row)
		r.AddCell().SetInt(cell.Col)
		r.AddCell().SetFloat(c.X)
		r.AddCell().SetFloat(c.Y)
		areas[i] = cell.Polygon.Area()
		r.AddCell().SetFloat(areas[i])
	}
	total := sheet.AddRow()
	total.AddCell().SetString("total")
	for i := 0; i < 3; i++ {
		total.AddCell()
	}
	total.AddCell().SetFloat(floats.Sum(areas))
	if err := f.Write(w); err != nil {
		return fmt.Errorf("geoshape: writing xlsx: %v", err)
	}
	return nil
}
