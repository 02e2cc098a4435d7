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
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"gonum.org/v1/gonum/floats"
)

func square(minX, minY, maxX, maxY float64) geom.Polygon {
	return geom.Polygon{{
		{X: minX, Y: minY}, {X: maxX, Y: minY},
		{X: maxX, Y: maxY}, {X: minX, Y: maxY},
		{X: minX, Y: minY}}}
}

func TestNewHexGrid(t *testing.T) {
	extent := square(0, 0, 100, 100)
	grid, err := NewHexGrid("test", 1, extent, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	// The expanded 120×120 m box fits two 93.06 m column pitches and
	// two 107.46 m row pitches.
	if grid.Nrows != 2 || grid.Ncols != 2 {
		t.Fatalf("want 2×2 lattice, got %d×%d", grid.Nrows, grid.Ncols)
	}
	if len(grid.Cells) != 4 {
		t.Fatalf("want 4 cells, got %d", len(grid.Cells))
	}
	r := HexRadius(1)
	if !floats.EqualWithinAbsOrRel(grid.Radius, r, 1e-9, 1e-12) {
		t.Errorf("want radius %g, got %g", r, grid.Radius)
	}

	t.Run("row-major order", func(t *testing.T) {
		for i, cell := range grid.Cells {
			wantRow, wantCol := i/grid.Ncols, i%grid.Ncols
			if cell.Row != wantRow || cell.Col != wantCol {
				t.Errorf("cell %d: want (%d,%d), got (%d,%d)",
					i, wantRow, wantCol, cell.Row, cell.Col)
			}
		}
	})

	t.Run("lattice geometry", func(t *testing.T) {
		hPitch := 1.5 * r
		vPitch := math.Sqrt(3) * r
		for _, cell := range grid.Cells {
			want := geom.Point{
				X: -10 + hPitch*float64(cell.Col),
				Y: 110 - vPitch*float64(cell.Row),
			}
			if cell.Col%2 == 1 {
				want.Y -= vPitch / 2
			}
			c := cell.Polygon.Centroid()
			if !pointsEqual(c, want, 1e-6) {
				t.Errorf("cell (%d,%d): want center %+v, got %+v",
					cell.Row, cell.Col, want, c)
			}
		}
	})

	t.Run("covers the unexpanded extent", func(t *testing.T) {
		for x := 0.0; x <= 100; x += 25 {
			for y := 0.0; y <= 100; y += 25 {
				if _, _, ok := grid.GetIndex(geom.Point{X: x, Y: y}); !ok {
					t.Errorf("point (%g,%g) is not covered", x, y)
				}
			}
		}
	})

	t.Run("cells do not overlap", func(t *testing.T) {
		for i, a := range grid.Cells {
			for _, b := range grid.Cells[i+1:] {
				isect := a.Polygon.Intersection(b.Polygon)
				if isect == nil {
					continue
				}
				if area := isect.Area(); area > 1 {
					t.Errorf("cells (%d,%d) and (%d,%d) overlap by %g m²",
						a.Row, a.Col, b.Row, b.Col, area)
				}
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		again, err := NewHexGrid("test", 1, extent, 10, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(grid.Cells, again.Cells) {
			t.Error("retiling the same inputs gave different cells")
		}
	})

	t.Run("extent rectangle", func(t *testing.T) {
		want := square(-10, -10, 110, 110)
		if !reflect.DeepEqual(grid.Extent, want) {
			t.Errorf("want extent %+v, got %+v", want, grid.Extent)
		}
	})
}

func TestNewHexGridErrors(t *testing.T) {
	extent := square(0, 0, 100, 100)

	for _, test := range []struct {
		name         string
		areaHectares float64
		margin       float64
		param        string
	}{
		{"zero area", 0, 0, "areaHectares"},
		{"negative area", -1, 0, "areaHectares"},
		{"negative margin", 1, -1, "margin"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewHexGrid("test", test.areaHectares, extent, test.margin, nil)
			ipe, ok := err.(InvalidParameterError)
			if !ok {
				t.Fatalf("want InvalidParameterError, got %v", err)
			}
			if ipe.Param != test.param {
				t.Errorf("want invalid parameter %q, got %q", test.param, ipe.Param)
			}
		})
	}

	t.Run("degenerate extent", func(t *testing.T) {
		// A zero-width extent stays degenerate no matter the margin.
		line := geom.Polygon{{{X: 5, Y: 0}, {X: 5, Y: 10}, {X: 5, Y: 0}}}
		_, err := NewHexGrid("test", 1, line, 10, nil)
		if _, ok := err.(DegenerateExtentError); !ok {
			t.Fatalf("want DegenerateExtentError, got %v", err)
		}
	})
}

func TestHexGridGetIndex(t *testing.T) {
	grid, err := NewHexGrid("test", 1, square(0, 0, 100, 100), 10, nil)
	if err != nil {
		t.Fatal(err)
	}

	// The top-left cell center is at (-10, 110).
	rows, cols, ok := grid.GetIndex(geom.Point{X: -10, Y: 110})
	if !ok {
		t.Fatal("top-left cell center not found")
	}
	if len(rows) != 1 || rows[0] != 0 || cols[0] != 0 {
		t.Errorf("want cell (0,0), got rows=%v cols=%v", rows, cols)
	}

	if _, _, ok := grid.GetIndex(geom.Point{X: 1000, Y: 1000}); ok {
		t.Error("point far outside the tiling reported as covered")
	}
}

func TestHexGridWriteToShp(t *testing.T) {
	grid, err := NewHexGrid("hexes", 1, square(0, 0, 100, 100), 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := grid.WriteToShp(dir); err != nil {
		t.Fatal(err)
	}

	d, err := shp.NewDecoder(filepath.Join(dir, "hexes.shp"))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	n := 0
	for {
		g, _, more := d.DecodeRowFields("row", "col")
		if !more {
			break
		}
		if _, ok := g.(geom.Polygonal); !ok {
			t.Errorf("row %d: want polygonal geometry, got %T", n, g)
		}
		n++
	}
	if err := d.Error(); err != nil {
		t.Fatal(err)
	}
	if n != len(grid.Cells) {
		t.Errorf("want %d shapefile rows, got %d", len(grid.Cells), n)
	}
}
