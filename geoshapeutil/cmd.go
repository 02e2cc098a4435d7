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

// Package geoshapeutil holds the command-line interface for the
// geoshape geometry toolkit.
package geoshapeutil

import (
	"context"
	"fmt"
	"os"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/geoshape"
	"github.com/spatialmodel/geoshape/chiriin"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var log = logrus.New()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to geoshape.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "area_hectares",
			usage: `
              area_hectares is the area of each tiled hexagon, in hectares.`,
			shorthand:  "a",
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{hexgridCmd.Flags()},
		},
		{
			name: "margin",
			usage: `
              margin expands the extent bounding box by the given number of
              meters on all four sides before tiling.`,
			shorthand:  "m",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{hexgridCmd.Flags()},
		},
		{
			name: "extent",
			usage: `
              extent is the path to the shapefile holding the geometry whose
              bounding box should be tiled.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{hexgridCmd.Flags()},
		},
		{
			name: "out",
			usage: `
              out is the directory the tiled shapefile is written to.`,
			shorthand:  "o",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{hexgridCmd.Flags()},
		},
		{
			name: "name",
			usage: `
              name is the name of the output grid and its shapefile.`,
			defaultVal: "hexgrid",
			flagsets:   []*pflag.FlagSet{hexgridCmd.Flags()},
		},
		{
			name: "xlsx",
			usage: `
              xlsx optionally gives a path to write a tabular summary
              of the grid as an xlsx workbook.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{hexgridCmd.Flags()},
		},
		{
			name: "x",
			usage: `
              x is the easting of the buffer base point, in meters.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{rectCmd.Flags(), fanCmd.Flags()},
		},
		{
			name: "y",
			usage: `
              y is the northing of the buffer base point, in meters.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{rectCmd.Flags(), fanCmd.Flags()},
		},
		{
			name: "distance",
			usage: `
              distance is the buffer length or radius, in meters.`,
			shorthand:  "d",
			defaultVal: 1000.0,
			flagsets:   []*pflag.FlagSet{rectCmd.Flags(), fanCmd.Flags()},
		},
		{
			name: "angle",
			usage: `
              angle is the rectangle bearing in degrees clockwise from
              true north.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{rectCmd.Flags()},
		},
		{
			name: "width",
			usage: `
              width is the rectangle short-axis length, in meters.`,
			shorthand:  "w",
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{rectCmd.Flags()},
		},
		{
			name: "angle1",
			usage: `
              angle1 is the fan start bearing in degrees clockwise from
              true north.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{fanCmd.Flags()},
		},
		{
			name: "angle2",
			usage: `
              angle2 is the fan end bearing; the sweep from angle1 is always
              clockwise, wrapping through 360°/0° when angle2 < angle1.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{fanCmd.Flags()},
		},
		{
			name: "segments",
			usage: `
              segments is the number of arc subdivisions; values below 1
              choose one segment per 5° of sweep.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{fanCmd.Flags()},
		},
		{
			name: "lon",
			usage: `
              lon is the longitude of the query point, in degrees.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{elevationCmd.Flags()},
		},
		{
			name: "lat",
			usage: `
              lat is the latitude of the query point, in degrees.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{elevationCmd.Flags()},
		},
		{
			name: "cache_dir",
			usage: `
              cache_dir optionally gives a directory for caching GSI API
              responses on disk.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{elevationCmd.Flags()},
		},
	}

	Cfg = viper.New()
	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
		}
		Cfg.BindPFlag(option.name, option.flagsets[0].Lookup(option.name))
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(hexgridCmd)
	Root.AddCommand(rectCmd)
	Root.AddCommand(fanCmd)
	Root.AddCommand(elevationCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "geoshape",
	Short: "A tool for building spatial-search geometry.",
	Long: `geoshape builds geometry "materials" for GIS workflows:
directional rectangle and fan buffers, and hexagon grid tilings
of arbitrary extents.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile := Cfg.GetString("config")
		if cfgFile == "" {
			return nil
		}
		Cfg.SetConfigFile(cfgFile)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geoshape: problem reading configuration file: %v", err)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("geoshape v%s\n", geoshape.Version)
	},
	DisableAutoGenTag: true,
}

// hexgridCmd tiles the bounding box of a shapefile's geometry with
// hexagons and writes the result to a new shapefile.
var hexgridCmd = &cobra.Command{
	Use:   "hexgrid",
	Short: "Tile an extent with hexagons",
	Long: `hexgrid reads the geometry in the extent shapefile, tiles its
margin-expanded bounding box with regular hexagons of area_hectares
each, and writes the tiled grid to a shapefile with row and col
attributes. An xlsx summary can optionally be written as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		extentFile := Cfg.GetString("extent")
		if extentFile == "" {
			return fmt.Errorf("geoshape: an extent shapefile must be specified")
		}
		extent, sr, err := readExtent(extentFile)
		if err != nil {
			return err
		}
		grid, err := geoshape.NewHexGrid(
			Cfg.GetString("name"),
			cast.ToFloat64(Cfg.Get("area_hectares")),
			extent,
			cast.ToFloat64(Cfg.Get("margin")),
			sr,
		)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"rows": grid.Nrows,
			"cols": grid.Ncols,
		}).Info("tiled extent")
		if err := grid.WriteToShp(Cfg.GetString("out")); err != nil {
			return err
		}
		if xlsxFile := Cfg.GetString("xlsx"); xlsxFile != "" {
			w, err := os.Create(xlsxFile)
			if err != nil {
				return fmt.Errorf("geoshape: creating xlsx file: %v", err)
			}
			defer w.Close()
			if err := grid.WriteXLSX(w); err != nil {
				return err
			}
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// rectCmd builds a single directional rectangle buffer and prints it
// as GeoJSON.
var rectCmd = &cobra.Command{
	Use:   "rect",
	Short: "Build a directional rectangle buffer",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := geoshape.DirectionalRectangle(
			geom.Point{X: cast.ToFloat64(Cfg.Get("x")), Y: cast.ToFloat64(Cfg.Get("y"))},
			cast.ToFloat64(Cfg.Get("distance")),
			cast.ToFloat64(Cfg.Get("angle")),
			cast.ToFloat64(Cfg.Get("width")),
		)
		if err != nil {
			return err
		}
		return printGeoJSON(p)
	},
	DisableAutoGenTag: true,
}

// fanCmd builds a single directional fan buffer and prints it as
// GeoJSON.
var fanCmd = &cobra.Command{
	Use:   "fan",
	Short: "Build a directional fan buffer",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := geoshape.DirectionalFan(
			geom.Point{X: cast.ToFloat64(Cfg.Get("x")), Y: cast.ToFloat64(Cfg.Get("y"))},
			cast.ToFloat64(Cfg.Get("distance")),
			cast.ToFloat64(Cfg.Get("angle1")),
			cast.ToFloat64(Cfg.Get("angle2")),
			cast.ToInt(Cfg.Get("segments")),
		)
		if err != nil {
			return err
		}
		return printGeoJSON(p)
	},
	DisableAutoGenTag: true,
}

// elevationCmd looks up the elevation at a point using the GSI web API.
var elevationCmd = &cobra.Command{
	Use:   "elevation",
	Short: "Look up the elevation at a point",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := chiriin.NewClient(Cfg.GetString("cache_dir"), 100)
		c.Log = log
		alt, err := c.Elevation(context.Background(),
			cast.ToFloat64(Cfg.Get("lon")), cast.ToFloat64(Cfg.Get("lat")))
		if err != nil {
			return err
		}
		fmt.Printf("%g m (%s)\n", alt.Elevation, alt.Source)
		return nil
	},
	DisableAutoGenTag: true,
}

// readExtent decodes the polygons in a shapefile into a single
// MultiPolygon, along with the file's spatial reference if it has one.
func readExtent(file string) (geom.MultiPolygon, *proj.SR, error) {
	d, err := shp.NewDecoder(file)
	if err != nil {
		return nil, nil, fmt.Errorf("geoshape: opening extent shapefile: %v", err)
	}
	defer d.Close()
	sr, srErr := d.SR()
	if srErr != nil {
		sr = nil // No .prj file; leave the grid untagged.
	}
	var extent geom.MultiPolygon
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		p, ok := g.(geom.Polygonal)
		if !ok {
			return nil, nil, fmt.Errorf("geoshape: extent shapefile contains non-polygonal geometry %T", g)
		}
		extent = append(extent, p.Polygons()...)
	}
	if err := d.Error(); err != nil {
		return nil, nil, fmt.Errorf("geoshape: reading extent shapefile: %v", err)
	}
	if len(extent) == 0 {
		return nil, nil, fmt.Errorf("geoshape: extent shapefile %s contains no geometry", file)
	}
	return extent, sr, nil
}

func printGeoJSON(g geom.Geom) error {
	b, err := geojson.Encode(g)
	if err != nil {
		return fmt.Errorf("geoshape: encoding GeoJSON: %v", err)
	}
	fmt.Println(string(b))
	return nil
}
