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

package geoshapeutil

import (
	"testing"
)

func TestOptionsBound(t *testing.T) {
	// Every declared option must be registered with the configuration.
	for _, option := range options {
		if option.flagsets[0].Lookup(option.name) == nil {
			t.Errorf("option %s is not registered as a flag", option.name)
		}
		if Cfg.Get(option.name) == nil {
			t.Errorf("option %s is not bound to the configuration", option.name)
		}
	}
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		name string
		want interface{}
	}{
		{"area_hectares", 1.0},
		{"distance", 1000.0},
		{"width", 100.0},
		{"name", "hexgrid"},
		{"segments", 0},
	}
	for _, test := range tests {
		switch want := test.want.(type) {
		case float64:
			if got := Cfg.GetFloat64(test.name); got != want {
				t.Errorf("%s: want %g, got %g", test.name, want, got)
			}
		case string:
			if got := Cfg.GetString(test.name); got != want {
				t.Errorf("%s: want %q, got %q", test.name, want, got)
			}
		case int:
			if got := Cfg.GetInt(test.name); got != want {
				t.Errorf("%s: want %d, got %d", test.name, want, got)
			}
		}
	}
}

func TestRectCommand(t *testing.T) {
	Root.SetArgs([]string{"rect", "--distance", "500", "--angle", "45", "-w", "50"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := Cfg.GetFloat64("distance"); got != 500 {
		t.Errorf("want distance 500, got %g", got)
	}
}

func TestHexgridRequiresExtent(t *testing.T) {
	Root.SetArgs([]string{"hexgrid"})
	if err := Root.Execute(); err == nil {
		t.Error("want an error when no extent shapefile is given")
	}
}
