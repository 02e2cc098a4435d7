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

package chiriin

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestElevation(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		if got := r.URL.Query().Get("outtype"); got != "JSON" {
			t.Errorf("want outtype=JSON, got %q", got)
		}
		fmt.Fprint(w, `{"elevation":25.3,"hsrc":"5m（レーザ）"}`)
	}))
	defer srv.Close()

	c := NewClient("", 10)
	c.ElevationURL = srv.URL

	alt, err := c.Elevation(context.Background(), 139.766084, 35.681382)
	if err != nil {
		t.Fatal(err)
	}
	if alt.Elevation != 25.3 {
		t.Errorf("want elevation 25.3, got %g", alt.Elevation)
	}
	if alt.Source != "5m（レーザ）" {
		t.Errorf("want source 5m（レーザ）, got %q", alt.Source)
	}

	// The same query again comes from the cache.
	if _, err := c.Elevation(context.Background(), 139.766084, 35.681382); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Errorf("want 1 API call, got %d", n)
	}
}

func TestElevationRetry(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			fmt.Fprint(w, `{"ErrMsg":"server busy"}`)
			return
		}
		fmt.Fprint(w, `{"elevation":-3.2,"hsrc":"10m"}`)
	}))
	defer srv.Close()

	c := NewClient("", 10)
	c.ElevationURL = srv.URL

	alt, err := c.Elevation(context.Background(), 135, 35)
	if err != nil {
		t.Fatal(err)
	}
	if alt.Elevation != -3.2 {
		t.Errorf("want elevation -3.2, got %g", alt.Elevation)
	}
	if n := atomic.LoadInt64(&calls); n != 2 {
		t.Errorf("want 2 API calls, got %d", n)
	}
}

func TestElevationNoData(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		// The API reports this over open water.
		fmt.Fprint(w, `{"elevation":"-----","hsrc":"-----"}`)
	}))
	defer srv.Close()

	c := NewClient("", 10)
	c.ElevationURL = srv.URL

	_, err := c.Elevation(context.Background(), 140, 34)
	if err == nil {
		t.Fatal("want an error where no DEM data exists")
	}
	if !strings.Contains(err.Error(), "no elevation data") {
		t.Errorf("unexpected error: %v", err)
	}
	// A permanent error is not retried.
	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Errorf("want 1 API call, got %d", n)
	}
}

func TestSemiDynamic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("chiiki"); got != "SemiDyna2023.par" {
			t.Errorf("want chiiki=SemiDyna2023.par, got %q", got)
		}
		if got := q.Get("Hosei_J"); got != "2" {
			t.Errorf("want Hosei_J=2, got %q", got)
		}
		if got := q.Get("sokuchi"); got != "0" {
			t.Errorf("want sokuchi=0, got %q", got)
		}
		if got := q.Get("outputType"); got != "json" {
			t.Errorf("want outputType=json, got %q", got)
		}
		fmt.Fprint(w, `{"OutputData":{"latitude":"35.681386123","longitude":"139.766079456","altitude":"-----"}}`)
	}))
	defer srv.Close()

	c := NewClient("", 10)
	c.SemiDynaURL = srv.URL

	fixed, err := c.SemiDynamic(context.Background(), 139.766084, 35.681382, 2023, OriginalToCurrent)
	if err != nil {
		t.Fatal(err)
	}
	if fixed.Lon != 139.766079456 || fixed.Lat != 35.681386123 {
		t.Errorf("want (139.766079456, 35.681386123), got (%v, %v)", fixed.Lon, fixed.Lat)
	}
	// The two-dimensional correction carries no corrected elevation.
	if !math.IsNaN(fixed.Altitude) {
		t.Errorf("want NaN altitude, got %g", fixed.Altitude)
	}
}

func TestSemiDynamicError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"OutputData":{"latitude":"not a number","longitude":"x","altitude":""}}`)
	}))
	defer srv.Close()

	c := NewClient("", 10)
	c.SemiDynaURL = srv.URL

	if _, err := c.SemiDynamic(context.Background(), 139, 35, 2023, CurrentToOriginal); err == nil {
		t.Fatal("want an error for an unparseable response")
	}
}
