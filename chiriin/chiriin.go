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

// Package chiriin is a client for the web APIs of the Geospatial
// Information Authority of Japan (GSI): elevation lookup from the
// national digital elevation model, and semi-dynamic correction of
// coordinates for crustal movement.
// See https://vldb.gsi.go.jp/sokuchi/surveycalc/api_help.html.
package chiriin

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/ctessum/requestcache"
	"github.com/sirupsen/logrus"
)

const (
	defaultElevationURL = "https://cyberjapandata2.gsi.go.jp/general/dem/scripts/getelevation.php"
	defaultSemiDynaURL  = "http://vldb.gsi.go.jp/sokuchi/surveycalc/semidyna/web/semidyna_r.php"

	userAgent = "geoshape/1.0"
)

func init() {
	gob.Register(Altitude{})
	gob.Register(Fixed{})
}

// Altitude is the elevation at a point and the resolution of the DEM
// source it came from (for example "5m" or "10m").
type Altitude struct {
	Elevation float64 `json:"elevation"`
	Source    string  `json:"hsrc"`
}

// Fixed holds semi-dynamically corrected coordinates. Altitude is NaN
// when the API does not return a corrected elevation, as is the case
// for the two-dimensional correction.
type Fixed struct {
	Lon, Lat, Altitude float64
}

// Epoch selects the direction of the semi-dynamic correction.
type Epoch int

const (
	// OriginalToCurrent corrects coordinates from the original epoch
	// to the current epoch.
	OriginalToCurrent Epoch = 0
	// CurrentToOriginal corrects coordinates from the current epoch
	// back to the original epoch.
	CurrentToOriginal Epoch = 1
)

// Client requests data from the GSI web APIs. Identical requests are
// served from a cache, and transient API errors are retried with
// exponential backoff.
type Client struct {
	// HTTP is the client used for requests.
	HTTP *http.Client

	// Log receives retry notifications.
	Log *logrus.Logger

	// ElevationURL and SemiDynaURL override the GSI endpoints.
	ElevationURL string
	SemiDynaURL  string

	elevation *requestcache.Cache
	semidyna  *requestcache.Cache
}

// NewClient creates a GSI API client holding up to memCacheSize
// responses in memory. If diskCachePath is not empty, responses are
// additionally cached on disk in that directory.
func NewClient(diskCachePath string, memCacheSize int) *Client {
	c := &Client{
		HTTP:         &http.Client{Timeout: 10 * time.Second},
		Log:          logrus.New(),
		ElevationURL: defaultElevationURL,
		SemiDynaURL:  defaultSemiDynaURL,
	}
	cachefuncs := []requestcache.CacheFunc{
		requestcache.Deduplicate(),
		requestcache.Memory(memCacheSize),
	}
	if diskCachePath != "" {
		cachefuncs = append(cachefuncs, requestcache.Disk(diskCachePath,
			requestcache.MarshalGob, requestcache.UnmarshalGob))
	}
	c.elevation = requestcache.NewCache(c.fetchElevation, 1, cachefuncs...)
	c.semidyna = requestcache.NewCache(c.fetchSemiDyna, 1, cachefuncs...)
	return c
}

// Elevation returns the elevation of the ground surface at lon/lat
// (degrees) from the GSI digital elevation model.
func (c *Client) Elevation(ctx context.Context, lon, lat float64) (Altitude, error) {
	key := fmt.Sprintf("elev_%.9f_%.9f", lon, lat)
	req := c.elevation.NewRequest(ctx, elevationRequest{Lon: lon, Lat: lat}, key)
	result, err := req.Result()
	if err != nil {
		return Altitude{}, err
	}
	return result.(Altitude), nil
}

// SemiDynamic applies the GSI two-dimensional semi-dynamic correction
// to lon/lat (degrees). year selects the correction parameter file
// (survey fiscal year beginning April 1); direction chooses between
// original-to-current and current-to-original epoch correction.
func (c *Client) SemiDynamic(ctx context.Context, lon, lat float64, year int, direction Epoch) (Fixed, error) {
	key := fmt.Sprintf("semidyna_%.9f_%.9f_%d_%d", lon, lat, year, direction)
	req := c.semidyna.NewRequest(ctx, semiDynaRequest{
		Lon: lon, Lat: lat, Year: year, Direction: direction}, key)
	result, err := req.Result()
	if err != nil {
		return Fixed{}, err
	}
	return result.(Fixed), nil
}

type elevationRequest struct {
	Lon, Lat float64
}

func (c *Client) fetchElevation(ctx context.Context, request interface{}) (interface{}, error) {
	r := request.(elevationRequest)
	v := url.Values{}
	v.Set("lon", strconv.FormatFloat(r.Lon, 'f', -1, 64))
	v.Set("lat", strconv.FormatFloat(r.Lat, 'f', -1, 64))
	v.Set("outtype", "JSON")

	var alt Altitude
	op := func() error {
		body, err := c.get(ctx, c.ElevationURL+"?"+v.Encode())
		if err != nil {
			return err
		}
		var resp struct {
			Elevation json.RawMessage `json:"elevation"`
			Source    string          `json:"hsrc"`
			ErrMsg    string          `json:"ErrMsg"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return backoff.Permanent(fmt.Errorf("chiriin: decoding elevation response: %v", err))
		}
		if resp.ErrMsg != "" {
			return fmt.Errorf("chiriin: %s", resp.ErrMsg)
		}
		e, err := strconv.ParseFloat(strings.Trim(string(resp.Elevation), `"`), 64)
		if err != nil {
			// The API reports the string "-----" where no DEM data exists.
			return backoff.Permanent(fmt.Errorf("chiriin: no elevation data at lon=%g lat=%g", r.Lon, r.Lat))
		}
		alt = Altitude{Elevation: e, Source: resp.Source}
		return nil
	}
	if err := c.retry(ctx, op); err != nil {
		return nil, err
	}
	return alt, nil
}

type semiDynaRequest struct {
	Lon, Lat  float64
	Year      int
	Direction Epoch
}

func (c *Client) fetchSemiDyna(ctx context.Context, request interface{}) (interface{}, error) {
	r := request.(semiDynaRequest)
	v := url.Values{}
	v.Set("outputType", "json")
	v.Set("chiiki", fmt.Sprintf("SemiDyna%d.par", r.Year))
	v.Set("sokuchi", strconv.Itoa(int(r.Direction)))
	v.Set("Place", "0")   // coordinates given as lon/lat
	v.Set("Hosei_J", "2") // two-dimensional correction
	v.Set("latitude", strconv.FormatFloat(r.Lat, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(r.Lon, 'f', -1, 64))
	v.Set("altitude1", "0")

	var fixed Fixed
	op := func() error {
		body, err := c.get(ctx, c.SemiDynaURL+"?"+v.Encode())
		if err != nil {
			return err
		}
		var resp struct {
			OutputData struct {
				Latitude  string `json:"latitude"`
				Longitude string `json:"longitude"`
				Altitude  string `json:"altitude"`
			} `json:"OutputData"`
			ErrMsg string `json:"ErrMsg"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return backoff.Permanent(fmt.Errorf("chiriin: decoding semi-dynamic response: %v", err))
		}
		if resp.ErrMsg != "" {
			return fmt.Errorf("chiriin: %s", resp.ErrMsg)
		}
		lon, err := strconv.ParseFloat(resp.OutputData.Longitude, 64)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("chiriin: parsing corrected longitude %q: %v", resp.OutputData.Longitude, err))
		}
		lat, err := strconv.ParseFloat(resp.OutputData.Latitude, 64)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("chiriin: parsing corrected latitude %q: %v", resp.OutputData.Latitude, err))
		}
		alt, err := strconv.ParseFloat(resp.OutputData.Altitude, 64)
		if err != nil {
			alt = math.NaN()
		}
		fixed = Fixed{Lon: lon, Lat: lat, Altitude: alt}
		return nil
	}
	if err := c.retry(ctx, op); err != nil {
		return nil, err
	}
	return fixed, nil
}

func (c *Client) retry(ctx context.Context, op backoff.Operation) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 8), ctx)
	return backoff.RetryNotify(op, b, func(err error, d time.Duration) {
		c.Log.WithError(err).Infof("chiriin: retrying in %v", d)
	})
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chiriin: HTTP status %s", resp.Status)
	}
	return ioutil.ReadAll(resp.Body)
}
