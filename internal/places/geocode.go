package places

import (
	"context"
	"fmt"
	"net/url"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text location to the coordinates of its first
// match. Zero matches is ErrLocationNotResolvable.
func (c *Client) Geocode(ctx context.Context, location string) (LatLng, error) {
	if location == "" {
		return LatLng{}, fmt.Errorf("%w: empty location", ErrLocationNotResolvable)
	}

	params := url.Values{}
	params.Set("address", location)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", params, &resp); err != nil {
		return LatLng{}, err
	}
	if len(resp.Results) == 0 {
		return LatLng{}, fmt.Errorf("%w: %q", ErrLocationNotResolvable, location)
	}
	return resp.Results[0].Geometry.Location, nil
}
