package places

import (
	"context"
	"fmt"
	"net/url"
)

// maxCandidates bounds the per-run enrichment cost: never more than 20
// details calls regardless of the requested limit.
const maxCandidates = 20

// SearchHit is a minimal nearby-search result, enough to drive a
// details lookup.
type SearchHit struct {
	PlaceID string
	Name    string
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID string `json:"place_id"`
		Name    string `json:"name"`
	} `json:"results"`
}

// NearbySearch returns up to min(limit, 20) candidate places of the
// given type around loc. ZERO_RESULTS is an empty list, not an error.
func (c *Client) NearbySearch(ctx context.Context, loc LatLng, placeType string, radiusM, limit int) ([]SearchHit, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", loc.Lat, loc.Lng))
	params.Set("radius", fmt.Sprintf("%d", radiusM))
	params.Set("type", placeType)

	var resp nearbyResponse
	if err := c.getJSON(ctx, "/maps/api/place/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("%w: nearby search status %q", ErrUpstream, resp.Status)
	}

	if limit <= 0 || limit > maxCandidates {
		limit = maxCandidates
	}
	if len(resp.Results) > limit {
		resp.Results = resp.Results[:limit]
	}

	hits := make([]SearchHit, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.PlaceID == "" {
			continue
		}
		hits = append(hits, SearchHit{PlaceID: r.PlaceID, Name: r.Name})
	}
	return hits, nil
}
