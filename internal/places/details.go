package places

import (
	"context"
	"fmt"
	"net/url"
)

const detailFields = "name,formatted_address,formatted_phone_number,website,url,rating,user_ratings_total,business_status"

// Detail is the enriched record for one place.
type Detail struct {
	PlaceID        string
	Name           string
	Address        string
	Phone          string
	Website        string
	Rating         *float64
	ReviewCount    int
	MapsURL        string
	BusinessStatus string
}

// Operational reports whether the business is active. The upstream
// omits business_status for some places; absent means operational.
func (d Detail) Operational() bool {
	return d.BusinessStatus == "" || d.BusinessStatus == "OPERATIONAL"
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Phone            string   `json:"formatted_phone_number"`
		Website          string   `json:"website"`
		URL              string   `json:"url"`
		Rating           *float64 `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		BusinessStatus   string   `json:"business_status"`
	} `json:"result"`
}

// Details fetches the full record for one place id. Calls are paced by
// the client's limiter so a run never hammers the details endpoint.
func (c *Client) Details(ctx context.Context, placeID string) (Detail, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Detail{}, fmt.Errorf("details wait: %w", err)
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailFields)

	var resp detailsResponse
	if err := c.getJSON(ctx, "/maps/api/place/details/json", params, &resp); err != nil {
		return Detail{}, err
	}
	if resp.Status != "OK" {
		return Detail{}, fmt.Errorf("%w: details status %q for %s", ErrUpstream, resp.Status, placeID)
	}

	r := resp.Result
	name := r.Name
	if name == "" {
		name = "Unknown Business"
	}
	mapsURL := r.URL
	if mapsURL == "" {
		mapsURL = "https://www.google.com/maps/place/?q=place_id:" + url.QueryEscape(placeID)
	}

	return Detail{
		PlaceID:        placeID,
		Name:           name,
		Address:        r.FormattedAddress,
		Phone:          r.Phone,
		Website:        r.Website,
		Rating:         r.Rating,
		ReviewCount:    r.UserRatingsTotal,
		MapsURL:        mapsURL,
		BusinessStatus: r.BusinessStatus,
	}, nil
}
