package places

import "errors"

var (
	// ErrUpstream covers transport failures, non-2xx responses and
	// non-OK API statuses. Fatal for geocode/search, skip-and-continue
	// for per-candidate details.
	ErrUpstream = errors.New("places upstream error")

	// ErrLocationNotResolvable means geocoding returned zero matches.
	ErrLocationNotResolvable = errors.New("location not resolvable")
)
