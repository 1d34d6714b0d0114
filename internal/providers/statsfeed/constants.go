package statsfeed

import "time"

const (
	defaultBaseURL     = "https://api.statsfeed.io/v1"
	defaultHTTPTimeout = 10 * time.Second
)
