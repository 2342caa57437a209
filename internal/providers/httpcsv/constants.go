package httpcsv

import "time"

const (
	providerName       = "httpcsv"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)
