package util

import "time"

// NowUTC returns the current time as the RFC 3339 UTC string stored on every
// entity. Timestamps are kept as strings end to end so the persisted document
// mirrors the API payloads exactly.
func NowUTC() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
