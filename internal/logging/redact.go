// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package logging

import (
	"net/url"
	"strings"
)

// sensitiveParams are query parameter names whose values never reach the logs.
var sensitiveParams = map[string]bool{
	"key":           true,
	"api_key":       true,
	"apikey":        true,
	"token":         true,
	"access_token":  true,
	"secret":        true,
	"signature":     true,
	"authorization": true,
}

// maxLoggedURL bounds the length of URLs written to logs.
const maxLoggedURL = 512

// SanitizeToken masks a secret, showing only the first and last 4 characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// RedactURL returns raw with credential query parameters and userinfo masked.
// Unparseable input is truncated and returned as-is.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return truncateString(raw, maxLoggedURL)
	}
	if u.User != nil {
		u.User = url.User("***")
	}
	q := u.Query()
	for name, values := range q {
		if !sensitiveParams[strings.ToLower(name)] {
			continue
		}
		for i := range values {
			values[i] = "***"
		}
		q[name] = values
	}
	u.RawQuery = q.Encode()
	return truncateString(u.String(), maxLoggedURL)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
