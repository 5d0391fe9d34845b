package utils

import (
	"net/http"
	"strconv"
)

// QueryInt reads an integer query parameter, falling back to def when the
// parameter is absent, malformed, or not positive.
func QueryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
