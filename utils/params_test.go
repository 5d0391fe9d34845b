package utils

import (
	"net/http/httptest"
	"testing"
)

func TestQueryInt(t *testing.T) {
	cases := []struct {
		name string
		url  string
		def  int
		want int
	}{
		{"present", "/?limit=12", 6, 12},
		{"absent", "/", 6, 6},
		{"not a number", "/?limit=abc", 6, 6},
		{"zero", "/?limit=0", 6, 6},
		{"negative", "/?limit=-3", 6, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.url, nil)
			if got := QueryInt(r, "limit", tc.def); got != tc.want {
				t.Fatalf("QueryInt = %d, want %d", got, tc.want)
			}
		})
	}
}
