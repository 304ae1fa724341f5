package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:5173", "https://Cards.example.com/"})

	cases := map[string]bool{
		"":                          true,
		"http://localhost:5173":     true,
		"https://cards.example.com": true,
		"http://localhost:3000":     false,
		"https://evil.example":      false,
	}
	for origin, want := range cases {
		r := httptest.NewRequest("GET", "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		assert.Equal(t, want, check(r), "origin %q", origin)
	}

	open := originChecker([]string{"*"})
	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Origin", "https://anywhere.example")
	assert.True(t, open(r))
}
