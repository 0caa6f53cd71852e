package checker_test

import (
	"strings"
	"testing"
	"urlcheck/internal/checker"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "no scheme", in: "example.com", want: "https://example.com"},
		{name: "http kept", in: "http://example.com", want: "http://example.com"},
		{name: "https kept", in: "https://example.com", want: "https://example.com"},
		{name: "uppercase scheme kept", in: "HTTPS://EXAMPLE.COM", want: "HTTPS://EXAMPLE.COM"},
		{name: "trailing slash stripped", in: "https://example.com/", want: "https://example.com"},
		{name: "only one slash stripped", in: "https://example.com//", want: "https://example.com/"},
		{name: "whitespace trimmed", in: "  example.com \n", want: "https://example.com"},
		{name: "path kept", in: "https://example.com/a/b?q=1", want: "https://example.com/a/b?q=1"},
		{name: "other scheme treated as hostname", in: "ftp://example.com", want: "https://ftp://example.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, checker.Normalize(tc.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, u := range []string{"example.com", "https://example.com/", "HTTP://EXAMPLE.COM/path/"} {
		once := checker.Normalize(u)
		require.Equal(t, once, checker.Normalize(once))
	}
}

func TestHashURL(t *testing.T) {
	h := checker.HashURL("https://example.com")
	require.Len(t, h, 64)
	require.Equal(t, h, checker.HashURL("https://example.com"))
	require.NotEqual(t, h, checker.HashURL("https://example.org"))
}

// Case and trailing-slash variants of the same URL must share a cache key.
func TestHashURL_VariantsCollapse(t *testing.T) {
	for _, u := range []string{"example.com", "https://example.com", "http://example.com/path"} {
		a := checker.HashURL(checker.Normalize(u))
		b := checker.HashURL(checker.Normalize(strings.ToUpper(u) + "/"))
		require.Equal(t, a, b, "variants of %q must hash identically", u)
	}
}
