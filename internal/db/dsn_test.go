package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"url form untouched", "postgres://u:p@localhost:5432/hesab?sslmode=disable", "postgres://u:p@localhost:5432/hesab?sslmode=disable"},
		{"quotes trimmed", `"postgres://u@localhost/hesab"`, "postgres://u@localhost/hesab"},
		{"kv gains sslmode", "host=localhost user=hesab dbname=hesab", "host=localhost user=hesab dbname=hesab sslmode=disable"},
		{"kv spacing collapsed", "host=localhost   user=hesab  dbname=hesab sslmode=require", "host=localhost user=hesab dbname=hesab sslmode=require"},
		{"garbage untouched", "not a dsn", "not a dsn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDSN(tt.in); got != tt.want {
				t.Errorf("NormalizeDSN(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
