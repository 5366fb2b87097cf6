package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidateHTTPOrigin(t *testing.T) {
	v := validator.New()
	if err := RegisterCustomValidators(v); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		origin string
		valid  bool
	}{
		{"http://localhost:8080", true},
		{"https://cdn.sparkhub.example.com", true},
		{"http://localhost:8080/", true},
		{"http://localhost:8080/assets", false},
		{"ftp://example.com", false},
		{"localhost:8080", false},
		{"", false},
	}
	for _, tc := range cases {
		err := v.Var(tc.origin, "http_origin")
		if (err == nil) != tc.valid {
			t.Errorf("http_origin(%q): err = %v, want valid=%v", tc.origin, err, tc.valid)
		}
	}
}
