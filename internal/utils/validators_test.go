package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"ashish.bhardwaj@fastwise.com", true},
		{"  padded@example.com  ", true},
		{"a@b.co", true},
		{"", false},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"@example.com", false},
	}
	for _, tc := range cases {
		if got := ValidateEmail(tc.email); got != tc.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestValidateStudentID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"ashish_b", true},
		{"Student123", true},
		{"", false},
		{"has space", false},
		{"has-dash", false},
		{"has!bang", false},
	}
	for _, tc := range cases {
		if got := ValidateStudentID(tc.id); got != tc.want {
			t.Errorf("ValidateStudentID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
