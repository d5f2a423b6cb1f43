package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"guide@university.edu", true},
		{"first.last+tag@dept.university.edu", true},
		{"", false},
		{"no-at-sign", false},
		{"missing@tld", false},
	}
	for _, tc := range cases {
		if got := ValidateEmail(tc.email); got != tc.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"long enough", "correct-horse", true},
		{"exactly eight", "12345678", true},
		{"too short", "short1", false},
		{"leading space", " padded-pass", false},
		{"trailing space", "padded-pass ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, msg := ValidatePassword(tc.password)
			if ok != tc.want {
				t.Fatalf("ValidatePassword(%q) = %v (%q), want %v", tc.password, ok, msg, tc.want)
			}
			if !ok && msg == "" {
				t.Fatal("rejection must carry a reason")
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  user@x.com\x00 "); got != "user@x.com" {
		t.Fatalf("SanitizeInput = %q", got)
	}
}
