package normalize_test

import (
	"testing"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/normalize"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Alice@Example.COM", "alice@example.com"},
		{"  bob@example.com  ", "bob@example.com"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalize.Email(c.in); got != c.want {
			t.Errorf("Email(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestName(t *testing.T) {
	if got := normalize.Name("  Jane   Smith "); got != "Jane Smith" {
		t.Errorf("Name: got %q, want %q", got, "Jane Smith")
	}
}

func TestRole(t *testing.T) {
	if got := normalize.Role(" Admin "); got != "admin" {
		t.Errorf("Role: got %q, want %q", got, "admin")
	}
}
