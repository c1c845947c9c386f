package sanitize_test

import (
	"reflect"
	"testing"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/sanitize"
)

func TestText_PlainUnchanged(t *testing.T) {
	if got := sanitize.Text("Met at the open house"); got != "Met at the open house" {
		t.Errorf("plain text changed: %q", got)
	}
}

func TestText_StripsMarkup(t *testing.T) {
	cases := []struct{ in, want string }{
		{"<script>alert(1)</script>hello", "hello"},
		{"<b>bold</b> note", "bold note"},
		{"  <img src=x onerror=alert(1)>  ", ""},
	}
	for _, c := range cases {
		if got := sanitize.Text(c.in); got != c.want {
			t.Errorf("Text(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlice_DropsEmptied(t *testing.T) {
	got := sanitize.Slice([]string{"vip", "<script>x</script>", " client "})
	want := []string{"vip", "client"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Slice: got %v, want %v", got, want)
	}
}
