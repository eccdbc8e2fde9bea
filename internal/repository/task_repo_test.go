package repository

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"groceries", "groceries"},
		{"a_c", `a\_c`},
		{"50%", `50\%`},
		{`c:\tmp`, `c:\\tmp`},
		{`%_\`, `\%\_\\`},
		{"", ""},
	}

	for _, c := range cases {
		if got := escapeLike(c.in); got != c.want {
			t.Fatalf("escapeLike(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
