package vim

import "testing"

func TestQuoteRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"plain", "/src/a.c"},
		{"spaces", "/src/my project/a.c"},
		{"single quotes", "/src/don't/a.c"},
		{"double quotes", `/src/say "hi"/a.c`},
		{"backslashes", `C:\src\a.c`},
		{"mixed", `/tmp/o'brien \ "x"/f.c`},
		{"empty", ""},
		{"only quotes", "'''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quoted := Quote(tt.in)
			got, ok := Unquote(quoted)
			if !ok {
				t.Fatalf("Unquote(%q) not well-formed", quoted)
			}
			if got != tt.in {
				t.Errorf("round trip = %q, want %q", got, tt.in)
			}
		})
	}
}

func TestQuoteDoublesQuotes(t *testing.T) {
	if got := Quote("a'b"); got != "'a''b'" {
		t.Errorf("Quote(a'b) = %q, want 'a''b'", got)
	}
}

func TestUnquoteMalformed(t *testing.T) {
	tests := []string{
		"",
		"'",
		"abc",
		"'abc",
		"abc'",
		"'a'b'",
	}
	for _, in := range tests {
		if _, ok := Unquote(in); ok {
			t.Errorf("Unquote(%q) should reject", in)
		}
	}
}
