package syntax

import (
	"bytes"
	"testing"
)

func TestIsAtext(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"abcABC123", true},
		{"!#$%&'*+-/=?^_`{|}", true},
		{"mixed123!#$", true},
		{"", false},
		{"hello world", false},
		{"hello\x00world", false},
		{"hello@world", false},
		{"hello,world", false},
		{"hello\"world", false},
		{"hello\tworld", false},
		{"hello\x80world", false},
	}
	for _, c := range cases {
		if got := IsAtext([]byte(c.input)); got != c.want {
			t.Errorf("IsAtext(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsDotString(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"simple", true},
		{"with.dot", true},
		{"with.multiple.dots", true},
		{"special!#$%.chars", true},
		{"", false},
		{".", false},
		{".leading", false},
		{"trailing.", false},
		{"double..dot", false},
		{"with space.com", false},
		{"illegal@.char", false},
		{"hello.\x80world", false},
	}
	for _, c := range cases {
		if got := IsDotString([]byte(c.input)); got != c.want {
			t.Errorf("IsDotString(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsQtextAndQuotedPair(t *testing.T) {
	qtext := map[byte]bool{
		' ': true, 'A': true, 'z': true, '!': true,
		'"': false, '\\': false, 0x80: false, 0x00: false, 0x7f: false,
	}
	for in, want := range qtext {
		if got := IsQtext(in); got != want {
			t.Errorf("IsQtext(%q) = %v, want %v", in, got, want)
		}
	}

	qpair := map[byte]bool{
		'\\': true, ' ': true, '~': true, '!': true, '"': true, 'A': true,
		0x80: false, 0x00: false, 0x7f: false,
	}
	for in, want := range qpair {
		if got := IsQuotedPair(in); got != want {
			t.Errorf("IsQuotedPair(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsQuotedString(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{`"quoted"`, true},
		{`"quoted with space"`, true},
		{`"quoted!#$%&'*+-/=?^_` + "`" + `{|}"`, true},
		{`"quoted\""`, true},
		{`"quoted\\"`, true},
		{`""`, true},
		{`"test\"test\"again"`, true},
		{`"\\"`, true},
		{`"\n"`, true},
		{`"a\"b\"c\"d\"e"`, true},
		{"not quoted", false},
		{`"open quoted`, false},
		{`close quoted"`, false},
		{`"quoted\"`, false},
		{`quoted"text`, false},
		{"\"test\\\x7f\"", false},
		{"\"quoted\x80\"", false},
	}
	for _, c := range cases {
		if got := IsQuotedString([]byte(c.input)); got != c.want {
			t.Errorf("IsQuotedString(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsSubdomain(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"simple", true},
		{"hyphen-ated", true},
		{"mixed-123", true},
		{"multiple--hyphens", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"with space", false},
		{"with.dot", false},
		{"with_underscore", false},
	}
	for _, c := range cases {
		if got := IsSubdomain([]byte(c.input)); got != c.want {
			t.Errorf("IsSubdomain(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsDomain(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"simple", true},
		{"hyphen-ated", true},
		{"mixed-123", true},
		{"with.dot", true},
		{"multiple--hyphens", true},
		// A trailing label separator is tolerated only directly after the
		// first label; after further labels it is an empty label.
		{"trailing.", true},
		{"a.b.", false},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"with space", false},
		{"with_underscore", false},
		{".leading", false},
		{"multiple..dots", false},
		{"subdomain.-leading.com", false},
		{"subdomain.trailing-.com", false},
	}
	for _, c := range cases {
		if got := IsDomain([]byte(c.input)); got != c.want {
			t.Errorf("IsDomain(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsXchar(t *testing.T) {
	cases := map[byte]bool{
		'!': true, '*': true, ',': true, '<': true, '>': true, '~': true,
		'@': true, '-': true,
		' ': false, '+': false, '=': false, '\n': false, 0x7f: false,
		0x80: false,
	}
	for in, want := range cases {
		if got := IsXchar(in); got != want {
			t.Errorf("IsXchar(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSplitOnce(t *testing.T) {
	cases := []struct {
		input         string
		delim         byte
		before, after string
		found         bool
	}{
		{"a:b", ':', "a", "b", true},
		{"key=value", '=', "key", "value", true},
		{"a:b:c", ':', "a", "b:c", true},
		{"abc", ':', "abc", "", false},
		{"", ':', "", "", false},
		{":b", ':', "", "b", true},
		{"a:", ':', "a", "", true},
		{":", ':', "", "", true},
	}
	for _, c := range cases {
		before, after, found := SplitOnce([]byte(c.input), c.delim)
		if string(before) != c.before || string(after) != c.after ||
			found != c.found {
			t.Errorf("SplitOnce(%q, %q) = (%q, %q, %v), want (%q, %q, %v)",
				c.input, c.delim, before, after, found,
				c.before, c.after, c.found)
		}
	}
}

func TestCutPrefixFold(t *testing.T) {
	cases := []struct {
		input, prefix string
		rest          string
		ok            bool
	}{
		{"prefix", "pre", "fix", true},
		{"PrEfIx", "pre", "fIx", true},
		{"FROM:<a@b>", "from:", "<a@b>", true},
		{"prefix", "foo", "", false},
		{"prefix", "", "prefix", true},
		{"", "prefix", "", false},
		{"", "", "", true},
		{"prefix", "prefixes", "", false},
	}
	for _, c := range cases {
		rest, ok := CutPrefixFold([]byte(c.input), []byte(c.prefix))
		if ok != c.ok || (ok && string(rest) != c.rest) {
			t.Errorf("CutPrefixFold(%q, %q) = (%q, %v), want (%q, %v)",
				c.input, c.prefix, rest, ok, c.rest, c.ok)
		}
	}
}

func TestStripDelims(t *testing.T) {
	cases := []struct {
		f     func([]byte) ([]byte, bool)
		name  string
		input string
		inner string
		ok    bool
	}{
		{StripAngled, "StripAngled", "<test>", "test", true},
		{StripAngled, "StripAngled", "<>", "", true},
		{StripAngled, "StripAngled", "test", "", false},
		{StripAngled, "StripAngled", "<test", "", false},
		{StripAngled, "StripAngled", "test>", "", false},
		{StripAngled, "StripAngled", "", "", false},
		{StripBrackets, "StripBrackets", "[test]", "test", true},
		{StripBrackets, "StripBrackets", "[]", "", true},
		{StripBrackets, "StripBrackets", "test", "", false},
		{StripBrackets, "StripBrackets", "[test", "", false},
		{StripBrackets, "StripBrackets", "", "", false},
		{StripQuotes, "StripQuotes", `"test"`, "test", true},
		{StripQuotes, "StripQuotes", `""`, "", true},
		{StripQuotes, "StripQuotes", `"`, "", false},
		{StripQuotes, "StripQuotes", "test", "", false},
	}
	for _, c := range cases {
		inner, ok := c.f([]byte(c.input))
		if ok != c.ok || !bytes.Equal(inner, []byte(c.inner)) && ok {
			t.Errorf("%s(%q) = (%q, %v), want (%q, %v)",
				c.name, c.input, inner, ok, c.inner, c.ok)
		}
	}
}
