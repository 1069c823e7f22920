package normalize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "annotations and whitespace",
			in:   "Hello [Music] world   \n\n  foo ♪",
			want: "Hello world foo",
		},
		{
			name: "case insensitive lexicon",
			in:   "intro [MUSIC] middle [Applause] end",
			want: "intro middle end",
		},
		{
			name: "generic bracketed span",
			in:   "before [sound of typing] after",
			want: "before after",
		},
		{
			name: "note glyph variants",
			in:   "la ♫ la ♬ la ♩",
			want: "la la la",
		},
		{
			name: "bracketed notes",
			in:   "a [♪♪] b [♪] c",
			want: "a b c",
		},
		{
			name: "newlines collapse",
			in:   "line one\r\nline two\n\n\nline three",
			want: "line one line two line three",
		},
		{
			name: "space before punctuation",
			in:   "wait , what ?",
			want: "wait, what?",
		},
		{
			name: "missing space after punctuation",
			in:   "done.Next up",
			want: "done. Next up",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "only annotations",
			in:   "[Music] [Applause]",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello [Music] world   \n\n  foo ♪",
		"wait , what ?He said.Yes",
		"plain text already clean",
		"[foreign] ♪♪ [intro music]\n\n",
	}

	for _, in := range inputs {
		once := Text(in)
		twice := Text(once)
		if once != twice {
			t.Errorf("Text not idempotent on %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestJoin(t *testing.T) {
	parts := []string{"Hello", "[Music]", "world"}

	if got := Join(parts); got != "Hello world" {
		t.Errorf("Join() = %q, want %q", got, "Hello world")
	}

	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"a b  c", 3},
	}
	for _, tt := range tests {
		if got := WordCount(tt.in); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
