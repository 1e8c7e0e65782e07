package detect

import "testing"

func TestNormalizeLangNameAliases(t *testing.T) {
	cases := map[string]string{
		"JS":     "javascript",
		"Ts":     "javascript",
		"golang": "go",
		"Py":     "python",
		"bash":   "shell",
		"rs":     "rust",
		"kotlin": "kotlin",
	}
	for input, want := range cases {
		if got := NormalizeLangName(input); got != want {
			t.Fatalf("NormalizeLangName(%q)=%q want %q", input, got, want)
		}
	}
}

func TestCanonicalDetectLangsDedupes(t *testing.T) {
	in := []string{" js ", "TS", "rb", "PY", ""}
	got := CanonicalDetectLangs(in)
	want := []string{"javascript", "ruby", "python"}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value mismatch at %d: got=%q want=%q", i, got[i], want[i])
		}
	}
}

func TestFromPathAndContentByPath(t *testing.T) {
	cases := map[string]Info{
		"src/lib.rs":         {Name: Rust, Source: true},
		"cmd/main.go":        {Name: Go, Source: true},
		"web/App.TSX":        {Name: JavaScript, Source: true},
		"scripts/ci.bats":    {Name: Shell, Source: true},
		"lib/tasks/db.rake":  {Name: Ruby, Source: true},
		"Gemfile":            {Name: Ruby, Source: false},
		"tool.pyi":           {Name: Python, Source: true},
		"src/native/codec.c": {Name: "", Source: true},
		"README.md":          {Name: "", Source: false},
		"Cargo.toml":         {Name: "", Source: false},
	}
	for path, want := range cases {
		if got := FromPathAndContent(path, nil); got != want {
			t.Fatalf("FromPathAndContent(%q)=%+v want %+v", path, got, want)
		}
	}
}

func TestFromPathAndContentShebang(t *testing.T) {
	cases := map[string]string{
		"#!/bin/bash\nset -e\n":                  Shell,
		"#!/usr/bin/env python3\nprint(1)\n":     Python,
		"#!/usr/bin/env -S node --no-warnings\n": JavaScript,
		"#!/usr/bin/env ruby":                    Ruby,
		"#!/usr/bin/env FOO=1 python3.11\n":      Python,
		"#!/usr/bin/perl\n":                      "",
		"no shebang here\n":                      "",
		"#!\n":                                   "",
	}
	for content, want := range cases {
		got := FromPathAndContent("bin/tool", []byte(content))
		if got.Name != want {
			t.Fatalf("shebang %q: got=%q want=%q", content, got.Name, want)
		}
		if (want != "") != got.Source {
			t.Fatalf("shebang %q: source flag mismatch: %+v", content, got)
		}
	}
}

func TestMatchesLangAndKnown(t *testing.T) {
	info := Info{Name: Python, Source: true}
	if !MatchesLang(info, nil) {
		t.Fatal("empty allow list should match")
	}
	if !MatchesLang(info, []string{"rb", "py"}) {
		t.Fatal("expected py alias to match python")
	}
	if MatchesLang(Info{}, []string{"py"}) {
		t.Fatal("undetected file should not match")
	}
	if !KnownLanguage("TypeScript") || KnownLanguage("kotlin") || KnownLanguage("") {
		t.Fatal("KnownLanguage mismatch")
	}
}
