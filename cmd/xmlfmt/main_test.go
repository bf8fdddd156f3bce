package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCommand(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newCommand()
	cmd.SetIn(strings.NewReader(input))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormat(t *testing.T) {
	got, err := runCommand(t, `<root><child class="foo">bar</child></root>`)
	if err != nil {
		t.Fatal(err)
	}
	want := "<root>\n  <child class=\"foo\">bar</child>\n</root>\n"
	if got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatCompact(t *testing.T) {
	got, err := runCommand(t, "<root>\n\t<child/>\n</root>", "--compact")
	if err != nil {
		t.Fatal(err)
	}
	if want := "<root><child/></root>\n"; got != want {
		t.Errorf("output: '%s', want '%s'", got, want)
	}
}

func TestCheck(t *testing.T) {
	got, err := runCommand(t, "<a><b/></a>", "--check")
	if err != nil {
		t.Fatal(err)
	}
	if want := "OK\n"; got != want {
		t.Errorf("output: '%s', want '%s'", got, want)
	}

	if _, err := runCommand(t, "<a><b></a>", "--check"); err == nil {
		t.Error("expected error for mismatched tags")
	}
}

func TestDeclarationKept(t *testing.T) {
	got, err := runCommand(t, `<?xml version="1.1"?><a/>`, "--compact")
	if err != nil {
		t.Fatal(err)
	}
	if want := "<?xml version=\"1.1\"?><a/>\n"; got != want {
		t.Errorf("output: '%s', want '%s'", got, want)
	}
}
