package parser

import "testing"

func TestParse_FrontmatterAndLogs(t *testing.T) {
	input := []byte("---\njournal: Personal\njournal-start-date: 2024-01-15\n---\n# DAILY NOTE\nBody text.\n# Logs\nHad a great day!\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter["journal"] != "Personal" {
		t.Errorf("frontmatter journal = %v", r.Frontmatter["journal"])
	}
	if !r.HasLogs {
		t.Fatal("HasLogs = false")
	}
	if r.Logs != "Had a great day!\n" {
		t.Errorf("Logs = %q", r.Logs)
	}
	if r.Title != "DAILY NOTE" {
		t.Errorf("Title = %q", r.Title)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.HasLogs {
		t.Error("HasLogs = true for note without Logs section")
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}

func TestExtractLogs_EverythingAfterHeading(t *testing.T) {
	content := "intro\n# Logs\nfirst entry\n\n##### Time - 21:30\nsecond entry\n"
	logs, ok := ExtractLogs(content)
	if !ok {
		t.Fatal("ok = false")
	}
	want := "first entry\n\n##### Time - 21:30\nsecond entry\n"
	if logs != want {
		t.Errorf("logs = %q, want %q", logs, want)
	}
}

func TestExtractLogs_Absent(t *testing.T) {
	if _, ok := ExtractLogs("no logs heading here"); ok {
		t.Error("ok = true for content without Logs heading")
	}
}

func TestDateFromFilename(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"2024-01-15.md", "2024-01-15"},
		{"notes.md", ""},
		{"2024-01-15.txt", ""},
		{"2024-1-5.md", ""},
	}
	for _, c := range cases {
		if got := DateFromFilename(c.name); got != c.want {
			t.Errorf("DateFromFilename(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}
