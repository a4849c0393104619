package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempVault(t)
	content := []byte("# Logs\nHad a quiet day.\n")
	if err := s.Write("2024-01-15.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("2024-01-15.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestExists(t *testing.T) {
	s := tempVault(t)
	if s.Exists("2024-01-15.md") {
		t.Error("Exists = true before write")
	}
	_ = s.Write("2024-01-15.md", []byte("x"))
	if !s.Exists("2024-01-15.md") {
		t.Error("Exists = false after write")
	}
}

func TestListSortedDescending(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("2024-01-14.md", []byte("a"))
	_ = s.Write("2024-01-16.md", []byte("b"))
	_ = s.Write("2024-01-15.md", []byte("c"))
	_ = s.Write("readme.txt", []byte("not md"))

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	want := []string{"2024-01-16.md", "2024-01-15.md", "2024-01-14.md"}
	for i, w := range want {
		if items[i].Path != w {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Path, w)
		}
	}
}

func TestListSkipsSubdirectories(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("2024-01-15.md", []byte("top"))
	_ = s.Write("archive/2020-01-01.md", []byte("nested"))

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Path != "2024-01-15.md" {
		t.Errorf("items = %v, want only the root note", items)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempVault(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteNoLeftoverTemp(t *testing.T) {
	s := tempVault(t)
	original := []byte("original content")
	_ = s.Write("2024-01-15.md", original)

	updated := []byte("updated content")
	if err := s.Write("2024-01-15.md", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("2024-01-15.md")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".laguz-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/laguz-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "laguz-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
