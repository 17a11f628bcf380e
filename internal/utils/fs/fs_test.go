package fs

import (
	"os"
	"path/filepath"
	"testing"
)

// createTestFile creates a test file with given content
func createTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestCreateExclusive(t *testing.T) {
	dir := t.TempDir()
	testPath := filepath.Join(dir, "testfile.txt")

	// First create should succeed
	f, err := CreateExclusive(testPath, 0644)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	f.Close()

	// Second create should fail (file already exists)
	if _, err := CreateExclusive(testPath, 0644); err == nil {
		t.Fatal("Expected error when creating existing file, got nil")
	}
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	createTestFile(t, filepath.Join(dir, "a.txt"), "12345")
	createTestFile(t, filepath.Join(dir, "sub", "b.txt"), "123")
	if err := os.Symlink("a.txt", filepath.Join(dir, "link")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	size, err := DirSize(dir)
	if err != nil {
		t.Fatalf("DirSize() error = %v", err)
	}
	if size != 8 {
		t.Errorf("DirSize() = %d, want 8", size)
	}

	size, err = DirSize(filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatalf("DirSize() error = %v", err)
	}
	if size != 5 {
		t.Errorf("DirSize() on a file = %d, want 5", size)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	dangling := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "nowhere"), dangling); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	if !Exists(dangling) {
		t.Error("a dangling symlink should exist")
	}
	if Exists(filepath.Join(dir, "nowhere")) {
		t.Error("a missing path should not exist")
	}
}
