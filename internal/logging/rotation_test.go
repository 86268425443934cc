package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingWriter_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	rw, err := NewRotatingWriter(path, RotationConfig{MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewRotatingWriter: %v", err)
	}
	defer rw.Close()
	rw.limit = 10

	for _, s := range []string{"aaaaaaaa\n", "bbbbbbbb\n", "cccccccc\n", "dddddddd\n"} {
		if _, err := rw.Write([]byte(s)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	want := map[string]string{
		path:                 "dddddddd\n",
		BackupPath(path, 1): "cccccccc\n",
		BackupPath(path, 2): "bbbbbbbb\n",
	}
	for p, content := range want {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(data) != content {
			t.Errorf("%s = %q, want %q", filepath.Base(p), data, content)
		}
	}
	if _, err := os.Stat(BackupPath(path, 3)); !os.IsNotExist(err) {
		t.Error("only MaxBackups backups should be kept")
	}
}

func TestRotatingWriter_NoBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	rw, _ := NewRotatingWriter(path, RotationConfig{})
	defer rw.Close()
	rw.limit = 4

	_, _ = rw.Write([]byte("1234"))
	_, _ = rw.Write([]byte("5678"))

	data, _ := os.ReadFile(path)
	if string(data) != "5678" {
		t.Errorf("content = %q, want 5678", data)
	}
	if _, err := os.Stat(BackupPath(path, 1)); !os.IsNotExist(err) {
		t.Error("no backup should be written when MaxBackups is 0")
	}
}

func TestRotatingWriter_Compress(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	rw, _ := NewRotatingWriter(path, RotationConfig{MaxBackups: 1, Compress: true})
	rw.limit = 40

	line := `{"time":"2025-01-01T00:00:00Z","level":"INFO","msg":"old"}` + "\n"
	_, _ = rw.Write([]byte(line))
	_, _ = rw.Write([]byte(strings.Replace(line, "old", "new", 1)))
	_ = rw.Close()

	if _, err := os.Stat(BackupPath(path, 1) + ".gz"); err != nil {
		t.Fatalf("compressed backup missing: %v", err)
	}
	if _, err := os.Stat(BackupPath(path, 1)); !os.IsNotExist(err) {
		t.Error("uncompressed backup should be removed")
	}

	entries, err := ReadEntries(dir, 1)
	if err != nil {
		t.Fatalf("ReadEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries across log and backup, got %d", len(entries))
	}
}

func TestRotatingWriter_ReopenKeepsSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	rw, _ := NewRotatingWriter(path, DefaultRotationConfig())
	_, _ = rw.Write([]byte("hello"))
	_ = rw.Close()

	rw2, err := NewRotatingWriter(path, DefaultRotationConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer rw2.Close()
	if rw2.Size() != 5 {
		t.Errorf("Size() = %d, want 5", rw2.Size())
	}
	if rw2.Path() != path {
		t.Errorf("Path() = %q", rw2.Path())
	}
}

func TestRotatingWriter_WriteAfterClose(t *testing.T) {
	rw, _ := NewRotatingWriter(filepath.Join(t.TempDir(), FileName), DefaultRotationConfig())
	_ = rw.Close()
	if _, err := rw.Write([]byte("x")); err == nil {
		t.Error("Write after Close should fail")
	}
	if err := rw.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}
