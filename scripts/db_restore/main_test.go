package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLatestBackupPicksNewest(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mentorhub.db")

	for _, name := range []string{
		"mentorhub.db.20260101-090000.bak",
		"mentorhub.db.20260829-143005.bak",
		"mentorhub.db.20260515-120000.bak",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	got, err := latestBackup(dbPath)
	if err != nil {
		t.Fatalf("latestBackup: %v", err)
	}
	want := filepath.Join(dir, "mentorhub.db.20260829-143005.bak")
	if got != want {
		t.Fatalf("latestBackup = %q, want %q", got, want)
	}
}

func TestLatestBackupNoneFound(t *testing.T) {
	dir := t.TempDir()
	if _, err := latestBackup(filepath.Join(dir, "mentorhub.db")); err == nil {
		t.Fatalf("expected error when no backups exist")
	}
}
