package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mentorhub/mentorhub/internal/config"
)

// backupName returns a timestamped sibling of the database file so repeated
// backups never overwrite each other and sort chronologically.
func backupName(dbPath string, now time.Time) string {
	return fmt.Sprintf("%s.%s.bak", dbPath, now.UTC().Format("20060102-150405"))
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	src := cfg.DatabasePath
	dst := backupName(src, time.Now())

	srcFile, err := os.Open(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database backup written to %s\n", dst)
}
