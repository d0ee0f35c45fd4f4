package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/mentorhub/mentorhub/internal/config"
)

// latestBackup finds the newest timestamped backup for the database file.
// Backup names embed a UTC timestamp, so lexicographic order is enough.
func latestBackup(dbPath string) (string, error) {
	matches, err := filepath.Glob(dbPath + ".*.bak")
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no backups found for %s", dbPath)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

func main() {
	var from = flag.String("from", "", "Backup file to restore (defaults to the newest)")
	flag.Parse()

	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	src := *from
	if src == "" {
		src, err = latestBackup(cfg.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
			os.Exit(1)
		}
	}

	srcFile, err := os.Open(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database restored from %s\n", src)
}
