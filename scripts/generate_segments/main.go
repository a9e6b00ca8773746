package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Writes a gzipped user_id,segment file for the mock segment server.
// Users 1-3 keep the built-in p1/p2/p3 mapping; the rest cycle through
// the configured segments.
func main() {
	out := flag.String("out", "data/segments/users.gz", "output file")
	users := flag.Int("users", 1000, "number of users to write")
	flag.Parse()

	if *users < 3 {
		log.Fatalf("users must be at least 3, got %d", *users)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := createSegmentFile(*out, *users); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d users\n", *out, *users)
	fmt.Println("\nFixed users:")
	fmt.Println("  - 1 -> p1")
	fmt.Println("  - 2 -> p2")
	fmt.Println("  - 3 -> p3")
}

func createSegmentFile(filePath string, users int) error {
	segments := []string{"p1", "p2", "p3"}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	if _, err := fmt.Fprintln(gzipWriter, "# user_id,segment"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for id := 1; id <= users; id++ {
		seg := segments[(id-1)%len(segments)]
		if _, err := fmt.Fprintf(gzipWriter, "%d,%s\n", id, seg); err != nil {
			return fmt.Errorf("failed to write user %d: %w", id, err)
		}
	}

	return nil
}
