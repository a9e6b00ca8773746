package segment

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped segment files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based segment loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "segment-loader").Logger(),
	}
}

// Load reads a gzipped segment file and returns a Directory.
func (l *fileLoader) Load(ctx context.Context, path string) (Directory, error) {
	l.logger.Info().Str("file", path).Msg("loading segment file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open segment file")
		return nil, fmt.Errorf("failed to open segment file %s: %w", path, err)
	}
	defer file.Close()

	dir, err := readDirectory(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read segment file")
		return nil, fmt.Errorf("failed to read segment file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("users_loaded", dir.Size()).
		Msg("segment file loaded successfully")

	return dir, nil
}

// readDirectory parses gzipped lines of the form "user_id,segment".
// Blank lines and lines starting with '#' are skipped. A later line for the
// same user replaces the earlier one.
func readDirectory(ctx context.Context, r io.Reader) (*mapDirectory, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	dir := newMapDirectory(1024)

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%100_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		userID, seg, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		dir.add(userID, seg)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning: %w", err)
	}

	return dir, nil
}

func parseLine(line string) (int64, string, error) {
	idPart, seg, ok := strings.Cut(line, ",")
	if !ok {
		return 0, "", fmt.Errorf("expected user_id,segment but got %q", line)
	}

	userID, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", fmt.Errorf("invalid user id %q", idPart)
	}

	seg = strings.TrimSpace(seg)
	if seg == "" {
		return 0, "", fmt.Errorf("empty segment for user %d", userID)
	}

	return userID, seg, nil
}
