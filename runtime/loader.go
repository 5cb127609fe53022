// Package runtime handles the infrastructure-level tasks like loading configuration and files.
package runtime

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"strings"

	"stage-lab/errors"
)

// BlocklistData carries the result of the loading process including metadata for logging.
type BlocklistData struct {
	Words      []string
	Categories []string
}

// BlocklistLoader is responsible for reading and parsing blocked words from embedded files.
type BlocklistLoader struct {
	fs embed.FS
}

// NewBlocklistLoader creates a new instance of BlocklistLoader with the provided embedded filesystem.
func NewBlocklistLoader(f embed.FS) *BlocklistLoader {
	return &BlocklistLoader{fs: f}
}

// LoadAll scans the given directory path in the embedded FS, identifying .txt files
// as blocklist categories and parsing their contents into a unique list of words.
// Entries are upper-cased so they can match validated payloads directly.
func (l *BlocklistLoader) LoadAll(path string) (*BlocklistData, error) {
	entries, err := fs.ReadDir(l.fs, path)
	if err != nil {
		return nil, err
	}

	var categories []string
	uniqueWords := make(map[string]struct{})

	for _, entry := range entries {
		// We only process files, skipping subdirectories
		if entry.IsDir() {
			continue
		}

		// Track the category based on the filename (e.g., "slurs.txt" -> "slurs")
		category := strings.TrimSuffix(entry.Name(), ".txt")
		categories = append(categories, category)

		// Read the file content
		data, err := l.fs.ReadFile(path + "/" + entry.Name())
		if err != nil {
			return nil, err
		}

		// Use a scanner to handle different line endings (\n vs \r\n) correctly
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.ToUpper(strings.TrimSpace(scanner.Text()))
			if line != "" {
				uniqueWords[line] = struct{}{}
			}
		}

		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(uniqueWords) == 0 {
		return nil, errors.ErrEmptyWords
	}

	// Convert the map of unique words into a slice
	words := make([]string, 0, len(uniqueWords))
	for w := range uniqueWords {
		words = append(words, w)
	}

	return &BlocklistData{
		Words:      words,
		Categories: categories,
	}, nil
}
