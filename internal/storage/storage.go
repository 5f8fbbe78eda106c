// Package storage handles persistence of scraped stadium dumps as JSON files.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkarpinski/stadiums/internal/stadium"
)

// FilenameTimestampFormat is used in dump file names.
const FilenameTimestampFormat = "20060102_150405"

// ReadableTimestampFormat is embedded inside the dump payload.
const ReadableTimestampFormat = "2006-01-02 15:04:05"

// Dump is the top-level payload written to a dump file.
type Dump struct {
	Timestamp string                         `json:"timestamp"`
	Countries []*stadium.CountryStadiumsData `json:"countries"`
}

// Options controls how a dump file is named.
type Options struct {
	// Prefix is prepended verbatim to the file name.
	Prefix string
	// Filename overrides the generated name entirely (extension optional).
	Filename string
	// Timestamp appends the current time to the generated name.
	Timestamp bool
}

// Storage writes and reads dump files under a base output directory.
type Storage struct {
	outputDir string
}

// New creates a Storage rooted at outputDir, creating it if needed.
// A leading ~/ expands to the user's home directory.
func New(outputDir string) (*Storage, error) {
	if strings.HasPrefix(outputDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		outputDir = filepath.Join(home, outputDir[2:])
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{outputDir: outputDir}, nil
}

// OutputDir returns the resolved base directory.
func (s *Storage) OutputDir() string {
	return s.outputDir
}

func (s *Storage) dumpPath(opts Options, now time.Time) string {
	if opts.Filename != "" {
		name := opts.Filename
		if !strings.HasSuffix(name, ".json") {
			name += ".json"
		}
		return filepath.Join(s.outputDir, name)
	}
	name := opts.Prefix + "dump"
	if opts.Timestamp {
		name += "_" + now.Format(FilenameTimestampFormat)
	}
	return filepath.Join(s.outputDir, name+".json")
}

// SaveDump writes the countries' data as an indented JSON dump and returns
// the path written.
func (s *Storage) SaveDump(countries []*stadium.CountryStadiumsData, opts Options) (string, error) {
	now := time.Now()
	dump := Dump{
		Timestamp: now.Format(ReadableTimestampFormat),
		Countries: countries,
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding dump: %w", err)
	}

	path := s.dumpPath(opts, now)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing dump: %w", err)
	}
	return path, nil
}

// LoadDump reads a dump previously written by SaveDump.
func (s *Storage) LoadDump(path string) (*Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dump: %w", err)
	}

	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("parsing dump: %w", err)
	}
	return &dump, nil
}

// SaveDiagnostics writes unrecognized header diagnostics next to the dumps.
func (s *Storage) SaveDiagnostics(unknown map[string][]string) (string, error) {
	data, err := json.MarshalIndent(unknown, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding diagnostics: %w", err)
	}

	path := filepath.Join(s.outputDir, "diagnostics.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing diagnostics: %w", err)
	}
	return path, nil
}
