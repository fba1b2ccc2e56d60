package ingest

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/certkit/copyright-extractor/constants"
)

// ScanDirectory walks root and returns the certificate files to process, in
// walk order, plus aggregate stats. Hidden entries are skipped when
// requested; unreadable entries are counted and skipped, never fatal.
// Callers that need a stable order must sort the returned entries; walk
// order varies across filesystems.
func ScanDirectory(root string, skipHidden bool, logger *slog.Logger) ([]FileEntry, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var entries []FileEntry
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			logger.Warn("walk error, skipping entry", "path", path, "err", walkErr)
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && IsHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			stats.Skipped++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if !AllowedExt(ext) {
			stats.Skipped++
			return nil
		}
		stats.Matched++
		entries = append(entries, FileEntry{Path: path, Ext: ext})
		return nil
	})
	if err != nil {
		return entries, stats, err
	}
	return entries, stats, nil
}
