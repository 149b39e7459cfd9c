package migrate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/homeshift/homeshift/pkg/errors"
)

// DiffKind classifies one itemized difference between source and destination.
type DiffKind string

const (
	DiffCreated  DiffKind = "created"  // present at source, missing at destination
	DiffChanged  DiffKind = "changed"  // content differs
	DiffDeleted  DiffKind = "deleted"  // present at destination only
	DiffMetadata DiffKind = "metadata" // same content, attributes differ
)

// DiffEntry is one per-path difference reported by the comparison pass.
type DiffEntry struct {
	Kind DiffKind
	Path string
	Raw  string // the original itemized line, kept for the diff report
}

// VerifyOutcome is the per-category verification result.
type VerifyOutcome struct {
	Category Category
	Differs  bool
	// Report is the diff-report file path; empty when the category is clean.
	Report  string
	Entries []DiffEntry
}

// VerifyAll runs the non-mutating comparison pass for every category present
// at the source, independent of whether the current run copied it. That
// deliberately covers the standalone re-verify of a completed earlier run.
//
// Unlike the copy phase, verification never stops early: every category is
// checked and every differing category's report is written before the
// aggregate verdict is returned, so the operator sees the full picture in
// one pass. If any category differs the returned error is a
// *VerifyFailedError.
func VerifyAll(ctx context.Context, srcHome, dstHome string, excludes []string, syncer Syncer, rl *RunLog, reportDir string) ([]VerifyOutcome, error) {
	var outcomes []VerifyOutcome
	var differing []Category

	for _, category := range Catalog {
		present, err := category.PresentAt(srcHome)
		if err != nil {
			return outcomes, errors.WithContext(err, "probe source")
		}
		if !present {
			continue
		}

		logger := rl.Logger().WithField("category", category)
		logger.Info("verifying")

		task := SyncTask{
			Category: category,
			Source:   category.Path(srcHome),
			Dest:     category.Path(dstHome),
			Excludes: excludes,
		}

		var itemized bytes.Buffer
		if err := syncer.Compare(ctx, task, io.MultiWriter(&itemized, rl.Writer())); err != nil {
			return outcomes, errors.WithContext(err, "compare "+string(category))
		}

		entries := parseItemized(&itemized)
		outcome := VerifyOutcome{Category: category, Differs: len(entries) > 0, Entries: entries}
		if outcome.Differs {
			report, err := writeDiffReport(reportDir, category, rl.Stamp(), entries)
			if err != nil {
				return outcomes, err
			}
			outcome.Report = report
			differing = append(differing, category)
			logger.WithField("differences", len(entries)).Errorf("divergence found, report at %s", report)
		} else {
			logger.Info("clean")
		}
		outcomes = append(outcomes, outcome)
	}

	if len(differing) > 0 {
		return outcomes, &VerifyFailedError{Differing: differing}
	}
	return outcomes, nil
}

// parseItemized classifies every itemized line in r.
func parseItemized(r io.Reader) []DiffEntry {
	var entries []DiffEntry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if entry, ok := classifyItemized(scanner.Text()); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// classifyItemized maps one line of rsync --itemize-changes output to a
// DiffEntry. Non-itemized lines (transfer summaries, verbose chatter) and
// the bare "./" root entry are ignored; the root picks up a timestamp touch
// on otherwise identical trees and must not fail an idempotent re-verify.
func classifyItemized(line string) (DiffEntry, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return DiffEntry{}, false
	}

	fields := strings.SplitN(line, " ", 2)
	if len(fields) != 2 {
		return DiffEntry{}, false
	}
	flags := fields[0]
	path := strings.TrimLeft(fields[1], " ")

	if flags == "*deleting" {
		return DiffEntry{Kind: DiffDeleted, Path: path, Raw: line}, true
	}
	if !isItemizedFlags(flags) || path == "./" || path == "." {
		return DiffEntry{}, false
	}

	switch flags[0] {
	case '>', '<', 'c', 'h':
		if strings.Contains(flags, "+") {
			return DiffEntry{Kind: DiffCreated, Path: path, Raw: line}, true
		}
		return DiffEntry{Kind: DiffChanged, Path: path, Raw: line}, true
	case '.':
		// Attribute-only entry: anything beyond the file-type column that
		// isn't '.' or ' ' marks a metadata difference.
		if strings.Trim(flags[2:], ". ") != "" {
			return DiffEntry{Kind: DiffMetadata, Path: path, Raw: line}, true
		}
	}
	return DiffEntry{}, false
}

// isItemizedFlags reports whether s looks like an rsync itemize string:
// an update type followed by a file type and attribute columns.
func isItemizedFlags(s string) bool {
	if len(s) < 9 {
		return false
	}
	return strings.ContainsRune("<>ch.*", rune(s[0])) &&
		strings.ContainsRune("fdLDS", rune(s[1]))
}

// writeDiffReport persists the itemized differences for one category so the
// operator can inspect them after the run exits.
func writeDiffReport(dir string, category Category, stamp string, entries []DiffEntry) (string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WithContext(err, "create report directory")
	}

	path := filepath.Join(dir, fmt.Sprintf("verify-%s-%s.diff", category, stamp))
	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "%s\t%s\t%s\n", entry.Kind, entry.Path, entry.Raw)
	}
	if err := afero.WriteFile(fs, path, []byte(b.String()), 0o644); err != nil {
		return "", errors.WithContext(err, "write diff report")
	}
	return path, nil
}
