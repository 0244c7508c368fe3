package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abdidvp/visualkraft/internal/domain"
)

const (
	historyFile = ".visualkraft/history/runs.json"
	// DefaultLimit is how many runs are retained.
	DefaultLimit = 200
)

// FileHistory implements domain.RunHistory using JSON file storage. Only the
// most recent limit entries are kept.
type FileHistory struct {
	limit int
}

func New() *FileHistory {
	return &FileHistory{limit: DefaultLimit}
}

func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > h.limit {
		entries = entries[len(entries)-h.limit:]
	}

	fp := filepath.Join(projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	// Write then rename so a crash never leaves a truncated history.
	tmp := fp + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, fp)
}

func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	fp := filepath.Join(projectPath, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}

	return entries, nil
}

// EntryFor summarises a run for the history file.
func EntryFor(r *domain.ValidationResult) domain.RunEntry {
	return domain.RunEntry{
		Timestamp:  r.StartedAt.UTC().Format(time.RFC3339),
		RunID:      r.RunID,
		CommitHash: r.CommitHash,
		BaseURL:    r.BaseURL,
		Pages:      r.Pages,
		Overall:    r.OverallScore,
		Verdict:    r.OverallVerdict,
	}
}
