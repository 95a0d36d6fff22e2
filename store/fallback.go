// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/fivefourventures/vendor-survey/auth"
	"github.com/fivefourventures/vendor-survey/models"
)

// fallbackFile is the degraded storage path: a JSON array of responses on
// local disk, written only when the database rejects an insert. The format
// matches the backup export, so the file can be recovered later through the
// admin import.
type fallbackFile struct {
	path string
	mu   sync.Mutex
}

// Append adds one response to the fallback file, creating it on first use.
// The write goes through a temp file and rename so a crash mid-write cannot
// corrupt previously saved responses. The temp name carries a random suffix
// so two processes pointed at the same path cannot clobber each other's
// in-flight write.
func (f *fallbackFile) Append(resp models.SurveyResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	responses, err := f.load()
	if err != nil {
		return err
	}
	responses = append(responses, resp)

	data, err := json.MarshalIndent(responses, "", "  ")
	if err != nil {
		return fmt.Errorf("fallback: failed to encode responses: %w", err)
	}

	suffix, err := auth.GenerateID(4)
	if err != nil {
		return fmt.Errorf("fallback: failed to name temp file: %w", err)
	}
	tmp := fmt.Sprintf("%s.%s.tmp", f.path, suffix)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("fallback: failed to write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("fallback: failed to replace %q: %w", f.path, err)
	}
	return nil
}

func (f *fallbackFile) load() ([]models.SurveyResponse, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return []models.SurveyResponse{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fallback: failed to read %q: %w", f.path, err)
	}

	var responses []models.SurveyResponse
	if err := json.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("fallback: corrupt file %q: %w", f.path, err)
	}
	return responses, nil
}
