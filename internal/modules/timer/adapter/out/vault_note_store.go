package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lockedin/internal/modules/timer/domain"
	timerout "lockedin/internal/modules/timer/port/out"
	"lockedin/internal/platform/markdown"
)

// VaultNoteStore writes one markdown note per completed focus session.
type VaultNoteStore struct {
	notesDir string
}

func NewVaultNoteStore(notesDir string) timerout.SessionNoteStore {
	return &VaultNoteStore{notesDir: notesDir}
}

func (s *VaultNoteStore) Save(_ context.Context, c domain.Completion) (string, error) {
	date := c.CompletedAt
	dir := filepath.Join(s.notesDir, "sessions", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	name := fmt.Sprintf("%s-focus-%dm.md", date.Format("150405"), c.Minutes)
	path := filepath.Join(dir, name)

	fields := []markdown.Field{
		{Key: "schema_version", Value: domain.SchemaVersion},
		{Key: "id", Value: c.SessionID},
		{Key: "started_at", Value: c.StartedAt.Format(time.RFC3339)},
		{Key: "completed_at", Value: c.CompletedAt.Format(time.RFC3339)},
		{Key: "duration_minutes", Value: c.Minutes},
		{Key: "session_number", Value: c.SessionCount},
		{Key: "consecutive_sessions", Value: c.ConsecutiveSessions},
	}
	body := fmt.Sprintf("# Focus session %s\n\n- Duration: %d minutes\n- Session #%d, %d in a row\n\n## Notes\n\n",
		date.Format("2006-01-02 15:04"), c.Minutes, c.SessionCount, c.ConsecutiveSessions)
	rendered, err := markdown.RenderFrontmatter(fields, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}
