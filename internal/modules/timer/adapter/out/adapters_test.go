package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	timerout "lockedin/internal/modules/timer/adapter/out"
	"lockedin/internal/modules/timer/domain"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/kvstore"
)

// splitFrontmatter decodes the YAML header of a rendered note and returns it
// with the body that follows.
func splitFrontmatter(t *testing.T, content string) (map[string]any, string) {
	t.Helper()
	const separator = "---\n"
	if !strings.HasPrefix(content, separator) {
		t.Fatalf("expected frontmatter, got %q", content)
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n"+separator)
	if idx < 0 {
		t.Fatalf("missing closing separator in %q", content)
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		t.Fatalf("unmarshal frontmatter: %v", err)
	}
	return meta, rest[idx+len("\n"+separator):]
}

func TestKVStateStoreReportsMissingState(t *testing.T) {
	t.Parallel()
	store := timerout.NewKVStateStore(kvstore.NewMemoryStore())
	if _, err := store.LoadState(context.Background()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	state := domain.NewState(50)
	saved, err := store.SaveState(context.Background(), state)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Revision != 1 {
		t.Fatalf("expected revision 1, got %d", saved.Revision)
	}
	loaded, err := store.LoadState(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.PresetMinutes != 50 || loaded.RemainingSeconds != 3000 {
		t.Fatalf("unexpected loaded state: %+v", loaded)
	}
}

func TestKVStateStoreRejectsStaleRevision(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := timerout.NewKVStateStore(kvstore.NewMemoryStore())

	first, err := store.SaveState(ctx, domain.NewState(25))
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := store.SaveState(ctx, domain.NewState(50)); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict for a save computed before the first write, got %v", err)
	}
	second, err := store.SaveState(ctx, first)
	if err != nil {
		t.Fatalf("save on current revision: %v", err)
	}
	if _, err := store.SaveState(ctx, first); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict for a reused revision, got %v", err)
	}
	loaded, err := store.LoadState(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Revision != second.Revision || loaded.PresetMinutes != 25 {
		t.Fatalf("expected revision %d with 25m preset, got %+v", second.Revision, loaded)
	}
}

func TestVaultNoteStoreWritesDatedNote(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := timerout.NewVaultNoteStore(dir)
	completed := time.Date(2026, 3, 4, 9, 25, 0, 0, time.UTC)

	path, err := store.Save(context.Background(), domain.Completion{
		SessionID:           "abc",
		Minutes:             25,
		StartedAt:           completed.Add(-25 * time.Minute),
		CompletedAt:         completed,
		SessionCount:        3,
		ConsecutiveSessions: 2,
	})
	if err != nil {
		t.Fatalf("save note: %v", err)
	}
	want := filepath.Join(dir, "sessions", "2026", "03", "04", "092500-focus-25m.md")
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	fm, body := splitFrontmatter(t, string(raw))
	if fm["id"] != "abc" || fm["duration_minutes"] != 25 {
		t.Fatalf("unexpected frontmatter: %v", fm)
	}
	if !strings.Contains(body, "Session #3, 2 in a row") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestTickerSourceStopsPulses(t *testing.T) {
	t.Parallel()
	ticks := timerout.NewTickerSource()
	fired := make(chan struct{}, 16)
	ticks.Start(5*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("expected a pulse")
	}
	ticks.Stop()
	ticks.Stop()
	// drain anything in flight, then expect silence
	time.Sleep(20 * time.Millisecond)
	for len(fired) > 0 {
		<-fired
	}
	select {
	case <-fired:
		t.Fatalf("expected no pulse after stop")
	case <-time.After(30 * time.Millisecond):
	}
}
