package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kindled/noaas/internal/reason"
)

func TestLoadMissingFileIsEmptyCorpus(t *testing.T) {
	corpus, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() = %v, want empty corpus", err)
	}
	if corpus == nil || len(corpus) != 0 {
		t.Errorf("corpus = %#v, want empty", corpus)
	}
}

func TestLoadNormalizesRawStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reasons.json")
	data := `["Just no.", {"id": "a1", "reason": "The meeting ran long.", "type": "professional", "tone": "neutral", "topic": "work", "tags": ["work"]}]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	corpus, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(corpus) != 2 {
		t.Fatalf("got %d records, want 2", len(corpus))
	}
	if corpus[0].ID == "" || corpus[0].Type != reason.FallbackType {
		t.Errorf("string entry not normalized: %+v", corpus[0])
	}
	if corpus[1].ID != "a1" || corpus[1].Topic != reason.TopicWork {
		t.Errorf("labeled entry mangled: %+v", corpus[1])
	}
}

func TestLoadRejectsMalformedBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reasons.json")
	if err := os.WriteFile(path, []byte(`[{"reason": "ok"}, {"type": "general"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var malformed *reason.MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("Load() = %v, want MalformedRecordError", err)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reasons.json")
	corpus := reason.Corpus{
		{ID: "a1", Text: "The meeting ran long.", Type: reason.TypeProfessional,
			Tone: reason.ToneNeutral, Topic: reason.TopicWork, Tags: []string{"work", "meeting"}},
		{ID: "a2", Text: "My cat needs me.", Type: reason.TypeGeneral,
			Tone: reason.TonePlayful, Topic: reason.TopicPets, Tags: []string{"pet"}},
	}

	if err := Save(path, corpus); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded) != len(corpus) {
		t.Fatalf("got %d records, want %d", len(loaded), len(corpus))
	}
	for i := range corpus {
		if loaded[i].ID != corpus[i].ID || loaded[i].Text != corpus[i].Text {
			t.Errorf("record %d = %+v, want %+v", i, loaded[i], corpus[i])
		}
	}
}

func TestSaveRefusesCollision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reasons.json")
	corpus := reason.Corpus{
		{ID: "a1", Text: "The meeting ran long."},
		{ID: "a1", Text: "My cat needs me."},
	}

	err := Save(path, corpus)
	var collision *reason.CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("Save() = %v, want CollisionError", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("a rejected corpus still reached disk")
	}
}

func TestLibraryReloadSwapsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reasons.json")
	lib := NewLibrary(path)

	if got := lib.Snapshot(); len(got) != 0 {
		t.Fatalf("fresh library snapshot = %v, want empty", got)
	}

	if err := Save(path, reason.Corpus{{ID: "a1", Text: "Just no."}}); err != nil {
		t.Fatal(err)
	}
	n, err := lib.Reload()
	if err != nil || n != 1 {
		t.Fatalf("Reload() = %d, %v", n, err)
	}
	if got := lib.Snapshot(); len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("snapshot = %v", got)
	}
}

func TestLibraryReloadKeepsOldSnapshotOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reasons.json")
	if err := Save(path, reason.Corpus{{ID: "a1", Text: "Just no."}}); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(path)
	if _, err := lib.Reload(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Reload(); err == nil {
		t.Fatal("Reload accepted a broken dataset")
	}
	if got := lib.Snapshot(); len(got) != 1 {
		t.Errorf("broken reload clobbered the snapshot: %v", got)
	}
}

func TestLoadConfigDefaultsAndEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NOAAS_DATA", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "noaas.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":3000" || cfg.Server.RatePerMinute != 120 {
		t.Errorf("defaults = %+v", cfg.Server)
	}

	t.Setenv("PORT", "8080")
	t.Setenv("NOAAS_DATA", "/tmp/other.json")
	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "noaas.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("PORT override ignored: %q", cfg.Server.Addr)
	}
	if cfg.Data.Path != "/tmp/other.json" {
		t.Errorf("NOAAS_DATA override ignored: %q", cfg.Data.Path)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NOAAS_DATA", "")

	path := filepath.Join(t.TempDir(), "noaas.yaml")
	body := "server:\n  addr: \":9999\"\n  rate_per_minute: 10\ndata:\n  path: custom.json\n  watch: false\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":9999" || cfg.Server.RatePerMinute != 10 {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if cfg.Data.Path != "custom.json" || cfg.Data.Watch {
		t.Errorf("data config = %+v", cfg.Data)
	}
}
