package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/kindled/noaas/internal/reason"
	"github.com/kindled/noaas/internal/store"
	"github.com/kindled/noaas/internal/ui"
)

func testServer(t *testing.T, corpus reason.Corpus) *httptest.Server {
	t.Helper()
	ui.Init(true)

	path := filepath.Join(t.TempDir(), "reasons.json")
	lib := store.NewLibrary(path)
	if corpus != nil {
		if err := store.Save(path, corpus); err != nil {
			t.Fatal(err)
		}
		if _, err := lib.Reload(); err != nil {
			t.Fatal(err)
		}
	}

	srv := httptest.NewServer(New(lib, store.ServerConfig{}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func testCorpus() reason.Corpus {
	return reason.Corpus{
		{
			ID: "a1", Text: "The meeting ran long.",
			Type: reason.TypeProfessional, Tone: reason.ToneNeutral,
			Topic: reason.TopicWork, Tags: []string{"work", "meeting"},
		},
		{
			ID: "a2", Text: "My cat needs me.",
			Type: reason.TypeGeneral, Tone: reason.TonePlayful,
			Topic: reason.TopicPets, Tags: []string{"pet"},
		},
	}
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res.StatusCode
}

func TestRandomReason(t *testing.T) {
	srv := testServer(t, testCorpus())

	var body map[string]string
	if status := getJSON(t, srv.URL+"/no", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["reason"] != "The meeting ran long." && body["reason"] != "My cat needs me." {
		t.Errorf("reason = %q, not from corpus", body["reason"])
	}
}

func TestRandomReasonEmptyCorpus(t *testing.T) {
	srv := testServer(t, nil)

	var body map[string]string
	if status := getJSON(t, srv.URL+"/no", &body); status != http.StatusOK {
		t.Fatalf("status = %d, empty corpus is not an error", status)
	}
	if body["reason"] != emptyCorpusMessage {
		t.Errorf("reason = %q, want empty-state message", body["reason"])
	}
}

func TestFilteredReason(t *testing.T) {
	srv := testServer(t, testCorpus())

	t.Run("single match is deterministic", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			var rec reason.Reason
			if status := getJSON(t, srv.URL+"/no/rich?topic=pets", &rec); status != http.StatusOK {
				t.Fatalf("status = %d", status)
			}
			if rec.ID != "a2" {
				t.Fatalf("got %q, want a2", rec.ID)
			}
		}
	})

	t.Run("no match is 404 with guidance", func(t *testing.T) {
		var body map[string]string
		if status := getJSON(t, srv.URL+"/no/rich?topic=travel", &body); status != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", status)
		}
		if body["error"] == "" || body["error"] == emptyCorpusMessage {
			t.Errorf("error = %q, want filter guidance distinct from empty state", body["error"])
		}
	})

	t.Run("tag overlap", func(t *testing.T) {
		var rec reason.Reason
		if status := getJSON(t, srv.URL+"/no/rich?tag=meeting,deadline", &rec); status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if rec.ID != "a1" {
			t.Errorf("got %q, want a1", rec.ID)
		}
	})

	t.Run("comma lists and case folding", func(t *testing.T) {
		var rec reason.Reason
		if status := getJSON(t, srv.URL+"/no/rich?topic=TRAVEL,Pets", &rec); status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if rec.ID != "a2" {
			t.Errorf("got %q, want a2", rec.ID)
		}
	})
}

func TestReasonByID(t *testing.T) {
	srv := testServer(t, testCorpus())

	var rec reason.Reason
	if status := getJSON(t, srv.URL+"/no/a1", &rec); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if rec.Text != "The meeting ran long." {
		t.Errorf("text = %q", rec.Text)
	}

	if status := getJSON(t, srv.URL+"/no/zz", nil); status != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", status)
	}
}

func TestListFilters(t *testing.T) {
	srv := testServer(t, testCorpus())

	var body map[string][]filterOption
	if status := getJSON(t, srv.URL+"/filters?topic=work", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	available := func(options []filterOption, value string) bool {
		for _, o := range options {
			if o.Value == value {
				return o.Available
			}
		}
		t.Fatalf("option %q missing", value)
		return false
	}

	// No playful record remains once the work topic is active.
	if available(body["tones"], "playful") {
		t.Error("playful should be grayed out under topic=work")
	}
	if !available(body["tones"], "neutral") {
		t.Error("neutral should stay viable under topic=work")
	}
	if !available(body["tags"], "meeting") {
		t.Error("meeting tag should stay viable under topic=work")
	}
}

func TestHealth(t *testing.T) {
	srv := testServer(t, testCorpus())

	var body map[string]any
	if status := getJSON(t, srv.URL+"/health", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["status"] != "ok" || body["reasons"] != float64(2) {
		t.Errorf("health = %v", body)
	}
}

func TestCORSHeader(t *testing.T) {
	srv := testServer(t, testCorpus())

	res, err := http.Get(srv.URL + "/no")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestRateLimit(t *testing.T) {
	ui.Init(true)
	path := filepath.Join(t.TempDir(), "reasons.json")
	lib := store.NewLibrary(path)

	srv := httptest.NewServer(New(lib, store.ServerConfig{RatePerMinute: 2}).Handler())
	defer srv.Close()

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/no", nil)
		req.Header.Set("CF-Connecting-IP", "203.0.113.7")
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		res.Body.Close()
		statuses = append(statuses, res.StatusCode)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("burst requests = %v, want 200s", statuses[:2])
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", statuses[2])
	}

	// A different client key keeps its own budget.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/no", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.8")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("other client = %d, want 200", res.StatusCode)
	}
}
