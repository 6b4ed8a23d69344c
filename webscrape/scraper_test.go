package webscrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/time/rate"
)

const lineupPage = `<html><body>
<article class="speaker">
  <div>
    <h3>Alice Martin</h3>
    <h4>Head of Data</h4>
    <div>Acme Logistics</div>
  </div>
  <a href="/speakers/alice-martin">Profile</a>
</article>
<article class="speaker">
  <div>
    <h3>Bob Leroy</h3>
    <h4>CTO</h4>
    <div>Waste Analytics</div>
  </div>
  <a href="/speakers/bob-leroy">Profile</a>
</article>
</body></html>`

const alicePage = `<html><body>
<div class="content"><h1>Alice Martin</h1></div>
<div class="intro">Keynote speaker</div>
<div class="location">Amsterdam</div>
<div class="building">Beurs van Berlage</div>
<article>
  <div class="description">Data quality at scale</div>
  <nav><a href="https://linkedin.example/alice">LinkedIn</a></nav>
</article>
<div class="events">
  <article>
    <span>12 October</span>
    <h3>Opening keynote</h3>
    <div>Main stage</div>
  </article>
</div>
</body></html>`

const bobPage = `<html><body>
<div class="content"><h1>Bob Leroy</h1></div>
</body></html>`

func newLineupServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/speakers/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Path {
		case "/speakers/":
			w.Write([]byte(lineupPage))
		case "/speakers/alice-martin":
			w.Write([]byte(alicePage))
		case "/speakers/bob-leroy":
			w.Write([]byte(bobPage))
		default:
			http.NotFound(w, r)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestScrapeLineup(t *testing.T) {
	server := newLineupServer(t)

	scraper := NewScraper(Config{
		BaseURL:   server.URL,
		RateLimit: rate.Inf,
	})

	speakers, err := scraper.ScrapeLineup(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(speakers) != 2 {
		t.Fatalf("expected 2 speakers, got %d", len(speakers))
	}

	alice := speakers[0]
	if alice.Name != "Alice Martin" {
		t.Errorf("expected name %q, got %q", "Alice Martin", alice.Name)
	}
	if alice.Title != "Head of Data" {
		t.Errorf("expected title %q, got %q", "Head of Data", alice.Title)
	}
	if alice.Company != "Acme Logistics" {
		t.Errorf("expected company %q, got %q", "Acme Logistics", alice.Company)
	}
	if alice.Location != "Amsterdam" {
		t.Errorf("expected location %q, got %q", "Amsterdam", alice.Location)
	}
	if alice.Building != "Beurs van Berlage" {
		t.Errorf("expected building %q, got %q", "Beurs van Berlage", alice.Building)
	}
	if alice.ConferenceTitle != "Opening keynote" {
		t.Errorf("expected conference title %q, got %q", "Opening keynote", alice.ConferenceTitle)
	}
	if alice.ConferenceDate != "12 October" {
		t.Errorf("expected conference date %q, got %q", "12 October", alice.ConferenceDate)
	}
	if alice.LinkedInAccount != "https://linkedin.example/alice" {
		t.Errorf("expected linkedin %q, got %q", "https://linkedin.example/alice", alice.LinkedInAccount)
	}

	// Профиль без дополнительных блоков оставляет поля пустыми
	bob := speakers[1]
	if bob.Name != "Bob Leroy" {
		t.Errorf("expected name %q, got %q", "Bob Leroy", bob.Name)
	}
	if bob.Location != "" || bob.ConferenceTitle != "" {
		t.Errorf("expected empty profile fields, got location %q, conference %q", bob.Location, bob.ConferenceTitle)
	}
}

func TestScrapeLineupEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	scraper := NewScraper(Config{BaseURL: server.URL, RateLimit: rate.Inf})
	if _, err := scraper.ScrapeLineup(context.Background()); err == nil {
		t.Error("expected an error for a page without speakers")
	}
}

func TestScrapeLineupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	scraper := NewScraper(Config{BaseURL: server.URL, RateLimit: rate.Inf})
	if _, err := scraper.ScrapeLineup(context.Background()); err == nil {
		t.Error("expected an error for a 503 response")
	}
}

func TestExportLineup(t *testing.T) {
	speakers := []Speaker{
		{Name: "Alice Martin", Title: "Head of Data", Company: "Acme Logistics", Location: "Amsterdam"},
		{Name: "Bob Leroy", Title: "CTO", Company: "Waste Analytics"},
	}

	path := filepath.Join(t.TempDir(), "lineup.xlsx")
	if err := ExportLineup(path, speakers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open exported file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("failed to read exported sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "name" {
		t.Errorf("expected header to start with %q, got %q", "name", rows[0][0])
	}
	if rows[1][0] != "Alice Martin" {
		t.Errorf("expected first row name %q, got %q", "Alice Martin", rows[1][0])
	}
	if rows[2][2] != "Waste Analytics" {
		t.Errorf("expected second row company %q, got %q", "Waste Analytics", rows[2][2])
	}
}
