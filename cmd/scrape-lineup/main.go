package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"catalogdq/webscrape"
)

func main() {
	var (
		baseURL = flag.String("url", "https://conference.dpw.ai", "Base URL of the conference site")
		outPath = flag.String("out", "./data/lineup.xlsx", "Output xlsx file")
		delay   = flag.Duration("delay", 2*time.Second, "Delay between page requests")
		timeout = flag.Duration("timeout", 10*time.Second, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Verbose output")
	)
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	scraper := webscrape.NewScraper(webscrape.Config{
		BaseURL:   *baseURL,
		Timeout:   *timeout,
		RateLimit: rate.Every(*delay),
	})

	if *verbose {
		log.Printf("Scraping lineup from %s (delay %s)", *baseURL, *delay)
	}

	started := time.Now()
	speakers, err := scraper.ScrapeLineup(context.Background())
	if err != nil {
		log.Fatalf("Failed to scrape the lineup: %v", err)
	}

	if *verbose {
		for _, speaker := range speakers {
			log.Printf("  %s (%s, %s)", speaker.Name, speaker.Title, speaker.Company)
		}
	}

	if err := webscrape.ExportLineup(*outPath, speakers); err != nil {
		log.Fatalf("Failed to export the lineup: %v", err)
	}

	fmt.Printf("Exported %d speakers to %s in %s\n", len(speakers), *outPath, time.Since(started))
}
