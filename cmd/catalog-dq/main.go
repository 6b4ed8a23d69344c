package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalogdq/catalog"
	"catalogdq/matching"
	"catalogdq/pipeline"
)

func main() {
	var (
		ccapPath         = flag.String("ccap", "", "Path to the CCAP input file (xlsx)")
		clearPath        = flag.String("clear", "", "Path to the CLEAR input file (xlsx)")
		outDir           = flag.String("out", "./data", "Output directory")
		format           = flag.String("format", "excel", "Export format (excel, csv, json)")
		threshold        = flag.Float64("threshold", 0, "Similarity threshold override (0 keeps the source default)")
		algorithms       = flag.String("algorithms", "", "Comma-separated similarity algorithms (empty keeps the default set)")
		workers          = flag.Int("workers", 0, "Number of matching workers (0 uses all CPUs)")
		failOnNoMatches  = flag.Bool("fail-on-no-matches", false, "Treat the absence of qualifying pairs as an error")
		fallbackShortest = flag.Bool("fallback-shortest", true, "Use the shortest member label when clusters share no words")
		verbose          = flag.Bool("verbose", false, "Verbose output")
	)
	flag.Parse()

	if *ccapPath == "" && *clearPath == "" {
		fmt.Println("Usage: catalog-dq [options]")
		fmt.Println("\nOptions:")
		fmt.Println("  -ccap <path>          Path to the CCAP input file (xlsx)")
		fmt.Println("  -clear <path>         Path to the CLEAR input file (xlsx)")
		fmt.Println("  -out <dir>            Output directory (default: ./data)")
		fmt.Println("  -format <format>      Export format: excel, csv or json (default: excel)")
		fmt.Println("  -threshold <value>    Similarity threshold override, 0..1")
		fmt.Println("  -algorithms <list>    Comma-separated algorithms (levenshtein, damerau_levenshtein, jaccard, jaro_winkler, cosine)")
		fmt.Println("  -workers <n>          Number of matching workers")
		fmt.Println("  -fail-on-no-matches   Treat the absence of qualifying pairs as an error")
		fmt.Println("  -fallback-shortest    Use the shortest member label when clusters share no words (default: true)")
		fmt.Println("  -verbose              Verbose output")
		fmt.Println("\nExamples:")
		fmt.Println("  catalog-dq -ccap ./data/ccap.xlsx -clear ./data/clear.xlsx")
		fmt.Println("  catalog-dq -ccap ./data/ccap.xlsx -threshold 0.95 -format json")
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	exportFormat := catalog.ExportFormat(*format)
	extension := map[catalog.ExportFormat]string{
		catalog.FormatExcel: "xlsx",
		catalog.FormatCSV:   "csv",
		catalog.FormatJSON:  "json",
	}[exportFormat]
	if extension == "" {
		log.Fatalf("Unknown export format: %s", *format)
	}

	sources := []struct {
		source catalog.Source
		path   string
	}{
		{catalog.SourceCCAP, *ccapPath},
		{catalog.SourceCLEAR, *clearPath},
	}

	ctx := context.Background()
	exporter := catalog.NewExporter()
	started := time.Now()

	var combined []*catalog.Record
	for _, input := range sources {
		if input.path == "" {
			continue
		}

		config := pipeline.NewDefaultConfig(input.source, input.path)
		if *threshold > 0 {
			config.Threshold = *threshold
		}
		if *algorithms != "" {
			config.Algorithms = parseAlgorithms(*algorithms)
		}
		config.Workers = *workers
		config.FailOnNoMatches = *failOnNoMatches
		config.FallbackShortest = *fallbackShortest

		if *verbose {
			log.Printf("Processing %s: %s (threshold %.2f, algorithms %v)",
				input.source, input.path, config.Threshold, config.Algorithms)
		}

		p, err := pipeline.New(config)
		if err != nil {
			log.Fatalf("Failed to configure the %s pipeline: %v", input.source, err)
		}

		result, err := p.Run(ctx)
		if err != nil {
			log.Fatalf("Failed to process %s: %v", input.source, err)
		}

		stats := result.Stats
		fmt.Printf("\n=== %s ===\n", stats.Source)
		fmt.Printf("Records: %d (rejected: %d)\n", stats.TotalRecords, stats.RejectedRecords)
		fmt.Printf("Distinct labels: %d\n", stats.DistinctLabels)
		fmt.Printf("Pairs evaluated: %d, qualifying: %d\n", stats.PairsEvaluated, stats.QualifyingPairs)
		fmt.Printf("Clusters: %d\n", stats.Clusters)
		fmt.Printf("Elapsed: %s\n", stats.Elapsed)

		outPath := filepath.Join(*outDir, fmt.Sprintf("%s_processed.%s", strings.ToLower(string(input.source)), extension))
		if err := exporter.Export(result.Records, outPath, exportFormat); err != nil {
			log.Fatalf("Failed to export %s results: %v", input.source, err)
		}
		if *verbose {
			log.Printf("Saved %s results to %s", input.source, outPath)
		}

		combined = append(combined, result.Records...)
	}

	// Объединенный экспорт: префиксы источников исключают
	// пересечение идентификаторов кластеров
	if len(combined) > 0 {
		outPath := filepath.Join(*outDir, "catalog_processed."+extension)
		if err := exporter.Export(combined, outPath, exportFormat); err != nil {
			log.Fatalf("Failed to export combined results: %v", err)
		}
		fmt.Printf("\nExported %d records to %s in %s\n", len(combined), outPath, time.Since(started))
	}
}

// parseAlgorithms разбирает список алгоритмов из флага
// Валидация имен происходит в конфигурации пайплайна
func parseAlgorithms(list string) []matching.Algorithm {
	var algorithms []matching.Algorithm
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			algorithms = append(algorithms, matching.Algorithm(name))
		}
	}
	return algorithms
}
