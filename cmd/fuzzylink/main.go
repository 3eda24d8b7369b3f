// Command fuzzylink links a target CSV table against a reference CSV
// table using a backbone configuration file, writing the resolved
// matches to an output CSV.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"fuzzylink"
	"fuzzylink/ingest"
	"fuzzylink/model"
	"fuzzylink/query"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("fuzzylink", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the backbone configuration YAML file")
	referencePath := fs.String("reference", "", "path to the reference table CSV file")
	targetPath := fs.String("target", "", "path to the target table CSV file")
	outputPath := fs.String("output", "", "path to write the resolved matches CSV file")
	workers := fs.Int("workers", 0, "maximum concurrent lookup goroutines (0 = unlimited)")
	diffPercent := fs.Float64("diff-percent", 0.1, "collision rearrangement promotion threshold")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *configPath == "" || *referencePath == "" || *targetPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "fuzzylink: -config, -reference, -target, and -output are all required")
		return 2
	}

	if err := execute(logger, *configPath, *referencePath, *targetPath, *outputPath, *workers, *diffPercent); err != nil {
		logger.Error("fuzzylink: run failed", "error", err)
		return 1
	}

	return 0
}

func execute(logger *slog.Logger, configPath, referencePath, targetPath, outputPath string, workers int, diffPercent float64) error {
	configYAML, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	reference, err := loadTable(referencePath)
	if err != nil {
		return fmt.Errorf("loading reference table: %w", err)
	}

	target, err := loadTable(targetPath)
	if err != nil {
		return fmt.Errorf("loading target table: %w", err)
	}

	logger.Info("fuzzylink: building reference index", "rows", humanize.Comma(int64(reference.Len())))

	start := time.Now()

	db, err := fuzzylink.Open(configYAML, reference)
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	logger.Info("fuzzylink: reference index built", "elapsed", time.Since(start))
	logger.Info("fuzzylink: scoring target rows", "rows", humanize.Comma(int64(target.Len())))

	start = time.Now()

	results, err := db.LookupBatch(context.Background(), target, workers, diffPercent)
	if err != nil {
		return fmt.Errorf("scoring target rows: %w", err)
	}

	logger.Info("fuzzylink: scoring complete", "elapsed", time.Since(start))

	if err := writeResults(outputPath, db.Reference(), target, results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	return nil
}

func loadTable(path string) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Table{}, err
	}
	defer f.Close()

	return ingest.LoadCSV(f)
}

var resultColumns = []string{
	"query_index", "top_index", "top_weight", "second_index", "second_weight",
	"damerau_sim", "jaccard_sim", "same_id", "status",
}

func writeResults(path string, reference, target model.Table, results []query.ResultTuple) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(resultColumns); err != nil {
		return err
	}

	for _, r := range results {
		record := []string{
			fmt.Sprintf("%d", r.QueryIdx),
			formatRowIndex(r.TopIdx),
			fmt.Sprintf("%f", r.TopWeight),
			formatRowIndex(r.SecondIdx),
			fmt.Sprintf("%f", r.SecondWeight),
			fmt.Sprintf("%f", r.DamerauSim),
			fmt.Sprintf("%f", r.JaccardSim),
			fmt.Sprintf("%t", r.SameID),
			r.Status.String(),
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatRowIndex(idx model.RowIndex) string {
	if idx == query.NoCandidate {
		return ""
	}

	return fmt.Sprintf("%d", idx)
}
