// Command vannstatus fetches the quality element table for a single water
// body from vann-nett and prints it to stdout as CSV or JSON.
//
// Example:
//
//	vannstatus -waterbody 0121000032-2-C -element ecological
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/fjordlab/vannrapport/internal/adapter/vannnett"
	"github.com/fjordlab/vannrapport/internal/domain"
	"github.com/fjordlab/vannrapport/internal/observability"
)

func main() {
	waterbody := flag.String("waterbody", "", "water body identifier, e.g. 0121000032-2-C")
	element := flag.String("element", "ecological", "quality element selector: ecological, chemical, or a specific element name")
	format := flag.String("format", "csv", "output format: csv or json")
	baseURL := flag.String("base-url", vannnett.DefaultBaseURL, "vann-nett service base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	if *waterbody == "" {
		log.Fatal("missing required flag: -waterbody")
	}
	if *format != "csv" && *format != "json" {
		log.Fatalf("unsupported format %q, want csv or json", *format)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	metrics := observability.NewMetrics()

	client := vannnett.NewClient(*baseURL, *timeout, logger, metrics)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	table, err := client.FetchQuality(ctx, *waterbody, *element)
	if err != nil {
		log.Fatalf("fetch quality data: %v", err)
	}
	if table == nil {
		log.Fatalf("no quality data reported for water body %s", *waterbody)
	}

	if *format == "json" {
		if err := writeJSON(os.Stdout, table); err != nil {
			log.Fatalf("write json: %v", err)
		}
		return
	}
	if err := writeCSV(os.Stdout, table); err != nil {
		log.Fatalf("write csv: %v", err)
	}
}

func writeCSV(w io.Writer, table *domain.QualityTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns()); err != nil {
		return err
	}
	for _, rec := range table.Records {
		if err := cw.Write(table.Strings(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
