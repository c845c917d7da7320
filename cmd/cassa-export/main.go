// Command cassa-export dumps the sales history from a cassa database file
// without going through the server, for backups and offline analysis.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"cassa/internal/core"
	"cassa/internal/export"
	"cassa/internal/log"
	"cassa/internal/storage"
)

func main() {
	dbPath := flag.String("db", "./data/cassa.db", "path to the database file")
	formatName := flag.String("format", "json", "export format: json or csv")
	outPath := flag.String("o", "", "output file (default: sales-history-<date>.<format>)")
	flag.Parse()

	if err := run(*dbPath, *formatName, *outPath); err != nil {
		fmt.Fprintln(os.Stderr, "cassa-export:", err)
		os.Exit(1)
	}
}

func run(dbPath, formatName, outPath string) error {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	kv, err := storage.OpenBoltReadOnly(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer kv.Close()

	logger := log.New(log.Config{Component: log.ComponentExport})
	repo, err := storage.Open(kv, logger)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	out, err := export.Export(repo.History(), format)
	if err != nil {
		if errors.Is(err, export.ErrNoHistory) {
			return errors.New("no closed days to export")
		}
		return err
	}

	if outPath == "" {
		outPath = export.Filename(format, core.Today())
	}
	if outPath == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Println("wrote", outPath)
	return nil
}
