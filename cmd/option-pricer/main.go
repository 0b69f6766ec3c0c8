package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/report"
	"github.com/contactkeval/option-pricer/internal/scenario"
)

func main() {
	configPath := flag.String("config", "pricing.json", "path to JSON job config")
	flag.Parse()

	cfgData, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	var cfg scenario.Config
	if err := json.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// choose provider
	var prov data.Provider
	apiKey := os.Getenv("MASSIVE_API_KEY")
	if apiKey != "" {
		prov = data.NewMassiveDataProvider(apiKey, data.NewSyntheticProvider())
		log.Printf("[info] massive provider enabled")
	} else {
		prov = data.NewSyntheticProvider()
		log.Printf("[info] synthetic provider enabled")
	}

	engine := scenario.NewEngine(&cfg, prov)

	start := time.Now()
	res, err := engine.Run()
	if err != nil {
		log.Fatalf("pricing run failed: %v", err)
	}

	outdir := cfg.ReportDir
	if outdir == "" {
		outdir = "./out"
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		log.Printf("[warn] could not create output dir %s: %v", outdir, err)
	}
	if err := report.WriteJSON(res, outdir); err != nil {
		log.Printf("[warn] writing JSON report: %v", err)
	}
	if err := report.WriteCSV(res, outdir); err != nil {
		log.Printf("[warn] writing CSV report: %v", err)
	}
	log.Printf("[done] finished in %v, wrote %d quotes to %s", time.Since(start), len(res.Quotes), outdir)
}
