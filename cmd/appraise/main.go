package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"SolarSentinel/internal/appraisal"
	"SolarSentinel/internal/export"
	"SolarSentinel/internal/model"
	"SolarSentinel/internal/portfolio"
	"SolarSentinel/internal/preset"
	"SolarSentinel/internal/sweep"

	"github.com/joho/godotenv"
	"gopkg.in/cheggaaa/pb.v1"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type options struct {
	panel       string
	state       string
	irradiation float64
	portfolio   string
	project     string
	csv         string
	sweep       string
	workers     int
	asJSON      bool
	quiet       bool

	params model.ProjectParameters
	set    map[string]bool
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	switch {
	case opts.portfolio != "":
		err = runPortfolio(opts, stdout)
	case opts.sweep != "":
		err = runSweep(opts, stdout, stderr)
	default:
		err = runSingle(opts, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, model.ErrInvalidParameter) {
			return exitUsage
		}
		return exitFailure
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("appraise", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.panel, "panel", preset.DefaultPanel, "panel technology: "+strings.Join(preset.PanelNames(), "|"))
	fs.StringVar(&opts.state, "state", "", "site state, sets the land requirement")
	fs.Float64Var(&opts.irradiation, "irradiation", 0, "annual irradiation in kWh/m², estimates the CUF")
	fs.StringVar(&opts.portfolio, "portfolio", "", "YAML portfolio file to appraise")
	fs.StringVar(&opts.project, "project", "", "appraise only this project from -portfolio")
	fs.StringVar(&opts.csv, "csv", "", "write the cash-flow table to this CSV file (a directory with -portfolio)")
	fs.StringVar(&opts.sweep, "sweep", "", "sweep one input, e.g. tariff=2:8:0.5")
	fs.IntVar(&opts.workers, "workers", 0, "sweep worker count (0 = one per CPU)")
	fs.BoolVar(&opts.asJSON, "json", false, "print results as JSON")
	fs.BoolVar(&opts.quiet, "quiet", false, "hide the sweep progress bar")

	p := &opts.params
	fs.Float64Var(&p.CapacityMW, "capacity", 0, "plant capacity in MW")
	fs.Float64Var(&p.CUF, "cuf", 0, "capacity utilization factor (0-1)")
	fs.Float64Var(&p.CapitalCostPerMW, "capital-cost", 0, "capital cost per MW in ₹")
	fs.Float64Var(&p.OMCostPerMW, "om-cost", 0, "first-year O&M cost per MW in ₹")
	fs.Float64Var(&p.OMEscalation, "om-escalation", 0, "annual O&M escalation (fraction)")
	fs.Float64Var(&p.Tariff, "tariff", 0, "tariff in ₹/kWh")
	fs.Float64Var(&p.DiscountRate, "discount-rate", 0, "discount rate (fraction)")
	fs.Float64Var(&p.Degradation, "degradation", 0, "annual output degradation (fraction)")
	fs.IntVar(&p.LifeYears, "life", 0, "project life in years")
	fs.Float64Var(&p.LoanFraction, "loan-fraction", 0, "debt share of capital cost (0-1)")
	fs.Float64Var(&p.LoanRate, "loan-rate", 0, "loan interest rate (fraction)")
	fs.IntVar(&p.LoanTenureYears, "loan-tenure", 0, "loan tenure in years")
	fs.Float64Var(&p.DepreciationRate, "depreciation", 0, "straight-line depreciation rate (fraction)")
	fs.Float64Var(&p.TaxRate, "tax-rate", 0, "income tax rate (fraction)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.project != "" && opts.portfolio == "" {
		return nil, fmt.Errorf("-project requires -portfolio")
	}
	if opts.sweep != "" && opts.portfolio != "" {
		return nil, fmt.Errorf("-sweep cannot be combined with -portfolio")
	}
	return opts, nil
}

// resolve builds the parameter set for single and sweep runs: panel preset,
// then irradiation CUF, then explicitly set flags.
func (o *options) resolve() (portfolio.Project, error) {
	panel, err := preset.Panel(o.panel)
	if err != nil {
		return portfolio.Project{}, err
	}
	params := preset.Defaults(panel)
	if o.set["irradiation"] {
		params.CUF = preset.EstimateCUF(o.irradiation)
	}

	in := o.params
	overrides := []struct {
		flag string
		dst  *float64
		v    float64
	}{
		{"capacity", &params.CapacityMW, in.CapacityMW},
		{"cuf", &params.CUF, in.CUF},
		{"capital-cost", &params.CapitalCostPerMW, in.CapitalCostPerMW},
		{"om-cost", &params.OMCostPerMW, in.OMCostPerMW},
		{"om-escalation", &params.OMEscalation, in.OMEscalation},
		{"tariff", &params.Tariff, in.Tariff},
		{"discount-rate", &params.DiscountRate, in.DiscountRate},
		{"degradation", &params.Degradation, in.Degradation},
		{"loan-fraction", &params.LoanFraction, in.LoanFraction},
		{"loan-rate", &params.LoanRate, in.LoanRate},
		{"depreciation", &params.DepreciationRate, in.DepreciationRate},
		{"tax-rate", &params.TaxRate, in.TaxRate},
	}
	for _, ov := range overrides {
		if o.set[ov.flag] {
			*ov.dst = ov.v
		}
	}
	if o.set["life"] {
		params.LifeYears = in.LifeYears
	}
	if o.set["loan-tenure"] {
		params.LoanTenureYears = in.LoanTenureYears
	}

	acresPerMW := preset.DefaultLandPerMWAcres
	if o.state != "" {
		if acresPerMW, err = preset.LandPerMW(o.state); err != nil {
			return portfolio.Project{}, err
		}
	}
	return portfolio.Project{
		Name:   "project",
		Panel:  panel.Name,
		State:  o.state,
		Land:   preset.LandRequirement(params.CapacityMW, acresPerMW),
		Params: params,
	}, nil
}

func runSingle(o *options, stdout io.Writer) error {
	p, err := o.resolve()
	if err != nil {
		return err
	}
	res, err := appraisal.EvaluateProject(p.Params)
	if err != nil {
		return err
	}
	if o.csv != "" {
		if err := export.WriteFile(o.csv, res, p.Params.DiscountRate); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if o.asJSON {
		return writeJSON(stdout, res)
	}
	printReport(stdout, p, res)
	return nil
}

func runPortfolio(o *options, stdout io.Writer) error {
	ev := portfolio.NewEvaluator(portfolio.NewFileSource(o.portfolio))

	var outcomes []portfolio.Outcome
	if o.project != "" {
		oc, err := ev.Evaluate(o.project)
		if err != nil {
			return err
		}
		outcomes = []portfolio.Outcome{oc}
	} else {
		var err error
		if outcomes, err = ev.EvaluateAll(); err != nil {
			return err
		}
	}

	failed := 0
	for i, oc := range outcomes {
		if oc.Err != nil {
			failed++
			fmt.Fprintf(stdout, "%s: %v\n", oc.Project.Name, oc.Err)
			continue
		}
		if o.csv != "" {
			path := filepath.Join(o.csv, export.FileStem(oc.Project.Name)+".csv")
			if err := export.WriteFile(path, oc.Result, oc.Project.Params.DiscountRate); err != nil {
				return fmt.Errorf("write csv for %q: %w", oc.Project.Name, err)
			}
		}
		if o.asJSON {
			if err := writeJSON(stdout, map[string]any{"project": oc.Project.Name, "result": oc.Result}); err != nil {
				return err
			}
			continue
		}
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		printReport(stdout, oc.Project, oc.Result)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d project(s) rejected: %w", failed, len(outcomes), model.ErrInvalidParameter)
	}
	return nil
}

func runSweep(o *options, stdout, stderr io.Writer) error {
	axis, values, err := sweep.ParseSpec(o.sweep)
	if err != nil {
		return err
	}
	p, err := o.resolve()
	if err != nil {
		return err
	}

	var bar *pb.ProgressBar
	if !o.quiet {
		bar = pb.New(len(values))
		bar.Output = stderr
		bar.ShowTimeLeft = false
		bar.Start()
	}
	points := sweep.Run(p.Params, axis, values, o.workers, bar)
	if bar != nil {
		bar.Finish()
	}

	if o.asJSON {
		return writeJSON(stdout, sweepJSON(axis, points))
	}
	printSweep(stdout, axis, points)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
