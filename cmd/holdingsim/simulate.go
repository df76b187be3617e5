package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"holding-sim/config"
	"holding-sim/domain"
	"holding-sim/report"
	"holding-sim/service"
)

// errInvalidInput makes the command exit with status 1 after the field
// errors have been printed.
var errInvalidInput = errors.New("invalid simulation input")

func exitCode(err error) int {
	if errors.Is(err, errInvalidInput) {
		return 1
	}
	return 2
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "holdingsim",
		Short:         "Simulates the benefits of a family holding",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSimulateCmd())
	return root
}

type simulateOptions struct {
	input  domain.SimulationInput
	format string
	strict bool
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOptions{input: domain.DefaultSimulationInput()}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Compare the current scenario with a holding structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			insights := service.NewInsightService(cfg.OpenAIKey, cfg.OpenAIURL)
			return runSimulate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, insights)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.input.Patrimonio, domain.FieldPatrimonio, "", "total patrimony in BRL")
	f.StringVar(&opts.input.Empresas, domain.FieldEmpresas, "", "number of companies")
	f.StringVar(&opts.input.Perfil, domain.FieldPerfil, domain.DefaultPerfil, "taxpayer profile (empresario, sociedade, mei)")
	f.StringVar(&opts.input.Herdeiros, domain.FieldHerdeiros, "", "number of heirs")
	f.StringVar(&opts.input.Imoveis, domain.FieldImoveis, "", "number of properties")
	f.StringVar(&opts.input.ValorMercado, domain.FieldValorMercado, "", "market value of the properties")
	f.StringVar(&opts.input.ValorVenal, domain.FieldValorVenal, "", "assessed (venal) value of the properties")
	f.StringVar(&opts.format, "format", "json", "output format: json, markdown or html")
	f.BoolVar(&opts.strict, "strict", false, "also reject non numeric and negative values")

	return cmd
}

type simulateOutput struct {
	Input    domain.SimulationInput  `json:"input"`
	Result   domain.SimulationResult `json:"result"`
	Chart    []domain.ChartPoint     `json:"chart"`
	KPIs     []domain.KPI            `json:"kpis"`
	Insights domain.InsightReport    `json:"insights"`
}

func runSimulate(
	ctx context.Context,
	stdout, stderr io.Writer,
	opts simulateOptions,
	insights *service.InsightService,
) error {
	switch opts.format {
	case "json", "markdown", "md", "html":
	default:
		return fmt.Errorf("unsupported format %q", opts.format)
	}

	if errs := (service.Validator{Strict: opts.strict}).Validate(opts.input); !errs.Valid() {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(stderr, "%s: %s\n", field, errs[field])
		}
		return errInvalidInput
	}

	result := service.Calculate(opts.input)
	generated := insights.Generate(ctx, opts.input, result)

	switch opts.format {
	case "markdown", "md":
		_, err := io.WriteString(stdout, report.New(opts.input, result, generated).Markdown())
		return err
	case "html":
		html, err := report.New(opts.input, result, generated).HTML()
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, html)
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(simulateOutput{
		Input:    opts.input,
		Result:   result,
		Chart:    service.ChartSeries(result),
		KPIs:     service.KPIs(result),
		Insights: generated,
	})
}
