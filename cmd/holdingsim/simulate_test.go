package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"holding-sim/domain"
	"holding-sim/service"
)

func referenceOptions(format string) simulateOptions {
	return simulateOptions{
		input: domain.SimulationInput{
			Patrimonio:   "1000000",
			Empresas:     "2",
			Perfil:       domain.DefaultPerfil,
			Herdeiros:    "2",
			Imoveis:      "3",
			ValorMercado: "1200000",
			ValorVenal:   "900000",
		},
		format: format,
	}
}

func TestRunSimulate_JSON(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := runSimulate(context.Background(), &stdout, &stderr, referenceOptions("json"), service.NewInsightService("", ""))
	require.NoError(t, err)
	require.Empty(t, stderr.String())

	var out simulateOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	require.Equal(t, 62.5, out.Result.EconomiaFiscal)
	require.Equal(t, 95.0, out.Result.SucessaoEficiente)
	require.Len(t, out.Chart, 3)
	require.NotEmpty(t, out.Insights.Items)
}

func TestRunSimulate_Markdown(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := runSimulate(context.Background(), &stdout, &stderr, referenceOptions("markdown"), service.NewInsightService("", ""))
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "# Simulação de Holding Patrimonial")
}

func TestRunSimulate_Invalid(t *testing.T) {
	var stdout, stderr bytes.Buffer
	opts := referenceOptions("json")
	opts.input.Herdeiros = " "

	err := runSimulate(context.Background(), &stdout, &stderr, opts, service.NewInsightService("", ""))
	require.ErrorIs(t, err, errInvalidInput)
	require.Equal(t, 1, exitCode(err))
	require.Equal(t, "herdeiros: "+service.MsgHerdeirosObrigatorio+"\n", stderr.String())
	require.Empty(t, stdout.String())
}

func TestRunSimulate_Strict(t *testing.T) {
	var stdout, stderr bytes.Buffer
	opts := referenceOptions("json")
	opts.input.Empresas = "-1"

	err := runSimulate(context.Background(), &stdout, &stderr, opts, service.NewInsightService("", ""))
	require.NoError(t, err)

	opts.strict = true
	stdout.Reset()
	err = runSimulate(context.Background(), &stdout, &stderr, opts, service.NewInsightService("", ""))
	require.ErrorIs(t, err, errInvalidInput)
	require.Contains(t, stderr.String(), "empresas: ")
}

func TestRunSimulate_UnknownFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := runSimulate(context.Background(), &stdout, &stderr, referenceOptions("pdf"), service.NewInsightService("", ""))
	require.Error(t, err)
	require.Equal(t, 2, exitCode(err))
}
