package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "user_data.csv")
	base := []string{"--backend", "csv", "--data-path", store}

	_, err := run(t, append([]string{"init"}, base...)...)
	require.NoError(t, err)

	adds := [][]string{
		{"--company", "ACME", "--date", "2024-01-05", "--kind", "Receita", "--description", "Vendas", "--amount", "1000"},
		{"--company", "ACME", "--date", "2024-01-10", "--kind", "custo", "--description", "Insumos", "--amount", "400"},
		{"--company", "ACME", "--date", "2024-02-01", "--kind", "Expense", "--description", "Aluguel", "--amount", "100"},
	}
	for _, a := range adds {
		_, err := run(t, append(append([]string{"add"}, base...), a...)...)
		require.NoError(t, err)
	}

	out, err := run(t, append([]string{"report", "--company", "ACME"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "2024-02")
	assert.Contains(t, out, "R$ 600,00")
	assert.Contains(t, out, "R$ 500,00")

	exportPath := filepath.Join(dir, "export.csv")
	_, err = run(t, append([]string{"export", "--out", exportPath}, base...)...)
	require.NoError(t, err)
	exported, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(exported), "\n"))

	other := filepath.Join(dir, "other.csv")
	out, err = run(t, "import", exportPath, "--backend", "csv", "--data-path", other)
	require.NoError(t, err)
	assert.Contains(t, out, "3 transactions imported, 0 skipped")
}

func TestCLI_AddRejectsInvalidAmount(t *testing.T) {
	store := filepath.Join(t.TempDir(), "user_data.csv")

	_, err := run(t, "add", "--data-path", store, "--backend", "csv",
		"--company", "ACME", "--date", "2024-01-05", "--kind", "Receita", "--description", "x", "--amount=-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valor")
}

func TestCLI_ReportRejectsHalfPeriod(t *testing.T) {
	store := filepath.Join(t.TempDir(), "user_data.csv")

	_, err := run(t, "report", "--data-path", store, "--backend", "csv", "--from", "2024-01-01")
	assert.Error(t, err)
}

func seedStore(t *testing.T, base []string) {
	t.Helper()
	adds := [][]string{
		{"--company", "ACME", "--date", "2024-01-05", "--kind", "Receita", "--description", "Vendas", "--amount", "1000"},
		{"--company", "ACME", "--date", "2024-01-10", "--kind", "Despesa", "--description", "Aluguel", "--amount", "300"},
		{"--company", "ACME", "--date", "2024-02-10", "--kind", "Despesa", "--description", "Marketing", "--amount", "100"},
		{"--company", "Beta", "--date", "2024-01-20", "--kind", "Receita", "--description", "Vendas", "--amount", "50"},
	}
	for _, a := range adds {
		_, err := run(t, append(append([]string{"add"}, base...), a...)...)
		require.NoError(t, err)
	}
}

func TestCLI_ReportExportNamesFileAfterCompanyAndPeriod(t *testing.T) {
	dir := t.TempDir()
	base := []string{"--backend", "csv", "--data-path", filepath.Join(dir, "user_data.csv")}
	seedStore(t, base)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := run(t, append([]string{"report", "export", "--company", "ACME", "--from", "2024-01-01", "--to", "2024-02-29", "--out", ""}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "dre_ACME_2024-01-01_2024-02-29.csv")

	content, err := os.ReadFile(filepath.Join(dir, "dre_ACME_2024-01-01_2024-02-29.csv"))
	require.NoError(t, err)
	assert.Equal(t, "mes,Receita,Custo,Despesa,Lucro Bruto,Lucro Líquido\n"+
		"2024-01,1000.00,0.00,300.00,1000.00,700.00\n"+
		"2024-02,0.00,0.00,100.00,0.00,-100.00\n", string(content))
}

func TestCLI_ReportExportRequiresPeriod(t *testing.T) {
	dir := t.TempDir()
	base := []string{"--backend", "csv", "--data-path", filepath.Join(dir, "user_data.csv")}
	target := filepath.Join(dir, "dre.csv")

	_, err := run(t, append([]string{"report", "export", "--company", "ACME", "--from", "", "--to", "", "--out", target}, base...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "periodo")
	assert.NoFileExists(t, target)
}

func TestCLI_ExpensesAndCompare(t *testing.T) {
	dir := t.TempDir()
	base := []string{"--backend", "csv", "--data-path", filepath.Join(dir, "user_data.csv")}
	seedStore(t, base)

	out, err := run(t, append([]string{"expenses", "--company", "ACME", "--from", "", "--to", ""}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Aluguel")
	assert.Contains(t, out, "75.00%")
	assert.Contains(t, out, "R$ 400,00")
	assert.Less(t, strings.Index(out, "Aluguel"), strings.Index(out, "Marketing"))

	out, err = run(t, append([]string{"compare", "--company", "", "--from", "2024-01-01", "--to", "2024-01-31"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "Beta")
	assert.Contains(t, out, "R$ 700,00")
	assert.Contains(t, out, "31/01/2024")
}

func TestCLI_ExportLeavesNoFileWhenStoreFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))
	target := filepath.Join(dir, "export.csv")

	_, err := run(t, "export", "--company", "", "--from", "", "--to", "", "--out", target,
		"--backend", "csv", "--data-path", filepath.Join(blocker, "user_data.csv"))
	require.Error(t, err)
	assert.NoFileExists(t, target)
}

func TestCLI_ExportKeepsPreviousFileWhenStoreIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "user_data.csv")
	require.NoError(t, os.WriteFile(store, []byte("id,empresa,data,tipo,descricao,valor\n1,ACME,2024-01-05,Lucro,x,10\n"), 0o600))
	target := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(target, []byte("previous"), 0o600))

	_, err := run(t, "export", "--company", "", "--from", "", "--to", "", "--out", target,
		"--backend", "csv", "--data-path", store)
	require.Error(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(content))

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
