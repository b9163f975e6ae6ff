package terminal

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/statement-atlas/pkg/models/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, logs bytes.Buffer
	cli := NewCLI(Options{Output: &out, LogOutput: &logs})
	cli.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_Types(t *testing.T) {
	out, err := run(t, "types")
	require.NoError(t, err)
	assert.Equal(t, "BS\nCF\nPL\n", out)
}

func TestCLI_GenerateTable(t *testing.T) {
	out, err := run(t, "generate", "--type", "pl", "--period", "2024-Q1")
	require.NoError(t, err)
	assert.Contains(t, out, "PL statement for 2024-Q1")
	assert.Contains(t, out, "[Profit] Net income")
	assert.Contains(t, out, "Total Value: 900000.00")
}

func TestCLI_GenerateAllAsJSON(t *testing.T) {
	out, err := run(t, "generate", "--period", "2024-Q1", "--format", "json")
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(out))
	var types []string
	for dec.More() {
		var report api.Report
		require.NoError(t, dec.Decode(&report))
		types = append(types, report.ReportType)
	}
	assert.Equal(t, []string{"BS", "CF", "PL"}, types)
}

func TestCLI_GenerateXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	_, err := run(t, "generate", "--type", "bs,cf", "--period", "2024-Q1", "--format", "xlsx", "--out", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"BS 2024-Q1", "CF 2024-Q1"}, f.GetSheetList())
}

func TestCLI_GenerateUnknownType(t *testing.T) {
	_, err := run(t, "generate", "--type", "xx", "--period", "2024-Q1")
	assert.ErrorContains(t, err, "unknown report type")
}

func TestCLI_GenerateRequiresPeriod(t *testing.T) {
	_, err := run(t, "generate")
	assert.Error(t, err)
}

func TestCLI_SeedThenGenerateFromSQL(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	dbPath := filepath.Join(dir, "atlas.db")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database:\n  driver: sqlite\n  dsn: "+dbPath+"\n"), 0o600))

	out, err := run(t, "seed", "--config", cfgPath, "--period", "2024-Q3")
	require.NoError(t, err)
	assert.Equal(t, "Stored 14 line items for 2024-Q3\n", out)

	out, err = run(t, "generate", "--config", cfgPath, "--source", "sql", "--type", "cf", "--period", "2024-Q3")
	require.NoError(t, err)
	assert.Contains(t, out, "CF statement for 2024-Q3")
	assert.Contains(t, out, "Total Value: 950000.00")

	_, err = run(t, "generate", "--config", cfgPath, "--source", "sql", "--type", "cf", "--period", "2024-Q4")
	assert.ErrorContains(t, err, "no line items found")
}

func TestCLI_InvalidSource(t *testing.T) {
	_, err := run(t, "types", "--source", "ftp")
	assert.ErrorContains(t, err, "unsupported source kind")
}

func TestCLI_Accounts(t *testing.T) {
	out, err := run(t, "accounts")
	require.NoError(t, err)
	assert.Contains(t, out, "ACCOUNT")
	assert.Regexp(t, `ASSET_CASH\s+asset\s+Cash and equivalents`, out)
	assert.Regexp(t, `NET_INCOME\s+total\s+Net income`, out)

	dir := t.TempDir()
	chartPath := filepath.Join(dir, "chart.ini")
	require.NoError(t, os.WriteFile(chartPath, []byte("[REV]\nname = Net sales\ncategory = revenue\n"), 0o600))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("accounts:\n  chart_path: "+chartPath+"\n"), 0o600))

	out, err = run(t, "accounts", "--config", cfgPath)
	require.NoError(t, err)
	assert.Regexp(t, `REV\s+revenue\s+Net sales`, out)
	assert.NotContains(t, out, "ASSET_CASH")
}

func TestCLI_PeriodsAfterSeed(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	dbPath := filepath.Join(dir, "atlas.db")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database:\n  driver: sqlite\n  dsn: "+dbPath+"\n"), 0o600))

	out, err := run(t, "periods", "--config", cfgPath, "--type", "bs")
	require.NoError(t, err)
	assert.Equal(t, "No stored periods for BS\n", out)

	for _, period := range []string{"2024-Q2", "2024-Q1"} {
		_, err = run(t, "seed", "--config", cfgPath, "--period", period)
		require.NoError(t, err)
	}

	out, err = run(t, "periods", "--config", cfgPath, "--type", "bs")
	require.NoError(t, err)
	assert.Equal(t, "2024-Q1\n2024-Q2\n", out)
}

func TestCLI_SeedRejectsDriversWithoutUpsert(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database:\n  driver: mysql\n  dsn: user:pass@tcp(127.0.0.1:3306)/atlas\n"), 0o600))

	_, err := run(t, "seed", "--config", cfgPath, "--period", "2024-Q1")
	assert.ErrorContains(t, err, `seed does not support the "mysql" driver`)
}
