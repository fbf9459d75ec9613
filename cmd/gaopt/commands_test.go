package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaopt/internal/logging"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	body := strings.Join([]string{
		"seed: 5",
		"generations: 10",
		"logging:",
		"  level: warn",
		"  csv_path: " + filepath.Join(dir, "runs", "run.csv"),
		"  json_path: " + filepath.Join(dir, "runs", "run.jsonl"),
		"  champion_dir: " + filepath.Join(dir, "artifacts"),
		"  metrics_path: " + filepath.Join(dir, "gaopt.prom"),
		"",
	}, "\n")
	path := filepath.Join(dir, "ga.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	out, _, err := execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "integer result =")
	assert.Contains(t, out, "real result =")
	assert.Contains(t, out, "integer/16")

	c, err := logging.LoadChampion(filepath.Join(dir, "artifacts", "champion_integer.json"))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), c.Seed)
	assert.GreaterOrEqual(t, c.Fitness, 4.0)

	prom, err := os.ReadFile(filepath.Join(dir, "gaopt.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `gaopt_generations_total{run="real"} 10`)
}

func TestRunCommandFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	out, _, err := execute(t, "run", "--config", cfgPath, "--encoding", "integer", "--bits", "8", "--generations", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "integer/8")
	assert.NotContains(t, out, "real result")
}

func TestRunCommandRejectsInvalidOverride(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "run", "--config", writeConfig(t, dir), "--bits", "12")
	assert.Error(t, err)
}

func TestConfigCommandPrintsEffectiveConfig(t *testing.T) {
	dir := t.TempDir()
	out, _, err := execute(t, "config", "--config", writeConfig(t, dir))
	require.NoError(t, err)
	assert.Contains(t, out, "seed: 5")
	assert.Contains(t, out, "tournament_k: 2")
	assert.Contains(t, out, "mutation_rate: 0.65")
}

func TestChampionCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	_, _, err := execute(t, "run", "--config", cfgPath, "--encoding", "integer")
	require.NoError(t, err)

	out, _, err := execute(t, "champion", "--config", cfgPath, filepath.Join(dir, "artifacts", "champion_integer.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Fitness (square_plus_four)")
	assert.Contains(t, out, "Code")

	_, _, err = execute(t, "champion", "--config", cfgPath, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
