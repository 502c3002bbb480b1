package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avnikitin/HSEDerivatives/internal/config"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfg := config.Default()
	rootCmd := NewRootCmd(cfg, zerolog.Nop())

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSolveCommandJSON(t *testing.T) {
	out, err := executeCommand(t,
		"solve",
		"--time", "0.0493",
		"--spot", "75.576",
		"--strike", "75",
		"--rate", "0.08",
		"--type", "put",
		"--premium", "1.298",
		"--paths", "300",
		"--steps", "10",
		"--workers", "2",
		"--seed", "7",
		"--json",
	)
	if err != nil {
		t.Fatalf("solve failed: %v\noutput: %s", err, out)
	}

	var result solveResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}

	if result.OptionType != "put" {
		t.Errorf("OptionType = %q, want put", result.OptionType)
	}
	if result.ImpliedVol < 0.03 || result.ImpliedVol > 6.0 {
		t.Errorf("ImpliedVol = %v outside the bracket", result.ImpliedVol)
	}
	if result.Iterations <= 0 || result.Iterations > 20 {
		t.Errorf("Iterations = %d, want 1..20", result.Iterations)
	}
	if result.Seed != 7 {
		t.Errorf("Seed = %d, want 7", result.Seed)
	}
	if result.Percent == "" {
		t.Error("Percent should not be empty")
	}
}

func TestSolveCommandRejectsBadType(t *testing.T) {
	_, err := executeCommand(t,
		"solve",
		"--time", "0.0493",
		"--spot", "75.576",
		"--strike", "75",
		"--type", "straddle",
		"--premium", "1.298",
	)
	if err == nil {
		t.Error("expected error for unknown option type")
	}
}

func TestSolveCommandRequiresFlags(t *testing.T) {
	_, err := executeCommand(t, "solve")
	if err == nil {
		t.Error("expected error for missing required flags")
	}
}

func TestPriceCommandJSON(t *testing.T) {
	out, err := executeCommand(t,
		"price",
		"--time", "0.0493",
		"--spot", "75.576",
		"--strike", "75",
		"--rate", "0.08",
		"--vol", "0.3",
		"--paths", "300",
		"--steps", "10",
		"--seed", "7",
		"--json",
	)
	if err != nil {
		t.Fatalf("price failed: %v\noutput: %s", err, out)
	}

	var result priceResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}

	if result.Call < 0 || result.Put < 0 {
		t.Errorf("premiums should be non-negative: %+v", result)
	}
	if result.Vol != 0.3 {
		t.Errorf("Vol = %v, want 0.3", result.Vol)
	}
	if result.Paths != 300 || result.Steps != 10 {
		t.Errorf("dimensions = (%d, %d), want (300, 10)", result.Paths, result.Steps)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var v map[string]string
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}
	if v["version"] != Version {
		t.Errorf("version = %q, want %q", v["version"], Version)
	}
}
