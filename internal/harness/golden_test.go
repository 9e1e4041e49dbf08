package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_ZBasisMeasurement(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/z_basis_measurement.yaml")
	require.NoError(t, err)

	require.NoError(t, RunWithGolden(t, scenario))
}

func TestRunWithGolden_FailedScenarioDoesNotTouchGolden(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/z_basis_measurement.yaml")
	require.NoError(t, err)
	scenario.Steps[1].Expect.Verdict = "max"

	err = RunWithGolden(t, scenario)
	require.ErrorContains(t, err, "failed")
}
