package uncertainty_test

import (
	"testing"

	"evfleet-sim/internal/uncertainty"

	"github.com/stretchr/testify/require"
)

func TestZeroAlwaysZero(t *testing.T) {
	var z uncertainty.Zero
	require.Zero(t, z.Sample())
	require.Zero(t, z.Last())
}

func TestGaussianSameSeedIsReproducible(t *testing.T) {
	a := uncertainty.NewGaussian(0, 1, 42)
	b := uncertainty.NewGaussian(0, 1, 42)

	for i := 0; i < 5; i++ {
		require.Equal(t, a.Sample(), b.Sample())
	}
}

func TestGaussianDifferentSeedsDiverge(t *testing.T) {
	a := uncertainty.NewGaussian(0, 1, 1)
	b := uncertainty.NewGaussian(0, 1, 2)

	require.NotEqual(t, a.Sample(), b.Sample())
}

func TestGaussianLastMatchesMostRecentSample(t *testing.T) {
	g := uncertainty.NewGaussian(5, 0, 7)
	got := g.Sample()
	require.Equal(t, got, g.Last())
}

func TestGaussianZeroStdCollapsesToMean(t *testing.T) {
	g := uncertainty.NewGaussian(3.5, 0, 99)
	for i := 0; i < 10; i++ {
		require.Equal(t, 3.5, g.Sample())
	}
}
