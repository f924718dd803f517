package csvout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remltab/internal/report"
)

func f64(v float64) *float64 { return &v }

func TestWriteDetails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "details.csv")
	details := []report.DetailRow{
		{
			Phenotype: "A", Type: "X", Component: "Her_K1", Converged: "YES",
			Heritability: f64(0.5), SE: f64(0.1), Size: f64(100), MegaIntensity: f64(1.0), SE2: f64(0.1),
		},
		{
			Phenotype: "A", Type: "Y", Component: "Her_All",
			Heritability: f64(0.3), Size: f64(50),
		},
	}

	require.NoError(t, WriteDetails(path, details))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Phenotype,Type,Component,Converged,Heritability,SE,Size,Mega_Intensity,SE_2", lines[0])
	assert.Equal(t, "A,X,Her_K1,YES,0.5,0.1,100,1,0.1", lines[1])
	// Absent values and absent convergence render as NA.
	assert.Equal(t, "A,Y,Her_All,NA,0.3,NA,50,NA,NA", lines[2])
}

func TestWriteDetails_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "details.csv")
	require.NoError(t, WriteDetails(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Phenotype,Type,Component,Converged,Heritability,SE,Size,Mega_Intensity,SE_2",
		strings.TrimSpace(string(raw)))
}
