package pairs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PoolSentinel/internal/model"
)

func TestParse_ValidLines(t *testing.T) {
	input := `# networks and pools
ETH , 0xAbC

 Solana,PoolAddr
`
	got, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []model.Pair{
		{Chain: "eth", Pool: "0xAbC"},
		{Chain: "solana", Pool: "PoolAddr"},
	}, got)
}

func TestParse_MalformedLinesAreSkipped(t *testing.T) {
	input := "eth,0x1\nnot-a-pair\nbsc,0x2,extra\n,0x3\nbase,0x4\n"

	got, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedLine)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "line 4")
	assert.Equal(t, []model.Pair{
		{Chain: "eth", Pool: "0x1"},
		{Chain: "base", Pool: "0x4"},
	}, got)
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(strings.NewReader("\n# only comments\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.txt")
	require.NoError(t, os.WriteFile(path, []byte("arbitrum,0xfeed\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []model.Pair{{Chain: "arbitrum", Pool: "0xfeed"}}, got)
}

func TestLoad_MissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.Nil(t, got)
}
