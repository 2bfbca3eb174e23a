package othello

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestASCIIArtLinesStart(t *testing.T) {
	lines := NewGameMust(8, 8).ASCIIArtLines()

	require.Len(t, lines, 10)
	require.Equal(t, "+-a-b-c-d-e-f-g-h-+", lines[0])
	require.Equal(t, "3       ·         |", lines[3])
	require.Equal(t, "4     · ○ ●       |", lines[4])
	require.Equal(t, "5       ● ○ ·     |", lines[5])
	require.Equal(t, "6         ·       |", lines[6])
	require.Equal(t, "+-----------------+", lines[9])
}

func TestASCIIArtLinesWideRowLabels(t *testing.T) {
	lines := NewGameMust(10, 4).ASCIIArtLines()

	require.Len(t, lines, 12)
	require.Equal(t, " +-a-b-c-d-+", lines[0])
	require.Equal(t, "10         |", lines[10])
	require.Equal(t, " +---------+", lines[11])
}

func TestGameString(t *testing.T) {
	g := NewGameMust(4, 4)

	want := strings.Join([]string{
		"....",
		".WB.",
		".BW.",
		"....",
		"black to move",
	}, "\n") + "\n"

	require.Equal(t, want, g.String())
}
