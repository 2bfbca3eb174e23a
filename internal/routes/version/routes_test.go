package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSetting(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123abcd"},
	}

	require.Equal(t, "0123abcd", buildSetting(settings, "vcs.revision"))
	require.Empty(t, buildSetting(settings, "vcs.time"))
	require.Empty(t, buildSetting(nil, "vcs.revision"))
}

func TestCommit(t *testing.T) {
	require.NotEmpty(t, commit())
	require.Equal(t, Version.Commit, commit())
}
