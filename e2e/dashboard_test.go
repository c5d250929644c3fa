//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpFlag(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("--help"))
	require.True(t, tf.SeePlain("Collector base URL"), "Help should describe the -url flag")
	require.True(t, tf.SeePlain("-ephemeral"), "Help should list the -ephemeral flag")
}

func TestHostsTreeRendersCoreTypes(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("-ephemeral"))
	require.True(t, tf.Ready(), "Should load hosts from the stub")

	require.True(t, tf.SeePlain("arecibo"), "Should show the title")
	require.True(t, tf.SeePlain("bastion.example.com"), "Ungrouped host sits at the root")
	require.True(t, tf.SeePlain("api (2)"), "Core type folder lists its hosts")
	require.True(t, tf.SeePlain("db (1)"), "Core type folder lists its hosts")
}

func TestSelectingHostLoadsSampleKinds(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("-ephemeral"))
	require.True(t, tf.Ready(), "Should load hosts from the stub")

	// First row is the ungrouped bastion host
	require.NoError(t, tf.Toggle())
	require.True(t, tf.OutputContainsPlain("OS (2)", 5*time.Second), "Sample kinds of the bastion should load")

	// Selecting it again clears the sample kinds tree
	require.NoError(t, tf.Toggle())
	require.True(t, tf.OutputContainsPlain("Select hosts to list their sample kinds", 3*time.Second))
}

func TestBuildGraphURL(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("-ephemeral"))
	require.True(t, tf.Ready(), "Should load hosts from the stub")

	require.NoError(t, tf.Toggle())
	require.True(t, tf.OutputContainsPlain("OS (2)", 5*time.Second))

	// Select the whole OS folder in the sample kinds pane
	require.NoError(t, tf.SwitchPane())
	require.NoError(t, tf.Toggle())

	require.NoError(t, tf.SetStart("2024-01-01"))
	require.NoError(t, tf.SetEnd("2024-01-02"))
	require.NoError(t, tf.BuildGraph())

	if !tf.OutputContainsPlain("Graph URL ready", 3*time.Second) {
		tf.DumpTailOnFail(t, "graph", 4096)
		t.Fatal("Graph URL should be built")
	}
	assert.Contains(t, tf.SnapshotPlain(), "OS::cpu", "Summary should list the selected kinds")
}

func TestSelectionPersistsAcrossRuns(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should load hosts from the stub")
	require.NoError(t, tf.Toggle())
	require.True(t, tf.OutputContainsPlain("OS (2)", 5*time.Second))
	require.NoError(t, tf.Quit())

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(workspace, "arecibodash", "state.json"))
		return err == nil && len(data) > 0
	}, 3*time.Second, 50*time.Millisecond, "Selection should be written to the state file")
}
