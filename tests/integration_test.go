package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/bidsmap/bids"
	"github.com/agentic-research/bidsmap/bidsname"
)

// writeTree materializes a small longitudinal dataset on the real
// filesystem: the OS-backed path that bids.New exercises end to end.
func writeTree(t *testing.T, root string) {
	t.Helper()
	files := map[string]string{
		"dataset_description.json": `{"Name": "Integration", "BIDSVersion": "1.8.0"}`,
		"subjects.tsv":             "participant_id\tage\nsub-01\t40\n",
		"sub-01/ses-1/sub-01_ses-1_scans.tsv": "filename\tacq_time\n" +
			"anat/sub-01_ses-1_run-001_T1w.nii.gz\t09:30\n",
		"sub-01/ses-1/anat/sub-01_ses-1_run-001_T1w.nii.gz":    "data",
		"sub-01/ses-1/anat/sub-01_ses-1_run-001_T1w.json":      `{"key1": "value1"}`,
		"sub-01/ses-2/func/sub-01_ses-2_task-rest_bold.nii.gz": "data",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestIndexAndQuery(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root)

	layout, err := bids.New(root, bids.DefaultOptions())
	require.NoError(t, err)

	name, ok := layout.DatasetName()
	require.True(t, ok)
	assert.Equal(t, "Integration", name)

	require.Len(t, layout.Subjects, 1)
	assert.Equal(t, "01", layout.Subjects[0].ID)
	assert.Equal(t, 2, layout.TotalFiles())
	assert.Equal(t, 1, layout.SubjectsTable.Len())

	// Attribute query across filename entities and sidecar metadata.
	got := layout.GetFiles(bids.Filter{Keys: map[string]string{
		"key1": "value1",
		"run":  "001",
	}})
	require.Len(t, got, 1)

	// The matched file's entities reconstruct its name.
	fname, err := bidsname.ConstructName(got[0].Entities, "nii.gz")
	require.NoError(t, err)
	assert.Equal(t, "sub-01_ses-1_run-001_T1w.nii.gz", fname)

	// No match is an empty sequence, never an error.
	assert.Empty(t, layout.GetFiles(bids.Filter{Path: ".json"}))
	assert.Empty(t, layout.GetFiles(bids.Filter{Keys: map[string]string{"run": "002"}}))
}

func TestNonLongitudinalTree(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "sub-01", "visit", "anat", "sub-01_T1w.nii.gz")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	opts := bids.DefaultOptions()
	opts.Longitudinal = false

	layout, err := bids.New(root, opts)
	require.NoError(t, err)
	require.Len(t, layout.Subjects, 1)
	require.Len(t, layout.Subjects[0].Sessions, 1)
	assert.Equal(t, "1", layout.Subjects[0].Sessions[0].ID)
	assert.Equal(t, 1, layout.TotalFiles())
}
