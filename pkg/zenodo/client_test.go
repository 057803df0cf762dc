package zenodo

import (
	"context"
	"testing"
	"time"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRecordByDOI(t *testing.T) {
	server := testutil.NewZenodoServer(t, map[string]map[string][]byte{
		"1234": {
			"data/file.csv": []byte("a,b\n1,2\n"),
			"readme.md":     []byte("# fixture"),
		},
	})

	client := NewClient(server.URL, time.Second, "test")

	record, err := client.FindRecordByDOI(context.Background(), DOI{Prefix: "10.5281", RecordID: "1234"})
	require.NoError(t, err)

	assert.Equal(t, "10.5281/zenodo.1234", record.DOI)
	require.Len(t, record.Files, 2)

	file, available := record.FindFile("data/file.csv")
	require.NotNil(t, file)
	assert.Empty(t, available)
	assert.Equal(t, testutil.MD5Hex([]byte("a,b\n1,2\n")), file.MD5())
	assert.NotEmpty(t, file.Links.Self)

	// Raw payload is preserved for metadata attachment.
	require.NotNil(t, record.Raw)
	assert.Contains(t, record.Raw, "metadata")
}

func TestFindRecordByDOI_NotFound(t *testing.T) {
	server := testutil.NewZenodoServer(t, map[string]map[string][]byte{})

	client := NewClient(server.URL, time.Second, "test")

	_, err := client.FindRecordByDOI(context.Background(), DOI{Prefix: "10.5281", RecordID: "9999"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrRecordLookup)
}

func TestFindRecordByDOI_EmptyRecordID(t *testing.T) {
	client := NewClient("", time.Second, "")

	_, err := client.FindRecordByDOI(context.Background(), DOI{Prefix: "10.5281"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDOIParse)
}

func TestFindFile_Miss(t *testing.T) {
	record := &Record{Files: []File{
		{Key: "a.csv"},
		{Key: "b.csv"},
	}}

	file, available := record.FindFile("missing.csv")
	assert.Nil(t, file)
	assert.Equal(t, []string{"a.csv", "b.csv"}, available)
}
