package audit

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHistory_Empty(t *testing.T) {
	a := NewAuditLog(t.TempDir())
	recs, err := a.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLogScan_NewestFirst(t *testing.T) {
	a := NewAuditLog(t.TempDir())
	require.NoError(t, a.LogScan(ScanRecord{Term: "first"}))
	require.NoError(t, a.LogScan(ScanRecord{Term: "second"}))

	recs, err := a.LoadHistory()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "second", recs[0].Term)
	assert.Equal(t, "first", recs[1].Term)
	for _, r := range recs {
		_, err := uuid.Parse(r.ScanID)
		assert.NoError(t, err, "scan id should be a uuid")
		assert.False(t, r.Timestamp.IsZero())
	}

	st, err := os.Stat(a.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestLogScan_Concurrent(t *testing.T) {
	a := NewAuditLog(t.TempDir())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, a.LogScan(ScanRecord{Term: "x"}))
		}()
	}
	wg.Wait()
	recs, err := a.LoadHistory()
	require.NoError(t, err)
	assert.Len(t, recs, 8)
}

func TestLoadHistory_SkipsTrailingGarbage(t *testing.T) {
	a := NewAuditLog(t.TempDir())
	require.NoError(t, a.LogScan(ScanRecord{Term: "ok"}))
	f, err := os.OpenFile(a.Path(), os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("{broken\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	recs, err := a.LoadHistory()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "ok", recs[0].Term)
}

func TestDeleteRecord(t *testing.T) {
	a := NewAuditLog(t.TempDir())
	for _, term := range []string{"a", "b", "c"} {
		require.NoError(t, a.LogScan(ScanRecord{Term: term}))
	}
	// newest first: c, b, a
	require.NoError(t, a.DeleteRecord(1))
	recs, err := a.LoadHistory()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].Term)
	assert.Equal(t, "a", recs[1].Term)

	assert.Error(t, a.DeleteRecord(2))
	assert.Error(t, a.DeleteRecord(-1))
}

func TestCreateScanRecord(t *testing.T) {
	r := CreateScanRecord(Summary{
		Root:         "/d",
		Term:         "needle",
		Suffix:       ".txt",
		Matches:      3,
		FilesScanned: 10,
		FilesSkipped: 1,
		Cancelled:    true,
		Duration:     1234567 * time.Microsecond,
		Digest:       "0123456789abcdef",
	})
	assert.Equal(t, "needle", r.Term)
	assert.Equal(t, 3, r.Matches)
	assert.True(t, r.Cancelled)
	assert.Equal(t, "1.235s", r.Duration)
	_, err := uuid.Parse(r.ScanID)
	assert.NoError(t, err)
}
