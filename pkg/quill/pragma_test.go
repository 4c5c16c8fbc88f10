package quill

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quill/internal/engine"
)

func TestCacheSizeRoundTrip(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	require.NoError(t, SetCacheSize(ctx, h, 500))
	n, err := CacheSize(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, int64(500), n)
}

func TestIntegrityCheckPasses(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, IntegrityCheck(context.Background(), h))
}

func TestVacuumModeRoundTrip(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	mode, err := VacuumModeOf(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, VacuumNone, mode)

	require.NoError(t, SetVacuumMode(ctx, h, VacuumFull))
	mode, err = VacuumModeOf(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, VacuumFull, mode)
	assert.Equal(t, "FULL", mode.String())
}

func TestCreateAndDropIndex(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	_, err = h.Exec(ctx, "CREATE TABLE widgets (uuid BLOB PRIMARY KEY, count INTEGER NOT NULL);")
	require.NoError(t, err)

	require.NoError(t, CreateIndex(ctx, h, "idx_widgets_count", "widgets", "count"))
	require.NoError(t, DropIndex(ctx, h, "idx_widgets_count"))
}

func TestCreateIndexRejectsNoLabels(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	err = CreateIndex(context.Background(), h, "idx", "widgets")
	require.Error(t, err)
}

func TestRecordCountFormatsThousands(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	_, err = h.Exec(ctx, "CREATE TABLE t (n INTEGER NOT NULL);")
	require.NoError(t, err)

	values := make([]string, 1500)
	for i := range values {
		values[i] = "(" + strconv.Itoa(i+1) + ")"
	}
	_, err = h.Exec(ctx, "INSERT INTO t (n) VALUES "+strings.Join(values, ", ")+";")
	require.NoError(t, err)

	n, pretty, err := RecordCount(ctx, h, "t")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), n)
	assert.Equal(t, "1,500", pretty)
}

func TestRenameAndDropTable(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	_, err = h.Exec(ctx, "CREATE TABLE old_widgets (n INTEGER NOT NULL);")
	require.NoError(t, err)

	require.NoError(t, RenameTable(ctx, h, "old_widgets", "widgets"))
	n, _, err := RecordCount(ctx, h, "widgets")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, DropTable(ctx, h, "widgets"))
	_, _, err = RecordCount(ctx, h, "widgets")
	require.Error(t, err)
}

func TestSchemaVersionRoundTrip(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	v, err := SchemaVersion(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	require.NoError(t, SetSchemaVersion(ctx, h, 7))
	v, err = SchemaVersion(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
}
