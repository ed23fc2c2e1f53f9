package influx

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karlo195/StardewMods/internal/tractor"
	"github.com/karlo195/StardewMods/internal/util"
)

func TestProcessMetricData(t *testing.T) {
	bucket, point, err := ProcessMetricData([]string{
		`"` + BucketHost + `"`,
		`"host_frame"`,
		`"tag::farm::Sunrise Farm"`,
		`"field::float::avgTickMs::1.25"`,
		`"field::int::drawCalls::42"`,
		`"field::string::scene::farm"`,
	}, util.FixEscapeQuotes, util.TrimQuotes)
	require.NoError(t, err)

	assert.Equal(t, BucketHost, bucket)
	assert.Equal(t, "host_frame", point.Name())

	line := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	assert.Contains(t, line, `farm=Sunrise\ Farm`)
	assert.Contains(t, line, "avgTickMs=1.25")
	assert.Contains(t, line, "drawCalls=42i")
	assert.Contains(t, line, `scene="farm"`)
}

func TestProcessMetricData_FieldTypeErrors(t *testing.T) {
	_, _, err := ProcessMetricData([]string{
		BucketHost, "host_frame", "field::int::drawCalls::not-a-number",
	}, util.FixEscapeQuotes, util.TrimQuotes)
	assert.Error(t, err)

	_, _, err = ProcessMetricData([]string{
		BucketHost, "host_frame", "field::float::avgTickMs::nope",
	}, util.FixEscapeQuotes, util.TrimQuotes)
	assert.Error(t, err)
}

func TestProcessMetricData_TooShort(t *testing.T) {
	_, _, err := ProcessMetricData([]string{BucketHost}, util.FixEscapeQuotes, util.TrimQuotes)
	assert.Error(t, err)
}

// backupManager builds a Manager in backup-file mode, the path every test
// environment can take without a live server.
func backupManager(t *testing.T) (*Manager, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "influx_backup.log.gz")
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)

	m := NewManager(zerolog.Nop(), path)
	m.BackupWriter = gzip.NewWriter(file)
	return m, path
}

func readBackup(t *testing.T, path string) string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(data)
}

func TestWritePoint_BackupFile(t *testing.T) {
	m, path := backupManager(t)

	point := influxdb2_write.NewPointWithMeasurement("rider_sample").
		AddTag("sessionId", "run-7").
		AddField("stamina", 140.5)
	require.NoError(t, m.WritePoint(context.Background(), BucketRider, point))
	require.NoError(t, m.BackupWriter.Close())

	line := readBackup(t, path)
	assert.Contains(t, line, "rider_sample")
	assert.Contains(t, line, "sessionId=run-7")
	assert.Contains(t, line, "stamina=140.5")
}

func TestWritePoint_NoClientNoBackup(t *testing.T) {
	m := NewManager(zerolog.Nop(), "")
	point := influxdb2_write.NewPointWithMeasurement("rider_sample")
	assert.Error(t, m.WritePoint(context.Background(), BucketRider, point))
}

func TestWriteCycleReport(t *testing.T) {
	m, path := backupManager(t)

	report := &tractor.CycleReport{
		Eligible:      2,
		TilesExamined: 9,
		Effects:       []tractor.TileEffect{{Attachment: "scythe"}},
		Duration:      250 * time.Microsecond,
	}
	require.NoError(t, m.WriteCycleReport(context.Background(), "run-7", "Sunrise Farm", 12, report))
	require.NoError(t, m.BackupWriter.Close())

	line := readBackup(t, path)
	assert.Contains(t, line, "dispatch_cycle")
	assert.Contains(t, line, "tick=12i")
	assert.Contains(t, line, "tilesExamined=9i")
	assert.Contains(t, line, "durationUs=250i")
}
