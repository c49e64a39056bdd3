package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"clinic-etl/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.PatientRecord {
	age := 54
	var records []models.PatientRecord
	for i := 0; i < 12; i++ {
		records = append(records, models.PatientRecord{
			ID:              i,
			SourceFile:      "consulta-26-03-2025.xlsx",
			Name:            "PACIENTE",
			ConsultDate:     "26-03-2025",
			ClinimetryType:  "DAS28 PCR",
			ClinimetryValue: models.NewScore(3.1),
			OtherDiagnosis:  "Hipertensión <controlada>",
			Age:             &age,
		})
	}
	records[3].ClinimetryType = models.NotApplicable
	records[3].ClinimetryValue = models.Score{}
	return records
}

func TestWriteReadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pacientes.json")
	records := sampleRecords()
	require.NoError(t, WriteRecords(path, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// four-space indent, accents and markup kept verbatim
	assert.Contains(t, string(raw), "\n    \"0\": {")
	assert.Contains(t, string(raw), "Hipertensión <controlada>")
	assert.Contains(t, string(raw), `"clinimetria_valor": "No aplica"`)

	got, err := ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, got, len(records))
	for i, rec := range got {
		assert.Equal(t, i, rec.ID)
	}
	assert.Equal(t, records[11], got[11])
	assert.False(t, got[3].ClinimetryValue.Valid)
}

func TestReadRecords_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadRecords(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"x": {}}`), 0o644))
	_, err = ReadRecords(bad)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`[`), 0o644))
	_, err = ReadRecords(broken)
	assert.Error(t, err)
}

func setupCache(t *testing.T) (*miniredis.Miniredis, *RecordCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRecordCache(NewRedisKVStore(client), time.Hour)
}

func TestRecordCache(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()
	digest := Digest([]byte("workbook bytes"))

	_, err := cache.Get(ctx, digest)
	assert.ErrorIs(t, err, ErrCacheMiss)

	records := sampleRecords()[:2]
	require.NoError(t, cache.Set(ctx, digest, records))
	assert.True(t, mr.Exists(DefaultKeyPrefix+digest))

	got, err := cache.Get(ctx, digest)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "PACIENTE", got[0].Name)
	assert.Equal(t, 3.1, got[1].ClinimetryValue.Value)

	mr.FastForward(2 * time.Hour)
	_, err = cache.Get(ctx, digest)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRecordCache_CorruptEntry(t *testing.T) {
	mr, cache := setupCache(t)
	require.NoError(t, mr.Set(DefaultKeyPrefix+"abc", "not json"))

	_, err := cache.Get(context.Background(), "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestDigest(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Digest(nil))
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
}
