package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/calendar"
	"github.com/username/vacation-planner/internal/planner"
	"github.com/username/vacation-planner/internal/store"
)

type memorySaver struct {
	name    string
	content []byte
	err     error
}

func (s *memorySaver) SaveFile(_ context.Context, name string, content []byte) error {
	if s.err != nil {
		return s.err
	}
	s.name = name
	s.content = content
	return nil
}

type bytesSource []byte

func (b bytesSource) ReadDocument(context.Context) ([]byte, error) {
	return b, nil
}

type failingSource struct{}

func (failingSource) ReadDocument(context.Context) ([]byte, error) {
	return nil, errors.New("permission denied")
}

type staticHolidays planner.Holidays

func (h staticHolidays) Holidays() (planner.Holidays, error) {
	return planner.Holidays(h), nil
}

func newGateway(s store.Storage) *Gateway {
	return NewGateway(s, "", nil, zap.NewNop())
}

func sampleData() planner.AppData {
	return planner.AppData{
		Users: []string{"Ana", "Carlos"},
		Schedule: planner.Schedule{
			"Ana":    {"2026-07-13": planner.DayTypeVacation, "2026-03-03": planner.DayTypePersonal},
			"Carlos": {},
		},
		Holidays: planner.Holidays{
			"2026-05-01": planner.HolidayTypeNational,
			"2026-03-19": planner.HolidayTypeRegional,
		},
	}
}

func TestLoadInitialState(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing stored yields defaults", func(t *testing.T) {
		data, source := newGateway(store.NewMemoryStorage(0)).LoadInitialState(ctx)

		assert.Equal(t, LoadSourceDefaults, source)
		assert.Equal(t, planner.DefaultAppData(nil), data)
	})

	t.Run("defaults use the holiday seed", func(t *testing.T) {
		seed := staticHolidays{"2026-03-19": planner.HolidayTypeRegional}
		g := NewGateway(store.NewMemoryStorage(0), "", seed, zap.NewNop())

		data, source := g.LoadInitialState(ctx)

		assert.Equal(t, LoadSourceDefaults, source)
		assert.Equal(t, planner.Holidays{"2026-03-19": planner.HolidayTypeRegional}, data.Holidays)
		assert.Equal(t, planner.DefaultUsers, data.Users)
	})

	t.Run("stored data is used", func(t *testing.T) {
		s := store.NewMemoryStorage(0)
		g := newGateway(s)
		require.NoError(t, g.SaveProgress(ctx, sampleData()))

		data, source := g.LoadInitialState(ctx)

		assert.Equal(t, LoadSourceStored, source)
		assert.Equal(t, sampleData(), data)
	})

	t.Run("missing fields are filled", func(t *testing.T) {
		s := store.NewMemoryStorage(0)
		require.NoError(t, s.Set(ctx, StorageKey, `{"users":["Ana"],"holidays":null}`))

		data, source := newGateway(s).LoadInitialState(ctx)

		assert.Equal(t, LoadSourceStored, source)
		assert.Equal(t, []string{"Ana"}, data.Users)
		assert.Equal(t, planner.Schedule{}, data.Schedule)
		assert.Equal(t, planner.DefaultHolidays(), data.Holidays)
	})

	t.Run("empty holidays stay empty", func(t *testing.T) {
		s := store.NewMemoryStorage(0)
		require.NoError(t, s.Set(ctx, StorageKey, `{"users":[],"schedule":{},"holidays":{}}`))

		data, _ := newGateway(s).LoadInitialState(ctx)

		assert.Empty(t, data.Holidays)
	})

	corrupt := []struct {
		name    string
		payload string
	}{
		{"not json", `{"users":[`},
		{"wrong type", `{"users":"Ana"}`},
		{"bad category", `{"users":["Ana"],"schedule":{"Ana":{"2026-07-13":"SICK"}}}`},
	}
	for _, tt := range corrupt {
		t.Run("corrupt "+tt.name+" yields placeholder", func(t *testing.T) {
			s := store.NewMemoryStorage(0)
			require.NoError(t, s.Set(ctx, StorageKey, tt.payload))

			data, source := newGateway(s).LoadInitialState(ctx)

			assert.Equal(t, LoadSourceRecovered, source)
			assert.Equal(t, planner.PlaceholderAppData(), data)
		})
	}

	t.Run("read failure yields placeholder", func(t *testing.T) {
		s := store.NewMemoryStorage(0)
		s.GetErr = store.ErrUnavailable

		data, source := newGateway(s).LoadInitialState(ctx)

		assert.Equal(t, LoadSourceRecovered, source)
		assert.Equal(t, []string{planner.PlaceholderUser}, data.Users)
	})
}

func TestSaveProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("writes compact json under the key", func(t *testing.T) {
		s := store.NewMemoryStorage(0)
		require.NoError(t, newGateway(s).SaveProgress(ctx, sampleData()))

		raw, err := s.Get(ctx, StorageKey)
		require.NoError(t, err)
		assert.NotContains(t, raw, "\n")
		assert.Contains(t, raw, `"users":["Ana","Carlos"]`)
	})

	t.Run("quota", func(t *testing.T) {
		err := newGateway(store.NewMemoryStorage(10)).SaveProgress(ctx, sampleData())

		assert.ErrorIs(t, err, ErrQuotaExceeded)
		assert.ErrorIs(t, err, store.ErrQuotaExceeded)
	})

	t.Run("unavailable", func(t *testing.T) {
		s := store.NewMemoryStorage(0)
		s.SetErr = errors.New("disk full")

		err := newGateway(s).SaveProgress(ctx, sampleData())

		assert.ErrorIs(t, err, ErrStorageUnavailable)
		assert.NotErrorIs(t, err, ErrQuotaExceeded)
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := newGateway(store.NewMemoryStorage(0))

	for name, data := range map[string]planner.AppData{
		"sample":      sampleData(),
		"defaults":    planner.DefaultAppData(nil),
		"placeholder": planner.PlaceholderAppData(),
	} {
		t.Run(name, func(t *testing.T) {
			saver := &memorySaver{}
			require.NoError(t, g.ExportToFile(ctx, data, saver))

			assert.Equal(t, "calendario-2026-datos.json", saver.name)
			assert.True(t, strings.HasPrefix(string(saver.content), "{\n  \"users\""))

			got, err := g.ImportFromFile(ctx, bytesSource(saver.content))
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestExportToFile_SaverFailure(t *testing.T) {
	err := newGateway(store.NewMemoryStorage(0)).
		ExportToFile(context.Background(), sampleData(), &memorySaver{err: errors.New("cancelled")})

	assert.Error(t, err)
}

func TestImportFromFile(t *testing.T) {
	ctx := context.Background()
	g := newGateway(store.NewMemoryStorage(0))

	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"missing holidays", `{"users":["Ana"],"schedule":{}}`, ErrImportShape},
		{"missing users", `{"schedule":{},"holidays":{}}`, ErrImportShape},
		{"array document", `[1,2,3]`, ErrImportShape},
		{"null document", `null`, ErrImportShape},
		{"users not a list", `{"users":"Ana","schedule":{},"holidays":{}}`, ErrImportShape},
		{"bad date", `{"users":[],"schedule":{},"holidays":{"2026-1-1":"NATIONAL_HOLIDAY"}}`, ErrImportShape},
		{"bad holiday category", `{"users":[],"schedule":{},"holidays":{"2026-01-01":"FIESTA"}}`, ErrImportShape},
		{"blank user", `{"users":[""],"schedule":{},"holidays":{}}`, ErrImportShape},
		{"duplicate user", `{"users":["A","A"],"schedule":{"A":{}},"holidays":{}}`, ErrImportShape},
		{"not json", `{"users":`, ErrImportParse},
		{"empty file", ``, ErrImportParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.ImportFromFile(ctx, bytesSource(tt.doc))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("read failure", func(t *testing.T) {
		_, err := g.ImportFromFile(ctx, failingSource{})
		assert.ErrorIs(t, err, ErrImportRead)
	})

	t.Run("nulls are normalized", func(t *testing.T) {
		got, err := g.ImportFromFile(ctx, bytesSource(`{"users":null,"schedule":null,"holidays":null}`))

		require.NoError(t, err)
		assert.Equal(t, []string{}, got.Users)
		assert.Equal(t, planner.Schedule{}, got.Schedule)
		assert.Equal(t, planner.DefaultHolidays(), got.Holidays)
	})

	t.Run("stale schedule keys are accepted", func(t *testing.T) {
		got, err := g.ImportFromFile(ctx, bytesSource(
			`{"users":["Ana"],"schedule":{"Gone":{"2026-07-13":"VACATION"}},"holidays":{}}`))

		require.NoError(t, err)
		assert.Contains(t, got.Schedule, "Gone")
	})
}

func TestDirSaverAndFileSource(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "exports")
	g := NewGateway(store.NewMemoryStorage(0), "", calendar.BundledHolidays{}, zap.NewNop())

	require.NoError(t, g.ExportToFile(ctx, sampleData(), DirSaver{Dir: dir}))

	path := filepath.Join(dir, ExportFileName)
	_, err := os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	got, err := g.ImportFromFile(ctx, FileSource{Path: path})
	require.NoError(t, err)
	assert.Equal(t, sampleData(), got)

	_, err = g.ImportFromFile(ctx, FileSource{Path: filepath.Join(dir, "missing.json")})
	assert.ErrorIs(t, err, ErrImportRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReaderSource_Limit(t *testing.T) {
	_, err := ReaderSource{R: strings.NewReader(strings.Repeat(" ", maxDocumentBytes+1))}.
		ReadDocument(context.Background())

	assert.Error(t, err)
}
