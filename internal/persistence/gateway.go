package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/calendar"
	"github.com/username/vacation-planner/internal/planner"
	"github.com/username/vacation-planner/internal/store"
)

const (
	// StorageKey is the key the planner state is stored under
	StorageKey = "vacationPlanner2026Data"
	// ExportFileName is the name of every exported document
	ExportFileName = "calendario-2026-datos.json"
)

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrQuotaExceeded      = errors.New("storage quota exceeded")
	// ErrStorageCorrupt is logged when stored data cannot be used; it never reaches callers
	ErrStorageCorrupt = errors.New("stored data is corrupt")
	ErrImportRead     = errors.New("failed to read import file")
	ErrImportParse    = errors.New("import file is not valid JSON")
	ErrImportShape    = errors.New("import file has an invalid format")
)

// LoadSource tells where the initial state came from
type LoadSource int

const (
	// LoadSourceDefaults means nothing was stored yet
	LoadSourceDefaults LoadSource = iota + 1
	// LoadSourceStored means the stored document was used
	LoadSourceStored
	// LoadSourceRecovered means the stored document was unusable and the placeholder state was used
	LoadSourceRecovered
)

func (s LoadSource) String() string {
	switch s {
	case LoadSourceDefaults:
		return "defaults"
	case LoadSourceStored:
		return "stored"
	case LoadSourceRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Gateway moves AppData between memory, storage and exported documents
type Gateway struct {
	storage  store.Storage
	key      string
	holidays calendar.HolidaySource
	logger   *zap.Logger
}

// NewGateway creates a gateway. An empty key selects StorageKey; a nil
// holiday source selects the bundled holidays.
func NewGateway(storage store.Storage, key string, holidays calendar.HolidaySource, logger *zap.Logger) *Gateway {
	if key == "" {
		key = StorageKey
	}
	if holidays == nil {
		holidays = calendar.BundledHolidays{}
	}
	return &Gateway{
		storage:  storage,
		key:      key,
		holidays: holidays,
		logger:   logger,
	}
}

// LoadInitialState returns the state to start a session with. It never fails:
// an empty store yields the default team, and an unreadable one yields the
// placeholder state.
func (g *Gateway) LoadInitialState(ctx context.Context) (planner.AppData, LoadSource) {
	raw, err := g.storage.Get(ctx, g.key)
	if errors.Is(err, store.ErrNotFound) {
		g.logger.Info("No stored data, using defaults", zap.String("key", g.key))
		return planner.DefaultAppData(g.seedHolidays()), LoadSourceDefaults
	}
	if err != nil {
		g.logger.Error("Failed to read stored data, using placeholder state",
			zap.String("key", g.key),
			zap.Error(fmt.Errorf("%w: %w", ErrStorageCorrupt, err)))
		return planner.PlaceholderAppData(), LoadSourceRecovered
	}

	data, err := decodeStored([]byte(raw))
	if err != nil {
		g.logger.Error("Stored data is unusable, using placeholder state",
			zap.String("key", g.key),
			zap.Error(err))
		return planner.PlaceholderAppData(), LoadSourceRecovered
	}

	g.logger.Info("Stored data loaded",
		zap.String("key", g.key),
		zap.Int("users", len(data.Users)),
		zap.Int("holidays", len(data.Holidays)))

	return data, LoadSourceStored
}

// SaveProgress writes data to storage as compact JSON
func (g *Gateway) SaveProgress(ctx context.Context, data planner.AppData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := g.storage.Set(ctx, g.key, string(payload)); err != nil {
		if errors.Is(err, store.ErrQuotaExceeded) {
			return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
		}
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	g.logger.Info("Progress saved",
		zap.String("key", g.key),
		zap.Int("bytes", len(payload)))

	return nil
}

// ExportToFile hands data to saver as indented JSON under ExportFileName
func (g *Gateway) ExportToFile(ctx context.Context, data planner.AppData, saver FileSaver) error {
	content, err := EncodeDocument(data)
	if err != nil {
		return err
	}

	if err := saver.SaveFile(ctx, ExportFileName, content); err != nil {
		return fmt.Errorf("failed to export data: %w", err)
	}

	g.logger.Info("Data exported",
		zap.String("file", ExportFileName),
		zap.Int("bytes", len(content)))

	return nil
}

// ImportFromFile reads and checks a document from source. The caller decides
// whether to adopt the result.
func (g *Gateway) ImportFromFile(ctx context.Context, source DocumentSource) (planner.AppData, error) {
	raw, err := source.ReadDocument(ctx)
	if err != nil {
		return planner.AppData{}, fmt.Errorf("%w: %w", ErrImportRead, err)
	}

	data, err := DecodeDocument(raw)
	if err != nil {
		g.logger.Warn("Import rejected", zap.Error(err))
		return planner.AppData{}, err
	}

	g.logger.Info("Document imported",
		zap.Int("users", len(data.Users)),
		zap.Int("holidays", len(data.Holidays)))

	return data, nil
}

func (g *Gateway) seedHolidays() planner.Holidays {
	holidays, err := g.holidays.Holidays()
	if err != nil {
		g.logger.Warn("Holiday source failed, using bundled holidays", zap.Error(err))
		return planner.DefaultHolidays()
	}
	return holidays
}

func decodeStored(raw []byte) (planner.AppData, error) {
	var data planner.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return planner.AppData{}, fmt.Errorf("%w: %w", ErrStorageCorrupt, err)
	}

	data = planner.Normalize(data)
	if err := planner.Validate(data); err != nil {
		return planner.AppData{}, fmt.Errorf("%w: %w", ErrStorageCorrupt, err)
	}
	return data, nil
}
