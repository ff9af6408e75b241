package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"emotrack/internal/models"
	"emotrack/internal/providers"
	"emotrack/internal/storage/interfaces"
	"emotrack/internal/structures"

	json "github.com/goccy/go-json"
)

// FileManager keeps the whole store in one compressed JSON file.
type FileManager struct {
	path       string
	compressor interfaces.CompressorInterface
	metrics    providers.MetricsProviderInterface
	logger     providers.Logger
}

// legacyRecord is the entry shape of the browser local-storage export:
// userId instead of subjectId and a millisecond timestamp.
type legacyRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	SubjectID  string    `json:"subjectId"`
	Date       string    `json:"date"`
	Period     string    `json:"period"`
	Emotion    string    `json:"emotion"`
	Comment    string    `json:"comment"`
	Timestamp  int64     `json:"timestamp"`
	RecordedAt time.Time `json:"recordedAt"`
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		path:       conf.Persistence.FilePath,
		compressor: compressor,
		metrics:    metrics,
		logger:     logger,
	}
}

func (f *FileManager) Path() string {
	return f.path
}

// Save writes storage to a temp file and renames it over the target.
func (f *FileManager) Save(storage *models.Storage) error {
	start := time.Now()
	defer func() {
		f.metrics.ObservePersistenceDuration(time.Since(start))
	}()

	jsonData, err := json.Marshal(storage)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, f.path); err != nil {
		return err
	}
	f.logger.Debugf(providers.TypeStore, "Persisted %d records to %s", len(storage.Records), f.path)
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// Load reads the store file. A missing file yields nil without error.
// Uncompressed JSON and the legacy bare-array format are accepted and
// migrated; records that fail validation are dropped with a warning.
func (f *FileManager) Load() (*models.Storage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		if !json.Valid(data) {
			return nil, fmt.Errorf("decompressing %s: %w", f.path, err)
		}
		f.logger.Warnf(providers.TypeStore, "Uncompressed store file found at %s, importing as plain JSON", f.path)
		decompressedData = data
	}

	trimmed := bytes.TrimSpace(decompressedData)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return f.migrateLegacy(trimmed)
	}

	var storage models.Storage
	if err := json.Unmarshal(trimmed, &storage); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}
	if storage.Version > models.StorageVersion {
		return nil, fmt.Errorf("store file %s has unsupported version %d", f.path, storage.Version)
	}
	storage.Version = models.StorageVersion
	storage.Records = f.sanitize(storage.Records)
	if storage.ResolvedAlerts == nil {
		storage.ResolvedAlerts = make([]string, 0)
	}
	return &storage, nil
}

func (f *FileManager) migrateLegacy(data []byte) (*models.Storage, error) {
	f.logger.Warnf(providers.TypeStore, "Legacy record array found, try to migrate to versioned format")

	var legacy []legacyRecord
	if err := json.Unmarshal(data, &legacy); err != nil {
		f.logger.Warnf(providers.TypeStore, "Migration failed")
		return nil, fmt.Errorf("decoding legacy records: %w", err)
	}

	records := make([]models.EmotionRecord, 0, len(legacy))
	for _, l := range legacy {
		r := models.EmotionRecord{
			SubjectID:  l.SubjectID,
			Date:       l.Date,
			Period:     models.Period(l.Period),
			Emotion:    models.Emotion(l.Emotion),
			Comment:    l.Comment,
			RecordedAt: l.RecordedAt,
		}
		if r.SubjectID == "" {
			r.SubjectID = l.UserID
		}
		if r.RecordedAt.IsZero() && l.Timestamp > 0 {
			r.RecordedAt = time.UnixMilli(l.Timestamp).UTC()
		}
		records = append(records, r)
	}

	f.logger.Warnf(providers.TypeStore, "Migration of %d legacy records successful", len(records))
	return &models.Storage{
		Version:        models.StorageVersion,
		Records:        f.sanitize(records),
		ResolvedAlerts: make([]string, 0),
	}, nil
}

func (f *FileManager) sanitize(records []models.EmotionRecord) []models.EmotionRecord {
	out := make([]models.EmotionRecord, 0, len(records))
	for _, r := range records {
		if err := validRecord(r); err != nil {
			f.logger.Warnf(providers.TypeStore, "Dropping stored record %q: %s", r.ID, err)
			continue
		}
		r.ID = models.RecordID(r.SubjectID, r.Date, r.Period)
		out = append(out, r)
	}
	return out
}

func validRecord(r models.EmotionRecord) error {
	switch {
	case r.SubjectID == "":
		return fmt.Errorf("missing subject")
	case !r.Period.Valid():
		return fmt.Errorf("unknown period %q", r.Period)
	case !r.Emotion.Valid():
		return fmt.Errorf("unknown emotion %q", r.Emotion)
	}
	if _, err := time.Parse(models.DateLayout, r.Date); err != nil {
		return fmt.Errorf("malformed date %q", r.Date)
	}
	return nil
}
