package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hablalab/speech-coach/errors"
	"github.com/hablalab/speech-coach/pkg/config"
)

// Filenames are minted by Save; anything else is rejected before touching
// the filesystem.
var ttsFilenamePattern = regexp.MustCompile(`^tts_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.mp3$`)

// TTSFileStore keeps synthesized coaching audio on local disk for the
// duration of a session. Files expire after a TTL and the whole directory is
// purged on shutdown.
type TTSFileStore struct {
	dir    string
	ttl    time.Duration
	sweep  time.Duration
	logger *zap.Logger
}

func NewTTSFileStore(cfg config.TTSConfig, logger *zap.Logger) (*TTSFileStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create tts dir: %w", err)
	}
	return &TTSFileStore{
		dir:    cfg.Dir,
		ttl:    cfg.FileTTL,
		sweep:  cfg.SweepInterval,
		logger: logger,
	}, nil
}

// Save writes audio to a fresh uuid-based filename and returns the name.
func (s *TTSFileStore) Save(audio []byte) (string, error) {
	name := fmt.Sprintf("tts_%s.mp3", uuid.New().String())
	if err := os.WriteFile(filepath.Join(s.dir, name), audio, 0o644); err != nil {
		return "", errors.ErrStorageFailed("save tts audio", err)
	}
	return name, nil
}

// Path validates the filename shape and returns the absolute path. The
// pattern check is what prevents path traversal.
func (s *TTSFileStore) Path(filename string) (string, error) {
	if !ttsFilenamePattern.MatchString(filename) {
		return "", errors.ErrAudioFileNotFound(filename)
	}
	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", errors.ErrAudioFileNotFound(filename)
	}
	return path, nil
}

// Sweep runs until the context is cancelled, deleting files older than the
// TTL each interval.
func (s *TTSFileStore) Sweep(ctx context.Context) {
	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.removeExpired()
		}
	}
}

func (s *TTSFileStore) removeExpired() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("tts sweep failed", zap.Error(err))
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	for _, e := range entries {
		if e.IsDir() || !ttsFilenamePattern.MatchString(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				s.logger.Warn("failed to remove expired tts file",
					zap.String("file", e.Name()), zap.Error(err))
			}
		}
	}
}

// Purge removes every stored file. Called on shutdown.
func (s *TTSFileStore) Purge() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() && ttsFilenamePattern.MatchString(e.Name()) {
			os.Remove(filepath.Join(s.dir, e.Name()))
		}
	}
}
