// Package lexicon implements the read-only lexical resource store: the
// Spanish word-frequency dictionary, the practice reference phrases and the
// scoring-band criteria. Each resource is loaded once at startup from local
// disk, then from the object store, then from a small builtin default.
package lexicon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/hablalab/speech-coach/internal/domain/entities"
	"github.com/hablalab/speech-coach/pkg/config"
)

// ObjectFetcher retrieves a named object from the fallback object store.
// A nil fetcher disables the bucket fallback.
type ObjectFetcher interface {
	FetchObject(ctx context.Context, name string) ([]byte, error)
}

// Store holds the loaded lexical resources. Read-only after Load; safe for
// concurrent use across requests.
type Store struct {
	dict       map[string]struct{}
	references map[string]string
	bands      []entities.ScoringBand
}

// Load builds a Store from the configured data directory, falling back to
// the object store and finally to builtin defaults. Malformed external band
// criteria are discarded in favor of the builtin ladder; loading never fails.
func Load(ctx context.Context, cfg config.AssessConfig, fetcher ObjectFetcher, logger *zap.Logger) *Store {
	s := &Store{}

	dictRaw := loadResource(ctx, cfg.DataDir, cfg.DictionaryFile, fetcher, logger)
	s.dict = parseDictionary(dictRaw)
	if len(s.dict) == 0 {
		logger.Warn("dictionary unavailable, using builtin minimal dictionary")
		s.dict = builtinDictionary()
	}

	refRaw := loadResource(ctx, cfg.DataDir, cfg.ReferencesFile, fetcher, logger)
	s.references = parseReferences(refRaw, logger)
	if len(s.references) == 0 {
		logger.Warn("references unavailable, using builtin reference phrases")
		s.references = builtinReferences()
	}

	bandRaw := loadResource(ctx, cfg.DataDir, cfg.BandsFile, fetcher, logger)
	bands, err := ParseBands(bandRaw)
	if err != nil {
		if len(bandRaw) > 0 {
			logger.Warn("scoring band criteria rejected, using builtin bands", zap.Error(err))
		}
		bands = BuiltinBands()
	}
	s.bands = bands

	logger.Info("lexicon loaded",
		zap.Int("dictionary_size", len(s.dict)),
		zap.Int("references", len(s.references)),
		zap.Int("bands", len(s.bands)),
	)
	return s
}

// loadResource tries local disk first, the object store second. Returns nil
// when neither source has the file.
func loadResource(ctx context.Context, dir, name string, fetcher ObjectFetcher, logger *zap.Logger) []byte {
	if name == "" {
		return nil
	}
	if b, err := os.ReadFile(filepath.Join(dir, name)); err == nil {
		return b
	}
	if fetcher == nil {
		return nil
	}
	b, err := fetcher.FetchObject(ctx, name)
	if err != nil {
		logger.Warn("resource not found locally or in bucket", zap.String("name", name), zap.Error(err))
		return nil
	}
	return b
}

// parseDictionary reads a newline-delimited frequency list. Only the first
// column of each line is used; es_50k.txt carries "word count" pairs.
func parseDictionary(raw []byte) map[string]struct{} {
	if len(raw) == 0 {
		return nil
	}
	dict := make(map[string]struct{})
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		dict[strings.ToLower(fields[0])] = struct{}{}
	}
	return dict
}

func parseReferences(raw []byte, logger *zap.Logger) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	refs := make(map[string]string)
	if err := json.Unmarshal(raw, &refs); err != nil {
		logger.Warn("references file is not valid JSON", zap.Error(err))
		return nil
	}
	return refs
}

// ParseBands decodes and validates external scoring-band criteria. The bands
// must have ordered non-inverted ranges covering 0..100 without gaps.
func ParseBands(raw []byte) ([]entities.ScoringBand, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no band criteria data")
	}
	var bands []entities.ScoringBand
	if err := json.Unmarshal(raw, &bands); err != nil {
		return nil, fmt.Errorf("decode band criteria: %w", err)
	}
	if err := validateBands(bands); err != nil {
		return nil, err
	}
	return bands, nil
}

func validateBands(bands []entities.ScoringBand) error {
	if len(bands) == 0 {
		return fmt.Errorf("band criteria list is empty")
	}
	sorted := make([]entities.ScoringBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ScoreRange[0] < sorted[j].ScoreRange[0] })

	for _, b := range sorted {
		if b.Name == "" {
			return fmt.Errorf("band with range %v has no name", b.ScoreRange)
		}
		if b.ScoreRange[0] > b.ScoreRange[1] {
			return fmt.Errorf("band %q has inverted range", b.Name)
		}
	}
	if sorted[0].ScoreRange[0] > 0 {
		return fmt.Errorf("band criteria do not cover 0")
	}
	if sorted[len(sorted)-1].ScoreRange[1] < 100 {
		return fmt.Errorf("band criteria do not cover 100")
	}
	for i := 1; i < len(sorted); i++ {
		// Ranges are inclusive integers-with-decimals; a gap wider than one
		// scoring step (0.1 after rounding) leaves scores unmapped.
		if sorted[i].ScoreRange[0]-sorted[i-1].ScoreRange[1] > 1 {
			return fmt.Errorf("gap between bands %q and %q", sorted[i-1].Name, sorted[i].Name)
		}
	}
	return nil
}

// Contains reports whether word is in the frequency dictionary.
func (s *Store) Contains(word string) bool {
	_, ok := s.dict[strings.ToLower(word)]
	return ok
}

// DictionarySize returns the number of dictionary entries.
func (s *Store) DictionarySize() int {
	return len(s.dict)
}

// Reference returns the phrase for a practice key.
func (s *Store) Reference(key string) (string, bool) {
	text, ok := s.references[key]
	return text, ok
}

// References returns a copy of the reference-phrase map.
func (s *Store) References() map[string]string {
	out := make(map[string]string, len(s.references))
	for k, v := range s.references {
		out[k] = v
	}
	return out
}

// Bands returns the active scoring bands, lowest range first.
func (s *Store) Bands() []entities.ScoringBand {
	out := make([]entities.ScoringBand, len(s.bands))
	copy(out, s.bands)
	sort.Slice(out, func(i, j int) bool { return out[i].ScoreRange[0] < out[j].ScoreRange[0] })
	return out
}

// BandFor returns the band containing score, scanning highest range first so
// boundary values resolve to the higher band.
func (s *Store) BandFor(score float64) entities.ScoringBand {
	bands := s.Bands()
	for i := len(bands) - 1; i >= 0; i-- {
		if score >= bands[i].ScoreRange[0] {
			return bands[i]
		}
	}
	return bands[0]
}
