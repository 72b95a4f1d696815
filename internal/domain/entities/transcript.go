package entities

// WordTiming represents a single recognized word with timing and confidence
// information. Times are in seconds from the start of the clip.
type WordTiming struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start_time"`
	End        float64 `json:"end_time"`
	Confidence float64 `json:"confidence"`
}

// TranscriptionResult is the normalized output of any speech-to-text provider.
// An empty Transcript signals that the audio could not be transcribed; Words
// may be empty even when Transcript is not (provider returned no timings).
type TranscriptionResult struct {
	Transcript string       `json:"transcript"`
	Words      []WordTiming `json:"words"`
}

// Empty reports whether the provider produced no usable transcript.
func (t TranscriptionResult) Empty() bool {
	return t.Transcript == ""
}

// MeanConfidence returns the average word confidence, or 0 when no word-level
// data is available.
func (t TranscriptionResult) MeanConfidence() float64 {
	if len(t.Words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range t.Words {
		sum += w.Confidence
	}
	return sum / float64(len(t.Words))
}
