package speech

import (
	"testing"
	"time"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/protobuf/types/known/durationpb"
)

func TestCollectResults(t *testing.T) {
	results := []*speechpb.SpeechRecognitionResult{
		{
			Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{
					Transcript: "hola me llamo",
					Words: []*speechpb.WordInfo{
						{
							Word:       "hola",
							StartTime:  durationpb.New(0),
							EndTime:    durationpb.New(400 * time.Millisecond),
							Confidence: 0.95,
						},
						{
							Word:       "me",
							StartTime:  durationpb.New(500 * time.Millisecond),
							EndTime:    durationpb.New(600 * time.Millisecond),
							Confidence: 0.9,
						},
					},
				},
			},
		},
		{
			Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{
					Transcript: "ana",
					Words: []*speechpb.WordInfo{
						{
							Word:       "ana",
							StartTime:  durationpb.New(700 * time.Millisecond),
							EndTime:    durationpb.New(1100 * time.Millisecond),
							Confidence: 0.88,
						},
					},
				},
			},
		},
	}

	out := collectResults(results)
	if out.Transcript != "hola me llamo ana" {
		t.Fatalf("segments should join with a space, got %q", out.Transcript)
	}
	if len(out.Words) != 3 {
		t.Fatalf("expected 3 word timings, got %d", len(out.Words))
	}
	if out.Words[0].End != 0.4 {
		t.Fatalf("end offset should convert to seconds, got %v", out.Words[0].End)
	}
	if out.Words[2].Start != 0.7 {
		t.Fatalf("start offset should convert to seconds, got %v", out.Words[2].Start)
	}
}

func TestCollectResultsEmptyAlternatives(t *testing.T) {
	out := collectResults([]*speechpb.SpeechRecognitionResult{{}})
	if !out.Empty() {
		t.Fatalf("no alternatives should yield an empty transcription, got %+v", out)
	}
}

func TestBaseLanguage(t *testing.T) {
	if got := baseLanguage("es-ES"); got != "es" {
		t.Fatalf("expected es, got %q", got)
	}
	if got := baseLanguage("es"); got != "es" {
		t.Fatalf("expected es unchanged, got %q", got)
	}
}
