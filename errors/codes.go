package errors

// ErrorCode identifies a failure class independent of the HTTP status.
type ErrorCode int

const (
	ErrorCode_INTERNAL ErrorCode = iota
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_MISSING_AUDIO_FILE
	ErrorCode_INVALID_FILE_TYPE
	ErrorCode_FILE_TOO_LARGE
	ErrorCode_TRANSCRIPTION_FAILED
	ErrorCode_CORRECTION_FAILED
	ErrorCode_SYNTHESIS_FAILED
	ErrorCode_ASSESSMENT_FAILED
	ErrorCode_STORAGE_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:             "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:     "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:            "NOT_FOUND",
	ErrorCode_MISSING_AUDIO_FILE:   "MISSING_AUDIO_FILE",
	ErrorCode_INVALID_FILE_TYPE:    "INVALID_FILE_TYPE",
	ErrorCode_FILE_TOO_LARGE:       "FILE_TOO_LARGE",
	ErrorCode_TRANSCRIPTION_FAILED: "TRANSCRIPTION_FAILED",
	ErrorCode_CORRECTION_FAILED:    "CORRECTION_FAILED",
	ErrorCode_SYNTHESIS_FAILED:     "SYNTHESIS_FAILED",
	ErrorCode_ASSESSMENT_FAILED:    "ASSESSMENT_FAILED",
	ErrorCode_STORAGE_FAILED:       "STORAGE_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
