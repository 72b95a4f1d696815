package handler

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hablalab/speech-coach/errors"
	"github.com/hablalab/speech-coach/internal/lexicon"
	"github.com/hablalab/speech-coach/internal/usecase/speech"
	"github.com/hablalab/speech-coach/pkg/config"
)

var allowedExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".opus": true,
	".webm": true,
	".ogg":  true,
}

// processAudioForm carries the non-file fields of the upload form.
type processAudioForm struct {
	PracticeLevel string `form:"practice_level" validate:"omitempty,reference_key"`
	Level         string `form:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// SpeechService is the pipeline the handler drives.
type SpeechService interface {
	ProcessAudio(ctx context.Context, req speech.ProcessRequest) (*speech.ProcessResult, error)
}

// BucketReporter supplies storage details for the health endpoint.
type BucketReporter interface {
	GetBucketInfo(ctx context.Context) (map[string]interface{}, error)
	BucketName() string
}

// AudioResolver maps a served filename to a local path.
type AudioResolver interface {
	Path(filename string) (string, error)
}

// Assess handles the assessment endpoints.
type Assess struct {
	service    SpeechService
	lex        *lexicon.Store
	bucket     BucketReporter
	audio      AudioResolver
	bucketName string
	maxBytes   int64
	logger     *zap.Logger
}

// NewAssess creates the assessment handler. bucket may be nil when object
// storage is disabled.
func NewAssess(cfg *config.Config, service SpeechService, lex *lexicon.Store, bucket BucketReporter, audio AudioResolver, logger *zap.Logger) *Assess {
	name := cfg.Storage.BucketName
	if bucket != nil {
		name = bucket.BucketName()
	}
	return &Assess{
		service:    service,
		lex:        lex,
		bucket:     bucket,
		audio:      audio,
		bucketName: name,
		maxBytes:   cfg.Server.MaxUploadBytes,
		logger:     logger,
	}
}

// ProcessAudio accepts an uploaded recording and returns the assessment
// @Summary      Assess a spoken Spanish recording
// @Description  Transcribes the upload, scores it on the four-criterion rubric, corrects the grammar, and returns coaching audio
// @Tags         Assessment
// @Accept       multipart/form-data
// @Produce      json
// @Param        file            formData  file    true   "Audio file (.wav, .mp3, .m4a, .opus, .webm, .ogg)"
// @Param        practice_level  formData  string  false  "Reference phrase key for practice mode"
// @Param        level           formData  string  false  "Declared proficiency: beginner, intermediate, advanced"
// @Success      200  {object}  speech.ProcessResult
// @Failure      400  {object}  map[string]string
// @Router       /process-audio [post]
func (h *Assess) ProcessAudio(c echo.Context) error {
	var form processAudioForm
	if err := c.Bind(&form); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid form data"))
	}
	if err := c.Validate(&form); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid level or practice_level value"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMissingAudioFile())
	}
	if fileHeader.Filename == "" {
		return HandleError(h.logger, c, errors.ErrEmptyFilename())
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return HandleError(h.logger, c, errors.ErrInvalidFileType(fileHeader.Filename))
	}
	if fileHeader.Size > h.maxBytes {
		return HandleError(h.logger, c, errors.ErrFileTooLarge(h.maxBytes))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer src.Close()

	audio, err := io.ReadAll(io.LimitReader(src, h.maxBytes+1))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if int64(len(audio)) > h.maxBytes {
		return HandleError(h.logger, c, errors.ErrFileTooLarge(h.maxBytes))
	}

	h.logger.Info("received audio upload",
		zap.String("filename", fileHeader.Filename),
		zap.Int("size_bytes", len(audio)))

	result, err := h.service.ProcessAudio(c.Request().Context(), speech.ProcessRequest{
		Audio:         audio,
		ContentType:   fileHeader.Header.Get("Content-Type"),
		PracticeLevel: form.PracticeLevel,
		Level:         form.Level,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(200, result)
}

// Health reports service, storage, and lexicon status
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Assess) Health(c echo.Context) error {
	bucketStatus := "not connected"
	if h.bucket != nil {
		if _, err := h.bucket.GetBucketInfo(c.Request().Context()); err == nil {
			bucketStatus = "connected"
		}
	}
	return c.JSON(200, map[string]interface{}{
		"status":          "ok",
		"bucket":          bucketStatus,
		"bucket_name":     h.bucketName,
		"dictionary_size": h.lex.DictionarySize(),
	})
}

// References lists the practice reference phrases
// @Summary      List practice reference phrases
// @Tags         Assessment
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /references [get]
func (h *Assess) References(c echo.Context) error {
	return c.JSON(200, h.lex.References())
}

// GetTTSAudio serves a synthesized coaching audio file
// @Summary      Fetch coaching audio
// @Tags         Assessment
// @Produce      audio/mpeg
// @Param        filename  path  string  true  "Filename returned in tts_audio_url"
// @Success      200  {file}  file
// @Failure      404  {object}  map[string]string
// @Router       /get-tts-audio/{filename} [get]
func (h *Assess) GetTTSAudio(c echo.Context) error {
	path, err := h.audio.Path(c.Param("filename"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.File(path)
}
