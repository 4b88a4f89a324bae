package exec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/haris936hk/EchoNote-sub002/internal/config"
	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"
)

// Engine drives the external python processing scripts. Each stage is one
// process invocation: request JSON on stdin, result JSON on stdout, human
// diagnostics on stderr.
type Engine struct {
	python       string
	scriptDir    string
	processedDir string
	logger       *slog.Logger
}

// NewEngine creates the script-backed processing engine. processedDir is where
// the audio normalization stage writes its intermediate artifacts.
func NewEngine(cfg config.EngineConfig, processedDir string, logger *slog.Logger) port.ProcessingEngine {
	return &Engine{
		python:       cfg.Python,
		scriptDir:    cfg.ScriptDir,
		processedDir: processedDir,
		logger:       logger,
	}
}

type processAudioRequest struct {
	InputPath string `json:"inputPath"`
	OutputDir string `json:"outputDir"`
}

type processAudioResult struct {
	OutputPath string  `json:"outputPath"`
	Duration   float64 `json:"duration"`
}

func (e *Engine) ProcessAudio(ctx context.Context, audioPath string) (*port.ProcessedAudio, error) {
	var result processAudioResult
	req := processAudioRequest{InputPath: audioPath, OutputDir: e.processedDir}
	if err := e.runStage(ctx, "audio_processor.py", req, &result); err != nil {
		return nil, err
	}
	if result.OutputPath == "" || result.Duration <= 0 {
		return nil, fmt.Errorf("%w: audio_processor returned empty result", domain.ErrExternalProcessing)
	}
	return &port.ProcessedAudio{Path: result.OutputPath, Duration: result.Duration}, nil
}

type transcribeRequest struct {
	AudioPath string `json:"audioPath"`
}

type transcribeResult struct {
	Transcript string `json:"transcript"`
}

func (e *Engine) Transcribe(ctx context.Context, audioPath string) (string, error) {
	var result transcribeResult
	if err := e.runStage(ctx, "transcribe.py", transcribeRequest{AudioPath: audioPath}, &result); err != nil {
		return "", err
	}
	if strings.TrimSpace(result.Transcript) == "" {
		return "", fmt.Errorf("%w: transcription produced no text", domain.ErrExternalProcessing)
	}
	return result.Transcript, nil
}

type analyzeRequest struct {
	Transcript string `json:"transcript"`
}

type analyzeResult struct {
	Transcript string `json:"transcript"`
}

func (e *Engine) Analyze(ctx context.Context, transcript string) (string, error) {
	var result analyzeResult
	if err := e.runStage(ctx, "nlp_processor.py", analyzeRequest{Transcript: transcript}, &result); err != nil {
		return "", err
	}
	if strings.TrimSpace(result.Transcript) == "" {
		return "", fmt.Errorf("%w: nlp processing produced no text", domain.ErrExternalProcessing)
	}
	return result.Transcript, nil
}

type summarizeRequest struct {
	Transcript string `json:"transcript"`
	Title      string `json:"title"`
}

func (e *Engine) Summarize(ctx context.Context, transcript, title string) (*domain.MeetingSummary, error) {
	var summary domain.MeetingSummary
	if err := e.runStage(ctx, "summarize.py", summarizeRequest{Transcript: transcript, Title: title}, &summary); err != nil {
		return nil, err
	}
	if summary.ExecutiveSummary == "" {
		return nil, fmt.Errorf("%w: summarization returned no executive summary", domain.ErrExternalProcessing)
	}
	return &summary, nil
}

// runStage executes one script and decodes its stdout into result. The stage
// inherits the caller's deadline; a killed process surfaces as the context
// error wrapped in ErrExternalProcessing.
func (e *Engine) runStage(ctx context.Context, script string, request, result any) error {
	input, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("could not marshal %s request: %w", script, err)
	}

	cmd := exec.CommandContext(ctx, e.python, filepath.Join(e.scriptDir, script))
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("running engine stage", "script", script)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrExternalProcessing, script, ctx.Err())
		}
		return fmt.Errorf("%w: %s: %w: %s", domain.ErrExternalProcessing, script, err, firstLine(stderr.String()))
	}

	if err := json.Unmarshal(stdout.Bytes(), result); err != nil {
		return fmt.Errorf("%w: %s wrote invalid output: %v", domain.ErrExternalProcessing, script, err)
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
