// Package interpreter extracts structured intent from free-text questions
// via a local Ollama generation endpoint.
package interpreter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	ragerrors "github.com/HezinTUKE/car-service/internal/common/errors"
	httpclient "github.com/HezinTUKE/car-service/internal/common/http"
	"github.com/HezinTUKE/car-service/internal/common/logger"
	"github.com/HezinTUKE/car-service/internal/common/metrics"
)

// Interpreter turns a question into a QuestionIntent. Implementations are
// best-effort: a failed call is an INTERPRETATION_FAILED error and the
// caller falls back to an unconstrained intent.
type Interpreter interface {
	Interpret(ctx context.Context, question string) (*QuestionIntent, error)
}

type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

type OllamaInterpreter struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func NewOllamaInterpreter(config *Config, log logger.Logger) *OllamaInterpreter {
	return &OllamaInterpreter{
		config: config,
		client: httpclient.NewClient(config.Timeout),
		logger: log.WithFields(map[string]interface{}{"component": "interpreter"}),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (i *OllamaInterpreter) Interpret(ctx context.Context, question string) (*QuestionIntent, error) {
	payload := generateRequest{
		Model:  i.config.Model,
		Prompt: fmt.Sprintf("%s\nQuestion: %s", extractionPrompt, question),
		Stream: false,
	}

	start := time.Now()
	resp, err := i.client.PostJSON(ctx, i.config.BaseURL+"/api/generate", payload)
	metrics.ExternalCallDuration.WithLabelValues("interpretation").Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return nil, ragerrors.NewInterpretationTimeoutError()
		}
		return nil, ragerrors.NewInterpretationFailedError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ragerrors.NewInterpretationFailedError(fmt.Sprintf("status %d", resp.StatusCode))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, ragerrors.NewInterpretationFailedError("decode response: " + err.Error())
	}

	intent, err := decodeIntent([]byte(out.Response))
	if err != nil {
		return nil, ragerrors.NewInterpretationFailedError(err.Error())
	}

	i.logger.Debug("question interpreted", map[string]interface{}{
		"empty": intent.Empty(),
	})

	return intent, nil
}
