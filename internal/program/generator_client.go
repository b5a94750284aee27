package program

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// GeneratorClient asks the remote program generator service for a
// blueprint. The generator can be slow or down, every call is capped
// by the configured timeout so a regeneration request never hangs on
// it, the service falls back to the deterministic synthesizer instead.
type GeneratorClient struct {
	baseURL        string
	apiKey         string
	timeout        time.Duration
	httpClient     *http.Client
	metricsManager *metrics.Manager
}

func NewGeneratorClient(
	baseURL, apiKey string,
	timeout time.Duration,
	httpClient *http.Client,
	metricsManager *metrics.Manager,
) *GeneratorClient {
	return &GeneratorClient{
		baseURL:        baseURL,
		apiKey:         apiKey,
		timeout:        timeout,
		httpClient:     httpClient,
		metricsManager: metricsManager,
	}
}

func (c *GeneratorClient) Synthesize(ctx context.Context, req GenerationRequest) (_ *Blueprint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "client.program.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", req.UserID))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqJson, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/v1/programs/generate", c.baseURL),
		bytes.NewReader(reqJson),
	)
	if err != nil {
		return nil, fmt.Errorf("create generator request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	// unique per attempt, the generator uses it to deduplicate retries
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	begin := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	c.metricsManager.HistProgramGenerationDuration.Observe(time.Since(begin).Seconds())
	if err != nil {
		return nil, fmt.Errorf("call program generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBytes, _ := io.ReadAll(resp.Body)
		log.Errorf("program generator returned %d: %s", resp.StatusCode, respBytes)
		return nil, fmt.Errorf("program generator returned status %d", resp.StatusCode)
	}

	var blueprint Blueprint
	if err := json.NewDecoder(resp.Body).Decode(&blueprint); err != nil {
		return nil, fmt.Errorf("decode generator response: %w", err)
	}

	return &blueprint, nil
}
