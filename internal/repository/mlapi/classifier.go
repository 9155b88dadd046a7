package mlapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"postPilot/business/analysis"
	"postPilot/domain"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// ClassifierRepository calls the upstream prediction service that runs the
// role/risk/narrative models over a post text.
type ClassifierRepository struct {
	cfg    Config
	client *http.Client
}

var _ analysis.Classifier = (*ClassifierRepository)(nil)

func NewClassifierRepository(cfg Config) *ClassifierRepository {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &ClassifierRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Roles      []domain.RoleProbability `json:"role_distribution_all"`
	RiskProbs  domain.RiskVector        `json:"risk_probs"`
	Narratives map[string]float64       `json:"narrative_probs"`
}

func (r *ClassifierRepository) Predict(ctx context.Context, text string) (domain.RawPrediction, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawPrediction{}, fmt.Errorf("context error: %w", err)
	}

	payloadByte, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return domain.RawPrediction{}, fmt.Errorf("failed to marshal json payload: %w", err)
	}

	url := r.cfg.BaseURL + "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadByte))
	if err != nil {
		return domain.RawPrediction{}, err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return domain.RawPrediction{}, fmt.Errorf("prediction service request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(res.Body)
		return domain.RawPrediction{}, fmt.Errorf("prediction service return negative response %v: %s", res.StatusCode, string(bodyBytes))
	}

	var parsed predictResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return domain.RawPrediction{}, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	return domain.RawPrediction{
		Roles:      parsed.Roles,
		RiskProbs:  parsed.RiskProbs,
		Narratives: parsed.Narratives,
	}, nil
}
