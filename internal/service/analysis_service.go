package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"nexter-ai-be/internal/dto"
	"nexter-ai-be/internal/entity"
	"nexter-ai-be/internal/pkg/logger"
	"nexter-ai-be/pkg/oracle"
)

// Source content larger than this is truncated before prompting.
const maxAnalysisSourceBytes = 64 * 1024

// IAnalysisService extracts a best-effort project record from an uploaded
// file, a URL, or pasted text. The record's summary field carries a
// provenance note so downstream flows know where the data came from.
type IAnalysisService interface {
	AnalyzeText(ctx context.Context, text string) (*dto.AnalyzeResponse, error)
	AnalyzeURL(ctx context.Context, sourceURL string) (*dto.AnalyzeResponse, error)
	AnalyzeUpload(ctx context.Context, filename string, content []byte) (*dto.AnalyzeResponse, error)
}

type analysisService struct {
	oracle *oracle.Oracle
	client *http.Client
	log    logger.ILogger
}

func NewAnalysisService(oracleAdapter *oracle.Oracle, log logger.ILogger) IAnalysisService {
	return &analysisService{
		oracle: oracleAdapter,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

func (s *analysisService) AnalyzeText(ctx context.Context, text string) (*dto.AnalyzeResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}
	return s.analyze(ctx, "직접 입력됨", text), nil
}

func (s *analysisService) AnalyzeURL(ctx context.Context, sourceURL string) (*dto.AnalyzeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	provenance := sourceURL + " 분석됨"

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("analysis_service", "url fetch failed", map[string]interface{}{"url": sourceURL, "error": err.Error()})
		return stubResponse(provenance), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAnalysisSourceBytes))
	if err != nil || resp.StatusCode != http.StatusOK || !isTextContent(body) {
		return stubResponse(provenance), nil
	}

	return s.analyze(ctx, provenance, string(body)), nil
}

// AnalyzeUpload extracts from plain-text uploads; binary formats produce a
// provenance-only stub record (no vision/PDF pipeline here).
func (s *analysisService) AnalyzeUpload(ctx context.Context, filename string, content []byte) (*dto.AnalyzeResponse, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("empty upload")
	}

	provenance := filename + " 업로드됨"
	if !isTextContent(content) {
		return stubResponse(provenance), nil
	}
	if len(content) > maxAnalysisSourceBytes {
		content = content[:maxAnalysisSourceBytes]
	}
	return s.analyze(ctx, provenance, string(content)), nil
}

func (s *analysisService) analyze(ctx context.Context, provenance, text string) *dto.AnalyzeResponse {
	project := &entity.Project{Summary: &provenance}

	patch, err := s.oracle.AnalyzeProject(ctx, provenance, text)
	if err != nil {
		s.log.Warn("analysis_service", "oracle analysis failed, returning stub record", map[string]interface{}{"error": err.Error()})
		return &dto.AnalyzeResponse{Project: project}
	}

	project.Apply(patch)
	return &dto.AnalyzeResponse{Project: project}
}

func stubResponse(provenance string) *dto.AnalyzeResponse {
	return &dto.AnalyzeResponse{Project: &entity.Project{Summary: &provenance}}
}

func isTextContent(content []byte) bool {
	if !utf8.Valid(content) {
		return false
	}
	for _, b := range content {
		if b == 0 {
			return false
		}
	}
	return true
}
