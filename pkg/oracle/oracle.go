// FILE: pkg/oracle/oracle.go
// PURPOSE: Structured-completion contracts over an LLMProvider with safe fallbacks

package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"nexter-ai-be/internal/constant"
	"nexter-ai-be/internal/entity"
	"nexter-ai-be/internal/pkg/logger"
	"nexter-ai-be/pkg/llm"
)

// History windows keep prompts bounded.
const (
	projectHistoryWindow     = 3
	coverLetterHistoryWindow = 5
	followUpDraftExcerpt     = 500
)

// Oracle wraps every model call the conversation controllers make. A failed
// or unparseable call never propagates as an error to a turn: each contract
// degrades to a fixed fallback instead.
type Oracle struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func New(provider llm.LLMProvider, log logger.ILogger) *Oracle {
	return &Oracle{provider: provider, log: log}
}

// ProjectExtraction is the result of one extract-and-reply call.
type ProjectExtraction struct {
	Patch         *entity.ProjectPatch
	Reply         string
	NeedsMoreInfo bool
}

// CoverLetterExtraction mirrors ProjectExtraction for the profile schema.
type CoverLetterExtraction struct {
	Patch         *entity.CoverLetterPatch
	Reply         string
	NeedsMoreInfo bool
}

// ExtractProject asks the model to pull project fields out of an utterance.
// On any failure it returns an empty patch, the apology reply, and
// needsMoreInfo=true, so the session stays alive and unmodified.
func (o *Oracle) ExtractProject(ctx context.Context, record *entity.Project, utterance string, history []entity.Message) *ProjectExtraction {
	fallback := &ProjectExtraction{
		Patch:         &entity.ProjectPatch{},
		Reply:         constant.FallbackApologyMessage,
		NeedsMoreInfo: true,
	}

	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fallback
	}

	prompt := fmt.Sprintf(constant.ProjectExtractionPromptV1,
		string(recordJSON),
		formatHistory(history, projectHistoryWindow),
		utterance,
	)

	raw, err := o.provider.Generate(ctx, prompt, llm.WithTemperature(0.7))
	if err != nil {
		o.log.Warn("oracle", "project extraction call failed", map[string]interface{}{"error": err.Error()})
		return fallback
	}

	var decoded struct {
		UpdatedMetadata *entity.ProjectPatch `json:"updated_metadata"`
		ResponseMessage string               `json:"response_message"`
		NeedsMoreInfo   bool                 `json:"needs_more_info"`
	}
	if err := decodeJSON(raw, &decoded); err != nil {
		o.log.Warn("oracle", "project extraction returned unparseable output", map[string]interface{}{"error": err.Error()})
		return fallback
	}
	if decoded.ResponseMessage == "" {
		return fallback
	}

	patch := decoded.UpdatedMetadata
	if patch == nil {
		patch = &entity.ProjectPatch{}
	}
	return &ProjectExtraction{
		Patch:         patch,
		Reply:         decoded.ResponseMessage,
		NeedsMoreInfo: decoded.NeedsMoreInfo,
	}
}

// ExtractCoverLetter is the profile-schema twin of ExtractProject, with a
// slightly longer history window.
func (o *Oracle) ExtractCoverLetter(ctx context.Context, record *entity.CoverLetter, utterance string, history []entity.Message) *CoverLetterExtraction {
	fallback := &CoverLetterExtraction{
		Patch:         &entity.CoverLetterPatch{},
		Reply:         constant.FallbackApologyMessage,
		NeedsMoreInfo: true,
	}

	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fallback
	}

	prompt := fmt.Sprintf(constant.CoverLetterExtractionPromptV1,
		string(recordJSON),
		formatHistory(history, coverLetterHistoryWindow),
		utterance,
	)

	raw, err := o.provider.Generate(ctx, prompt, llm.WithTemperature(0.7))
	if err != nil {
		o.log.Warn("oracle", "cover letter extraction call failed", map[string]interface{}{"error": err.Error()})
		return fallback
	}

	var decoded struct {
		UpdatedData     *entity.CoverLetterPatch `json:"updated_data"`
		ResponseMessage string                   `json:"response_message"`
		NeedsMoreInfo   bool                     `json:"needs_more_info"`
	}
	if err := decodeJSON(raw, &decoded); err != nil {
		o.log.Warn("oracle", "cover letter extraction returned unparseable output", map[string]interface{}{"error": err.Error()})
		return fallback
	}
	if decoded.ResponseMessage == "" {
		return fallback
	}

	patch := decoded.UpdatedData
	if patch == nil {
		patch = &entity.CoverLetterPatch{}
	}
	return &CoverLetterExtraction{
		Patch:         patch,
		Reply:         decoded.ResponseMessage,
		NeedsMoreInfo: decoded.NeedsMoreInfo,
	}
}

// DetectCoverLetterIntent classifies an ambiguous reply to "do you want a
// cover letter?". Failures default to true: an unclear answer should move
// the conversation forward, not stall it.
func (o *Oracle) DetectCoverLetterIntent(ctx context.Context, utterance string) bool {
	prompt := fmt.Sprintf(constant.CoverLetterIntentPromptV1, utterance, "")

	raw, err := o.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		o.log.Warn("oracle", "intent detection call failed", map[string]interface{}{"error": err.Error()})
		return true
	}

	var decoded struct {
		WantsCoverLetter bool   `json:"wants_cover_letter"`
		Confidence       string `json:"confidence"`
		Reasoning        string `json:"reasoning"`
	}
	if err := decodeJSON(raw, &decoded); err != nil {
		o.log.Warn("oracle", "intent detection returned unparseable output", map[string]interface{}{"error": err.Error()})
		return true
	}
	return decoded.WantsCoverLetter
}

// GenerateDraft writes a cover letter draft from the collected profile in the
// requested style. This is the one contract whose failure the caller handles
// explicitly, since there is no prior draft to fall back to.
func (o *Oracle) GenerateDraft(ctx context.Context, record *entity.CoverLetter, style string) (string, error) {
	if style == "" {
		style = constant.DefaultWritingStyle
	}

	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	instruction := ""
	switch {
	case len(record.Projects) > 1:
		instruction = constant.DraftMultiProjectInstruction
	case len(record.Projects) == 1:
		instruction = constant.DraftSingleProjectInstruction
	}

	prompt := fmt.Sprintf(constant.DraftGenerationPromptV1, style, string(recordJSON), instruction, style)

	draft, err := o.provider.Generate(ctx, prompt, llm.WithTemperature(0.7), llm.WithMaxTokens(2000))
	if err != nil {
		o.log.Error("oracle", "draft generation failed", map[string]interface{}{"error": err.Error()})
		return "", err
	}
	return draft, nil
}

// ModifyDraft applies a free-form edit instruction to the full draft text.
// On failure the prior draft is returned unchanged.
func (o *Oracle) ModifyDraft(ctx context.Context, draft, instruction string) string {
	prompt := fmt.Sprintf(constant.DraftModificationPromptV1, draft, instruction)

	revised, err := o.provider.Generate(ctx, prompt, llm.WithTemperature(0.7), llm.WithMaxTokens(2000))
	if err != nil {
		o.log.Warn("oracle", "draft modification failed, keeping prior draft", map[string]interface{}{"error": err.Error()})
		return draft
	}
	return strings.TrimSpace(revised)
}

// AnswerFollowUp handles post-completion Q&A referencing the finalized draft.
func (o *Oracle) AnswerFollowUp(ctx context.Context, draft, question string) string {
	excerpt := draft
	if runes := []rune(excerpt); len(runes) > followUpDraftExcerpt {
		excerpt = string(runes[:followUpDraftExcerpt]) + "..."
	}
	if excerpt == "" {
		excerpt = "없음"
	}

	prompt := fmt.Sprintf(constant.FollowUpPromptV1, excerpt, question)

	answer, err := o.provider.Generate(ctx, prompt, llm.WithTemperature(0.7), llm.WithMaxTokens(500))
	if err != nil {
		o.log.Warn("oracle", "follow-up answer failed", map[string]interface{}{"error": err.Error()})
		return constant.FollowUpErrorMessage
	}
	return answer
}

// AnalyzeProject extracts a best-effort project record from free text
// (uploaded document text, fetched URL content, or a pasted description).
func (o *Oracle) AnalyzeProject(ctx context.Context, provenance, text string) (*entity.ProjectPatch, error) {
	prompt := fmt.Sprintf(constant.ProjectAnalysisPromptV1, provenance, text)

	raw, err := o.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}

	var patch entity.ProjectPatch
	if err := decodeJSON(raw, &patch); err != nil {
		return nil, fmt.Errorf("analysis returned unparseable output: %w", err)
	}
	return &patch, nil
}

func formatHistory(history []entity.Message, window int) string {
	if len(history) > window {
		history = history[len(history)-window:]
	}
	var sb strings.Builder
	for _, msg := range history {
		sb.WriteString(msg.Role)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// decodeJSON strips markdown fences, slices out the outermost JSON object,
// and unmarshals into the target. Model output is semi-trusted: any shape
// mismatch is an error the caller maps to its fallback path.
func decodeJSON(raw string, target interface{}) error {
	response := strings.TrimSpace(raw)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd < jsonStart {
		return fmt.Errorf("no JSON object in response")
	}
	response = response[jsonStart : jsonEnd+1]

	return json.Unmarshal([]byte(response), target)
}
