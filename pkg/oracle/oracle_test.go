package oracle

import (
	"context"
	"errors"
	"testing"

	"nexter-ai-be/internal/constant"
	"nexter-ai-be/internal/entity"
	"nexter-ai-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider returns queued responses in order, or a fixed error.
type scriptedProvider struct {
	responses []string
	err       error
	calls     int
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	if len(p.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp, nil
}

func (p *scriptedProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return p.Generate(ctx, "", opts...)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestExtractProjectDecodesFencedJSON(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"```json\n{\"updated_metadata\": {\"title\": \"쇼핑몰 리뉴얼\", \"tools\": [\"Go\"]}, \"response_message\": \"제목을 기록했어요. 어떤 역할을 맡으셨나요?\", \"needs_more_info\": true}\n```",
	}}
	oracle := New(provider, nopLogger{})

	result := oracle.ExtractProject(context.Background(), &entity.Project{}, "쇼핑몰 리뉴얼 프로젝트였어요", nil)

	require.NotNil(t, result.Patch)
	require.NotNil(t, result.Patch.Title)
	assert.Equal(t, "쇼핑몰 리뉴얼", *result.Patch.Title)
	assert.Equal(t, []string{"Go"}, result.Patch.Tools)
	assert.Equal(t, "제목을 기록했어요. 어떤 역할을 맡으셨나요?", result.Reply)
	assert.True(t, result.NeedsMoreInfo)
}

func TestExtractProjectFallsBackOnProviderError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("connection refused")}
	oracle := New(provider, nopLogger{})

	result := oracle.ExtractProject(context.Background(), &entity.Project{}, "아무 말", nil)

	assert.Equal(t, constant.FallbackApologyMessage, result.Reply)
	assert.True(t, result.NeedsMoreInfo)
	assert.Equal(t, &entity.ProjectPatch{}, result.Patch)
}

func TestExtractProjectFallsBackOnGarbage(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"I cannot answer that."}}
	oracle := New(provider, nopLogger{})

	result := oracle.ExtractProject(context.Background(), &entity.Project{}, "아무 말", nil)

	assert.Equal(t, constant.FallbackApologyMessage, result.Reply)
	assert.True(t, result.NeedsMoreInfo)
}

func TestExtractProjectFallsBackOnEmptyReply(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"updated_metadata": {"title": "x"}, "response_message": "", "needs_more_info": false}`,
	}}
	oracle := New(provider, nopLogger{})

	result := oracle.ExtractProject(context.Background(), &entity.Project{}, "아무 말", nil)

	assert.Equal(t, constant.FallbackApologyMessage, result.Reply)
}

func TestExtractCoverLetterDecodes(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"updated_data": {"position": "백엔드 개발자", "skills": ["Go", "Redis"]}, "response_message": "직무를 기록했어요.", "needs_more_info": false}`,
	}}
	oracle := New(provider, nopLogger{})

	result := oracle.ExtractCoverLetter(context.Background(), &entity.CoverLetter{}, "백엔드 개발자 지원이에요", nil)

	require.NotNil(t, result.Patch.Position)
	assert.Equal(t, "백엔드 개발자", *result.Patch.Position)
	assert.Equal(t, []string{"Go", "Redis"}, result.Patch.Skills)
	assert.False(t, result.NeedsMoreInfo)
}

func TestDetectCoverLetterIntent(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     bool
	}{
		{"explicit yes", `{"wants_cover_letter": true, "confidence": "high"}`, nil, true},
		{"explicit no", `{"wants_cover_letter": false, "confidence": "high"}`, nil, false},
		{"provider error defaults to true", "", errors.New("timeout"), true},
		{"garbage defaults to true", "maybe?", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &scriptedProvider{responses: []string{tt.response}, err: tt.err}
			oracle := New(provider, nopLogger{})

			got := oracle.DetectCoverLetterIntent(context.Background(), "음 글쎄요")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateDraftPropagatesError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("model overloaded")}
	oracle := New(provider, nopLogger{})

	_, err := oracle.GenerateDraft(context.Background(), &entity.CoverLetter{}, "")
	assert.Error(t, err)
}

func TestModifyDraftKeepsPriorOnFailure(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("timeout")}
	oracle := New(provider, nopLogger{})

	got := oracle.ModifyDraft(context.Background(), "기존 초안", "더 간결하게")
	assert.Equal(t, "기존 초안", got)
}

func TestModifyDraftTrimsRevision(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"\n\n수정된 초안\n"}}
	oracle := New(provider, nopLogger{})

	got := oracle.ModifyDraft(context.Background(), "기존 초안", "더 간결하게")
	assert.Equal(t, "수정된 초안", got)
}

func TestAnswerFollowUpFallsBackOnFailure(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("timeout")}
	oracle := New(provider, nopLogger{})

	got := oracle.AnswerFollowUp(context.Background(), "초안 텍스트", "면접 팁 있어요?")
	assert.Equal(t, constant.FollowUpErrorMessage, got)
}

func TestAnalyzeProjectDecodesPatch(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"```json\n{\"title\": \"포트폴리오 사이트\", \"tools\": [\"React\"]}\n```",
	}}
	oracle := New(provider, nopLogger{})

	patch, err := oracle.AnalyzeProject(context.Background(), "직접 입력됨", "리액트로 포트폴리오를 만들었어요")
	require.NoError(t, err)
	require.NotNil(t, patch.Title)
	assert.Equal(t, "포트폴리오 사이트", *patch.Title)
	assert.Equal(t, []string{"React"}, patch.Tools)
}

func TestFormatHistoryWindow(t *testing.T) {
	history := []entity.Message{
		{Role: "user", Content: "하나"},
		{Role: "assistant", Content: "둘"},
		{Role: "user", Content: "셋"},
		{Role: "assistant", Content: "넷"},
	}

	got := formatHistory(history, 3)
	assert.NotContains(t, got, "하나")
	assert.Contains(t, got, "assistant: 둘")
	assert.Contains(t, got, "user: 셋")
	assert.Contains(t, got, "assistant: 넷")
}
