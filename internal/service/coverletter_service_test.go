package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nexter-ai-be/internal/config"
	"nexter-ai-be/internal/constant"
	"nexter-ai-be/internal/dto"
	"nexter-ai-be/internal/entity"
	"nexter-ai-be/internal/repository/contract"
	"nexter-ai-be/internal/repository/memory"
	"nexter-ai-be/pkg/document"
	"nexter-ai-be/pkg/oracle"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	topics   []string
	payloads [][]byte
}

func (p *capturePublisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		p.topics = append(p.topics, topic)
		p.payloads = append(p.payloads, msg.Payload)
	}
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func newCoverLetterFixture(t *testing.T, provider *scriptedProvider, cfg config.AssistantConfig) (ICoverLetterService, contract.SessionRepository, *capturePublisher, string) {
	t.Helper()
	repo := memory.NewSessionRepository(time.Hour)
	publisher := &capturePublisher{}
	outputDir := t.TempDir()
	renderer := document.NewWordRenderer(outputDir, "http://localhost:3000")
	svc := NewCoverLetterService(oracle.New(provider, nopLogger{}), repo, renderer, publisher, cfg, nopLogger{})
	return svc, repo, publisher, outputDir
}

func TestCoverLetterStartFoldsProjects(t *testing.T) {
	svc, _, _, _ := newCoverLetterFixture(t, &scriptedProvider{}, testAssistantConfig())

	res, session, err := svc.Start(context.Background(), &dto.CoverLetterStartRequest{
		State: dto.StateStart,
		Projects: []entity.Project{
			{Roles: []string{"프로덕트 매니저"}, Tools: []string{"Figma", "Jira"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, constant.CoverLetterGreetingMessage, res.Message)
	assert.Equal(t, entity.CoverStateIntentConfirmation, session.State)
	require.NotNil(t, session.CoverLetter.Position)
	assert.Equal(t, "프로덕트 매니저", *session.CoverLetter.Position)
	assert.Equal(t, []string{"Figma", "Jira"}, session.CoverLetter.Skills)
}

func TestCoverLetterFastPathSkipsCollection(t *testing.T) {
	provider := &scriptedProvider{}
	svc, _, _, _ := newCoverLetterFixture(t, provider, testAssistantConfig())

	_, session, err := svc.Start(context.Background(), &dto.CoverLetterStartRequest{
		State: dto.StateStart,
		Projects: []entity.Project{
			{Roles: []string{"프로덕트 매니저"}, Tools: []string{"Figma"}},
		},
	})
	require.NoError(t, err)

	res, session, err := svc.Continue(context.Background(), session.Id.String(), "네, 부탁해요")
	require.NoError(t, err)

	assert.Equal(t, 0, provider.calls, "a keyword-affirmed intent must not reach the model")
	assert.Equal(t, entity.CoverStateStyleSelection, session.State)
	assert.Contains(t, res.Message, "직무 목표: 프로덕트 매니저")
	assert.Contains(t, res.Message, "문체는 어떤 스타일로 원하시나요")
}

func TestCoverLetterIntentDeclineRepeatsGreeting(t *testing.T) {
	provider := &scriptedProvider{}
	svc, _, _, _ := newCoverLetterFixture(t, provider, testAssistantConfig())

	_, session, err := svc.Start(context.Background(), &dto.CoverLetterStartRequest{
		State:    dto.StateStart,
		Projects: []entity.Project{{Roles: []string{"개발자"}}},
	})
	require.NoError(t, err)

	res, session, err := svc.Continue(context.Background(), session.Id.String(), "아니요")
	require.NoError(t, err)

	assert.Equal(t, 0, provider.calls)
	assert.Equal(t, entity.CoverStateIntentConfirmation, session.State)
	assert.Equal(t, constant.CoverLetterGreetingMessage, res.Message)
}

func TestCoverLetterAmbiguousIntentAsksModel(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"wants_cover_letter": true, "confidence": "medium", "reasoning": "긍정으로 해석"}`,
	}}
	svc, _, _, _ := newCoverLetterFixture(t, provider, testAssistantConfig())

	_, session, err := svc.Start(context.Background(), &dto.CoverLetterStartRequest{
		State:    dto.StateStart,
		Projects: []entity.Project{{}},
	})
	require.NoError(t, err)

	res, session, err := svc.Continue(context.Background(), session.Id.String(), "글쎄 어떻게 할까")
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, entity.CoverStateCollectingInfo, session.State)
	assert.Equal(t, constant.CoverLetterCollectMessage, res.Message)
}

func TestCoverLetterCollectingInfoAdvancesWhenReady(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"updated_data": {"position": "백엔드 개발자", "skills": ["Go", "Redis"]}, "response_message": "기록했어요.", "needs_more_info": false}`,
	}}
	svc, repo, _, _ := newCoverLetterFixture(t, provider, testAssistantConfig())

	session := entity.NewSession(entity.FlowCoverLetter, entity.CoverStateCollectingInfo)
	session.CoverLetter = &entity.CoverLetter{}
	session.LastPrompt = entity.PromptInfoQuestion
	require.NoError(t, repo.Save(context.Background(), session))

	res, session, err := svc.Continue(context.Background(), session.Id.String(), "백엔드 개발자 지원이고 Go를 다룹니다")
	require.NoError(t, err)

	assert.Equal(t, entity.CoverStateStyleSelection, session.State)
	assert.Contains(t, res.Message, "직무 목표: 백엔드 개발자")
}

func TestCoverLetterCollectingInfoKeepsAskingWhenIncomplete(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"updated_data": {"skills": ["Go"]}, "response_message": "지원하시는 직무는 무엇인가요?", "needs_more_info": true}`,
	}}
	svc, repo, _, _ := newCoverLetterFixture(t, provider, testAssistantConfig())

	session := entity.NewSession(entity.FlowCoverLetter, entity.CoverStateCollectingInfo)
	session.CoverLetter = &entity.CoverLetter{}
	session.LastPrompt = entity.PromptInfoQuestion
	require.NoError(t, repo.Save(context.Background(), session))

	res, session, err := svc.Continue(context.Background(), session.Id.String(), "Go를 주로 씁니다")
	require.NoError(t, err)

	assert.Equal(t, entity.CoverStateCollectingInfo, session.State)
	assert.Equal(t, "지원하시는 직무는 무엇인가요?", res.Message)
	assert.True(t, session.CoverLetter.NeedsMoreInfo)
}

func TestCoverLetterStyleSelectionGeneratesDraft(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"저는 사용자 문제를 구조적으로 푸는 백엔드 개발자입니다.",
	}}
	svc, repo, _, _ := newCoverLetterFixture(t, provider, testAssistantConfig())

	session := entity.NewSession(entity.FlowCoverLetter, entity.CoverStateStyleSelection)
	session.CoverLetter = &entity.CoverLetter{Position: strPtr("백엔드 개발자"), Skills: []string{"Go"}}
	session.LastPrompt = entity.PromptStyleChoice
	require.NoError(t, repo.Save(context.Background(), session))

	res, session, err := svc.Continue(context.Background(), session.Id.String(), "격식 있는 스타일")
	require.NoError(t, err)

	assert.Equal(t, "격식 있는 스타일", session.WritingStyle)
	assert.Equal(t, entity.CoverStateDraftRevision, session.State)
	assert.Equal(t, entity.PromptDraftFeedback, session.LastPrompt)
	assert.Contains(t, res.Message, "AI 초안 미리보기")
	assert.Contains(t, res.Message, session.Draft)
}

func TestCoverLetterRevisionLoopKeepsState(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"더 부드러워진 초안입니다."}}
	svc, repo, _, _ := newCoverLetterFixture(t, provider, testAssistantConfig())

	session := entity.NewSession(entity.FlowCoverLetter, entity.CoverStateDraftRevision)
	session.CoverLetter = &entity.CoverLetter{Position: strPtr("백엔드 개발자")}
	session.Draft = "첫 초안입니다."
	session.LastPrompt = entity.PromptRevisionAsk
	require.NoError(t, repo.Save(context.Background(), session))

	res, session, err := svc.Continue(context.Background(), session.Id.String(), "어조를 더 부드럽게 바꿔줘")
	require.NoError(t, err)

	assert.Equal(t, entity.CoverStateDraftRevision, session.State)
	assert.Equal(t, entity.PromptRevisionAsk, session.LastPrompt)
	assert.Equal(t, "더 부드러워진 초안입니다.", session.Draft)
	assert.Contains(t, res.Message, "수정 완료")
}

func TestCoverLetterBareConfirmationGoesToFinalGate(t *testing.T) {
	provider := &scriptedProvider{}
	svc, repo, _, _ := newCoverLetterFixture(t, provider, testAssistantConfig())

	session := entity.NewSession(entity.FlowCoverLetter, entity.CoverStateDraftRevision)
	session.CoverLetter = &entity.CoverLetter{Position: strPtr("백엔드 개발자")}
	session.Draft = "첫 초안입니다."
	session.LastPrompt = entity.PromptDraftFeedback
	require.NoError(t, repo.Save(context.Background(), session))

	res, session, err := svc.Continue(context.Background(), session.Id.String(), "네")
	require.NoError(t, err)

	assert.Equal(t, 0, provider.calls)
	assert.Equal(t, entity.CoverStateFinalConfirmation, session.State)
	assert.Equal(t, constant.FinalConfirmationMessage, res.Message)
}

func TestCoverLetterConfirmAfterRevisionAskCompletes(t *testing.T) {
	provider := &scriptedProvider{}
	svc, repo, publisher, outputDir := newCoverLetterFixture(t, provider, testAssistantConfig())

	session := entity.NewSession(entity.FlowCoverLetter, entity.CoverStateDraftRevision)
	session.CoverLetter = &entity.CoverLetter{Position: strPtr("백엔드 개발자")}
	session.Draft = "최종 초안입니다."
	session.LastPrompt = entity.PromptRevisionAsk
	require.NoError(t, repo.Save(context.Background(), session))

	res, session, err := svc.Continue(context.Background(), session.Id.String(), "네")
	require.NoError(t, err)

	assert.Equal(t, entity.CoverStateCompleted, session.State)
	assert.Contains(t, res.Message, "Word 파일을 생성했습니다")
	assert.NotEmpty(t, res.URL)
	assert.Contains(t, res.Filename, "자기소개서_백엔드 개발자")

	_, statErr := os.Stat(filepath.Join(outputDir, res.Filename))
	assert.NoError(t, statErr, "rendered file should exist on disk")

	require.Len(t, publisher.topics, 1)
	assert.Equal(t, TopicCoverLetterCompleted, publisher.topics[0])
	var event CoverLetterCompletedEvent
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &event))
	assert.Equal(t, session.Id.String(), event.SessionId)
	require.NotNil(t, event.Artifact)
	assert.Equal(t, res.Filename, event.Artifact.Filename)
}

func TestCoverLetterFinalConfirmationFinalizesOnDownload(t *testing.T) {
	provider := &scriptedProvider{}
	svc, repo, publisher, _ := newCoverLetterFixture(t, provider, testAssistantConfig())

	session := entity.NewSession(entity.FlowCoverLetter, entity.CoverStateFinalConfirmation)
	session.CoverLetter = &entity.CoverLetter{Position: strPtr("백엔드 개발자")}
	session.Draft = "최종 초안입니다."
	session.LastPrompt = entity.PromptFinalConfirmation
	require.NoError(t, repo.Save(context.Background(), session))

	res, session, err := svc.Continue(context.Background(), session.Id.String(), "다운로드")
	require.NoError(t, err)

	assert.Equal(t, entity.CoverStateCompleted, session.State)
	assert.NotEmpty(t, res.URL)
	assert.Len(t, publisher.topics, 1)
}

func TestCoverLetterCompletedAnswersFollowUp(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"면접에서는 프로젝트의 문제 해결 과정을 강조해보세요."}}
	svc, repo, _, _ := newCoverLetterFixture(t, provider, testAssistantConfig())

	session := entity.NewSession(entity.FlowCoverLetter, entity.CoverStateCompleted)
	session.CoverLetter = &entity.CoverLetter{Position: strPtr("백엔드 개발자")}
	session.Draft = "최종 초안입니다."
	require.NoError(t, repo.Save(context.Background(), session))

	res, _, err := svc.Continue(context.Background(), session.Id.String(), "면접에서 뭘 강조하면 좋을까?")
	require.NoError(t, err)

	assert.Equal(t, "면접에서는 프로젝트의 문제 해결 과정을 강조해보세요.", res.Message)
}
