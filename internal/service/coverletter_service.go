package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"nexter-ai-be/internal/config"
	"nexter-ai-be/internal/constant"
	"nexter-ai-be/internal/dto"
	"nexter-ai-be/internal/entity"
	"nexter-ai-be/internal/pkg/logger"
	"nexter-ai-be/internal/repository/contract"
	"nexter-ai-be/pkg/classify"
	"nexter-ai-be/pkg/document"
	"nexter-ai-be/pkg/oracle"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// TopicCoverLetterCompleted carries finalization events to the archiver.
const TopicCoverLetterCompleted = "cover_letter.completed"

// CoverLetterCompletedEvent is the payload published when a letter reaches
// the completed state with a rendered artifact.
type CoverLetterCompletedEvent struct {
	SessionId string              `json:"session_id"`
	Artifact  *document.Artifact  `json:"artifact"`
	Data      *entity.CoverLetter `json:"data"`
	CreatedAt time.Time           `json:"created_at"`
}

// ICoverLetterService drives the cover letter authoring pipeline.
type ICoverLetterService interface {
	Start(ctx context.Context, request *dto.CoverLetterStartRequest) (*dto.CoverLetterStartResponse, *entity.Session, error)
	Continue(ctx context.Context, sessionId, answer string) (*dto.CoverLetterTurnResponse, *entity.Session, error)
}

type coverLetterService struct {
	oracle      *oracle.Oracle
	sessionRepo contract.SessionRepository
	renderer    *document.WordRenderer
	publisher   message.Publisher
	cfg         config.AssistantConfig
	log         logger.ILogger
}

func NewCoverLetterService(
	oracleAdapter *oracle.Oracle,
	sessionRepo contract.SessionRepository,
	renderer *document.WordRenderer,
	publisher message.Publisher,
	cfg config.AssistantConfig,
	log logger.ILogger,
) ICoverLetterService {
	return &coverLetterService{
		oracle:      oracleAdapter,
		sessionRepo: sessionRepo,
		renderer:    renderer,
		publisher:   publisher,
		cfg:         cfg,
		log:         log,
	}
}

// Start folds the supplied projects into a profile exactly once and opens the
// session at intent confirmation. Later turns only merge; they never re-derive.
func (s *coverLetterService) Start(ctx context.Context, request *dto.CoverLetterStartRequest) (*dto.CoverLetterStartResponse, *entity.Session, error) {
	session := entity.NewSession(entity.FlowCoverLetter, entity.CoverStateIntentConfirmation)
	session.CoverLetter = entity.CoverLetterFromProjects(request.Projects)
	session.LastPrompt = entity.PromptIntentConfirm

	message := constant.CoverLetterGreetingMessage
	session.History = append(session.History, entity.Message{Role: entity.RoleAssistant, Content: message})

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("save cover letter session: %w", err)
	}

	s.log.Info("coverletter_service", "cover letter session started", map[string]interface{}{
		"session_id": session.Id.String(),
		"projects":   len(request.Projects),
	})
	return &dto.CoverLetterStartResponse{Message: message}, session, nil
}

func (s *coverLetterService) Continue(ctx context.Context, sessionId, answer string) (*dto.CoverLetterTurnResponse, *entity.Session, error) {
	session, err := resolveSession(ctx, s.sessionRepo, s.cfg, sessionId, entity.FlowCoverLetter)
	if err != nil {
		return nil, nil, err
	}

	response := &dto.CoverLetterTurnResponse{}

	switch session.State {
	case entity.CoverStateIntentConfirmation:
		response.Message = s.handleIntentConfirmation(ctx, session, answer)
	case entity.CoverStateCollectingInfo:
		response.Message = s.handleCollectingInfo(ctx, session, answer)
	case entity.CoverStateStyleSelection:
		response.Message = s.handleStyleSelection(ctx, session, answer)
	case entity.CoverStateDraftPreview:
		response.Message = s.handleDraftPreview(ctx, session)
	case entity.CoverStateDraftRevision:
		response.Message = s.handleDraftRevision(ctx, session, answer, response)
	case entity.CoverStateFinalConfirmation:
		response.Message = s.handleFinalConfirmation(ctx, session, answer, response)
	case entity.CoverStateCompleted:
		response.Message = s.oracle.AnswerFollowUp(ctx, session.Draft, answer)
	default:
		response.Message = constant.ProcessingErrorMessage
	}

	session.AppendTurn(answer, response.Message)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("save cover letter session: %w", err)
	}
	return response, session, nil
}

// handleIntentConfirmation asks the classifier first and only falls back to
// the oracle when the local keywords stay silent. An affirmative answer
// short-circuits to style selection when the derived profile is already ready.
func (s *coverLetterService) handleIntentConfirmation(ctx context.Context, session *entity.Session, answer string) string {
	wants := classify.IsConfirmation(answer) || classify.IsCoverLetterIntent(answer)
	if !wants && !classify.IsDecline(answer, s.cfg.DeclineShortLen) {
		wants = s.oracle.DetectCoverLetterIntent(ctx, answer)
	}
	if !wants {
		session.LastPrompt = entity.PromptIntentConfirm
		return constant.CoverLetterGreetingMessage
	}

	letter := session.CoverLetter
	if letter.Ready(s.readinessPolicy()) {
		session.State = entity.CoverStateStyleSelection
		session.LastPrompt = entity.PromptStyleChoice
		return fmt.Sprintf(constant.CoverLetterFastPathMessageFmt, letter.BasicInfoSummary())
	}

	session.State = entity.CoverStateCollectingInfo
	session.LastPrompt = entity.PromptInfoQuestion
	if letter.HasBasicInfo() {
		return fmt.Sprintf(constant.CoverLetterCollectWithInfoFmt, letter.BasicInfoSummary())
	}
	return constant.CoverLetterCollectMessage
}

func (s *coverLetterService) handleCollectingInfo(ctx context.Context, session *entity.Session, answer string) string {
	if strings.TrimSpace(answer) == "" {
		return constant.CoverLetterAskPositionMessage
	}

	extraction := s.oracle.ExtractCoverLetter(ctx, session.CoverLetter, answer, session.History)
	session.CoverLetter.Apply(extraction.Patch)
	session.CoverLetter.NeedsMoreInfo = extraction.NeedsMoreInfo

	if session.CoverLetter.Ready(s.readinessPolicy()) {
		session.State = entity.CoverStateStyleSelection
		session.LastPrompt = entity.PromptStyleChoice
		return fmt.Sprintf(constant.CoverLetterFastPathMessageFmt, session.CoverLetter.BasicInfoSummary())
	}

	session.LastPrompt = entity.PromptInfoQuestion
	return extraction.Reply
}

// handleStyleSelection takes the utterance verbatim as the writing style and
// immediately drafts. No validation, no normalization.
func (s *coverLetterService) handleStyleSelection(ctx context.Context, session *entity.Session, answer string) string {
	style := strings.TrimSpace(answer)
	if style == "" {
		session.LastPrompt = entity.PromptStyleChoice
		return constant.StyleSelectionMessage
	}
	session.WritingStyle = style

	draft, err := s.oracle.GenerateDraft(ctx, session.CoverLetter, style)
	if err != nil {
		draft = constant.DraftGenerationErrorMessage
	}
	session.Draft = draft
	session.State = entity.CoverStateDraftRevision
	session.LastPrompt = entity.PromptDraftFeedback
	return fmt.Sprintf(constant.DraftPreviewMessageFmt, draft)
}

// handleDraftPreview re-displays the draft for resumed sessions, generating
// one on the fly when none exists yet.
func (s *coverLetterService) handleDraftPreview(ctx context.Context, session *entity.Session) string {
	if session.Draft == "" {
		draft, err := s.oracle.GenerateDraft(ctx, session.CoverLetter, session.WritingStyle)
		if err != nil {
			draft = constant.DraftGenerationErrorMessage
		}
		session.Draft = draft
	}
	session.State = entity.CoverStateDraftRevision
	session.LastPrompt = entity.PromptDraftFeedback
	return fmt.Sprintf(constant.DraftPreviewMessageFmt, session.Draft)
}

// handleDraftRevision is the feedback loop. Directly after a revision the
// assistant asks "is this correct?"; that context lives in LastPrompt, so a
// confirmation there completes outright while a modification keeps looping.
// A bare confirmation without that framing goes through one extra
// final-confirmation gate. Anything else is an implicit modification request.
func (s *coverLetterService) handleDraftRevision(ctx context.Context, session *entity.Session, answer string, response *dto.CoverLetterTurnResponse) string {
	afterRevisionAsk := session.LastPrompt == entity.PromptRevisionAsk

	if afterRevisionAsk && classify.IsConfirmation(answer) && !classify.IsModificationRequest(answer, true, s.cfg.ModificationMinLen) {
		return s.complete(ctx, session, response)
	}

	if afterRevisionAsk && classify.IsModificationRequest(answer, true, s.cfg.ModificationMinLen) {
		session.Draft = s.oracle.ModifyDraft(ctx, session.Draft, answer)
		session.LastPrompt = entity.PromptRevisionAsk
		return fmt.Sprintf(constant.DraftRevisedMessageFmt, session.Draft)
	}

	if classify.IsCompletionRequest(answer) {
		return s.complete(ctx, session, response)
	}

	if classify.IsConfirmation(answer) {
		session.State = entity.CoverStateFinalConfirmation
		session.LastPrompt = entity.PromptFinalConfirmation
		return constant.FinalConfirmationMessage
	}

	if strings.TrimSpace(answer) == "" {
		session.LastPrompt = entity.PromptDraftFeedback
		return constant.DraftRevisionIdleMessage
	}

	session.Draft = s.oracle.ModifyDraft(ctx, session.Draft, answer)
	session.LastPrompt = entity.PromptRevisionAsk
	return fmt.Sprintf(constant.DraftRevisedMessageFmt, session.Draft)
}

func (s *coverLetterService) handleFinalConfirmation(ctx context.Context, session *entity.Session, answer string, response *dto.CoverLetterTurnResponse) string {
	if classify.IsFinalizeRequest(answer) {
		return s.complete(ctx, session, response)
	}
	session.LastPrompt = entity.PromptFinalConfirmation
	return constant.FinalConfirmationMessage
}

// complete transitions to the terminal state and hands the draft to the
// renderer. Rendering failure never invalidates the completed conversation:
// the reply still reports completion, just without a download link.
func (s *coverLetterService) complete(ctx context.Context, session *entity.Session, response *dto.CoverLetterTurnResponse) string {
	session.State = entity.CoverStateCompleted
	session.LastPrompt = entity.PromptNone

	if session.Draft == "" {
		return constant.GeneratingFileMessage
	}

	position := ""
	if session.CoverLetter != nil && session.CoverLetter.Position != nil {
		position = *session.CoverLetter.Position
	}

	artifact, err := s.renderer.Render(session.Draft, position)
	if err != nil {
		s.log.Error("coverletter_service", "word rendering failed", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		return constant.GeneratingFileMessage
	}

	response.URL = artifact.URL
	response.Filename = artifact.Filename
	s.publishCompleted(session, artifact)
	return fmt.Sprintf(constant.FileReadyMessageFmt, artifact.Filename)
}

func (s *coverLetterService) publishCompleted(session *entity.Session, artifact *document.Artifact) {
	event := CoverLetterCompletedEvent{
		SessionId: session.Id.String(),
		Artifact:  artifact,
		Data:      session.CoverLetter.Clone(),
		CreatedAt: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Warn("coverletter_service", "marshal completion event failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(TopicCoverLetterCompleted, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.log.Warn("coverletter_service", "publish completion event failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *coverLetterService) readinessPolicy() entity.ReadinessPolicy {
	return entity.ReadinessPolicy{
		RequireSkills:     s.cfg.ReadinessRequireSkills,
		RequireExperience: s.cfg.ReadinessRequireExperience,
	}
}
