package service

import (
	"context"
	"fmt"

	"nexter-ai-be/internal/config"
	"nexter-ai-be/internal/constant"
	"nexter-ai-be/internal/dto"
	"nexter-ai-be/internal/entity"
	"nexter-ai-be/internal/pkg/logger"
	"nexter-ai-be/internal/repository/contract"
	"nexter-ai-be/pkg/classify"
	"nexter-ai-be/pkg/oracle"
)

// IRefineService drives the project metadata refinement conversation.
type IRefineService interface {
	Start(ctx context.Context, request *dto.RefineStartRequest) (*dto.RefineTurnResponse, *entity.Session, error)
	Continue(ctx context.Context, sessionId, answer string) (*dto.RefineTurnResponse, *entity.Session, error)
}

type refineService struct {
	oracle      *oracle.Oracle
	sessionRepo contract.SessionRepository
	cfg         config.AssistantConfig
	log         logger.ILogger
}

func NewRefineService(
	oracleAdapter *oracle.Oracle,
	sessionRepo contract.SessionRepository,
	cfg config.AssistantConfig,
	log logger.ILogger,
) IRefineService {
	return &refineService{
		oracle:      oracleAdapter,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		log:         log,
	}
}

// Start opens a refinement session around the supplied record. When the
// record already holds data the greeting asks what to revise; otherwise it
// asks for the highest-priority missing field.
func (s *refineService) Start(ctx context.Context, request *dto.RefineStartRequest) (*dto.RefineTurnResponse, *entity.Session, error) {
	project := request.Project.Clone()
	if project == nil {
		project = &entity.Project{}
	}

	session := entity.NewSession(entity.FlowProjectRefine, entity.RefineStateConversing)
	session.Project = project
	session.LastPrompt = entity.PromptFieldQuestion

	var message string
	if project.HasAny() {
		message = constant.RefineOpenGreetingMessage
	} else {
		missing := project.MissingFields()
		message = constant.ProjectFieldQuestions[missing[0]]
	}

	session.History = append(session.History, entity.Message{Role: entity.RoleAssistant, Content: message})

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("save refine session: %w", err)
	}

	s.log.Info("refine_service", "refine session started", map[string]interface{}{"session_id": session.Id.String()})
	return &dto.RefineTurnResponse{Message: message}, session, nil
}

// Continue processes one turn. Local classification runs before any oracle
// call: preview and completion requests short-circuit, and the preview state
// resolves confirm/modify/decline without re-parsing prior message text.
func (s *refineService) Continue(ctx context.Context, sessionId, answer string) (*dto.RefineTurnResponse, *entity.Session, error) {
	session, err := resolveSession(ctx, s.sessionRepo, s.cfg, sessionId, entity.FlowProjectRefine)
	if err != nil {
		return nil, nil, err
	}

	// A completed session accepts further turns as fresh conversing turns on
	// top of the finalized record.
	if session.State == entity.RefineStateCompleted {
		session.State = entity.RefineStateConversing
		session.LastPrompt = entity.PromptFieldQuestion
	}

	var message string
	includeProject := false

	switch session.State {
	case entity.RefineStatePreview:
		message, includeProject = s.handlePreviewTurn(ctx, session, answer)
	default:
		message = s.handleConversingTurn(ctx, session, answer)
	}

	session.AppendTurn(answer, message)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("save refine session: %w", err)
	}

	response := &dto.RefineTurnResponse{Message: message}
	if includeProject {
		response.Project = session.Project.Clone()
	}
	return response, session, nil
}

func (s *refineService) handleConversingTurn(ctx context.Context, session *entity.Session, answer string) string {
	// Preview and completion requests never reach the oracle.
	if classify.IsPreviewRequest(answer) || classify.IsCompletionRequest(answer) {
		session.State = entity.RefineStatePreview
		session.LastPrompt = entity.PromptPreviewConfirm
		return fmt.Sprintf(constant.RefinePreviewMessageFmt, session.Project.SummaryText())
	}

	extraction := s.oracle.ExtractProject(ctx, session.Project, answer, session.History)
	session.Project.Apply(extraction.Patch)
	session.LastPrompt = entity.PromptFieldQuestion
	return extraction.Reply
}

func (s *refineService) handlePreviewTurn(ctx context.Context, session *entity.Session, answer string) (string, bool) {
	// Decline first: "아니요, 그대로 저장해줘" carries both negation and a
	// save keyword and must finalize without an oracle call.
	if classify.IsDecline(answer, s.cfg.DeclineShortLen) {
		return s.finalize(session), true
	}

	if classify.IsConfirmation(answer) || classify.IsCompletionRequest(answer) {
		// Last-chance fold so trailing info in the confirmation itself
		// ("네, 태그에 AI도 추가해줘") is not lost.
		extraction := s.oracle.ExtractProject(ctx, session.Project, answer, session.History)
		session.Project.Apply(extraction.Patch)
		return s.finalize(session), true
	}

	if classify.IsModificationRequest(answer, true, s.cfg.ModificationMinLen) {
		extraction := s.oracle.ExtractProject(ctx, session.Project, answer, session.History)
		session.Project.Apply(extraction.Patch)
		session.State = entity.RefineStateConversing
		session.LastPrompt = entity.PromptFieldQuestion
		return fmt.Sprintf(constant.RefineEnrichedMessageFmt, session.Project.SummaryText()), true
	}

	// Too ambiguous to act on: repeat the confirmation prompt.
	return fmt.Sprintf(constant.RefinePreviewMessageFmt, session.Project.SummaryText()), false
}

func (s *refineService) finalize(session *entity.Session) string {
	session.State = entity.RefineStateCompleted
	session.LastPrompt = entity.PromptNone
	return fmt.Sprintf(constant.RefineSavedMessageFmt, session.Project.SummaryText())
}
