package entity

import (
	"time"

	"github.com/google/uuid"
)

// Flow identifiers for the two conversation pipelines.
const (
	FlowProjectRefine = "project_refine"
	FlowCoverLetter   = "cover_letter"
)

// Project-refine states.
const (
	RefineStateConversing = "conversing"
	RefineStatePreview    = "preview"
	RefineStateCompleted  = "completed"
)

// Cover-letter pipeline states.
const (
	CoverStateIntentConfirmation = "intent_confirmation"
	CoverStateCollectingInfo     = "collecting_info"
	CoverStateStyleSelection     = "style_selection"
	CoverStateDraftPreview       = "draft_preview"
	CoverStateDraftRevision      = "draft_revision"
	CoverStateFinalConfirmation  = "final_confirmation"
	CoverStateCompleted          = "completed"
)

// LastPrompt tags record what the assistant just asked, so the next turn can
// branch on explicit state rather than sniffing prior message text.
const (
	PromptNone              = ""
	PromptFieldQuestion     = "field_question"
	PromptPreviewConfirm    = "preview_confirm"
	PromptIntentConfirm     = "intent_confirm"
	PromptInfoQuestion      = "info_question"
	PromptStyleChoice       = "style_choice"
	PromptDraftFeedback     = "draft_feedback"
	PromptRevisionAsk       = "revision_ask"
	PromptFinalConfirmation = "final_confirmation"
)

// Message is one turn of conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session holds the full state of one conversation. It is the unit stored in
// the session repository and is JSON-serializable for the redis backing.
type Session struct {
	Id           uuid.UUID    `json:"id"`
	Flow         string       `json:"flow"`
	State        string       `json:"state"`
	LastPrompt   string       `json:"last_prompt"`
	Project      *Project     `json:"project,omitempty"`
	CoverLetter  *CoverLetter `json:"cover_letter,omitempty"`
	History      []Message    `json:"history"`
	WritingStyle string       `json:"writing_style,omitempty"`
	Draft        string       `json:"draft,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewSession creates a session for the given flow in its initial state.
func NewSession(flow, state string) *Session {
	return &Session{
		Id:        uuid.New(),
		Flow:      flow,
		State:     state,
		CreatedAt: time.Now(),
	}
}

// AppendTurn records a user utterance and the assistant reply.
func (s *Session) AppendTurn(userMessage, assistantMessage string) {
	s.History = append(s.History,
		Message{Role: RoleUser, Content: userMessage},
		Message{Role: RoleAssistant, Content: assistantMessage},
	)
}

// RecentHistory returns up to n most recent messages, oldest first.
func (s *Session) RecentHistory(n int) []Message {
	if n <= 0 || len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}
