package dto

import (
	"nexter-ai-be/internal/entity"
)

// StateStart is the sentinel state value that opens a new session.
const StateStart = "start"

type RefineStartRequest struct {
	State   string          `json:"state" validate:"required"`
	Project *entity.Project `json:"project" validate:"required"`
}

// ChatTurnRequest continues an existing session. The session may also be
// identified via the X-Session-Id header or the session_id cookie.
type ChatTurnRequest struct {
	Answer    string `json:"answer" validate:"required"`
	SessionId string `json:"session_id,omitempty"`
}

type RefineTurnResponse struct {
	Message string `json:"message"`
	// Project is included only when the reply signals a save event.
	Project *entity.Project `json:"project,omitempty"`
}

type CoverLetterStartRequest struct {
	State    string           `json:"state" validate:"required"`
	Purpose  string           `json:"purpose,omitempty"`
	Projects []entity.Project `json:"projects" validate:"required,min=1"`
}

type CoverLetterStartResponse struct {
	Message string `json:"message"`
}

type CoverLetterTurnResponse struct {
	Message string `json:"message"`
	// URL and Filename appear only once the flow completes and the Word
	// artifact rendered successfully.
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// AnalyzeRequest is the JSON form of the analyze endpoint; multipart
// uploads are parsed by the controller instead.
type AnalyzeRequest struct {
	URL  string `json:"url,omitempty"`
	Text string `json:"text,omitempty"`
}

type AnalyzeResponse struct {
	Project *entity.Project `json:"project"`
}
