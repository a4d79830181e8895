// FILE: pkg/classify/classify.go
// PURPOSE: Local keyword heuristics that gate state transitions before any LLM call

package classify

import (
	"strings"
	"unicode/utf8"
)

// Keyword sets are checked as case-insensitive substrings. They mirror the
// phrasing users actually type in both Korean and English.
var (
	completionKeywords = []string{"완료", "저장", "끝", "종료", "done", "save", "finish", "complete"}

	confirmationKeywords = []string{"맞아", "네", "예", "ok", "okay", "좋아", "맞아요", "네요", "예요", "그래", "그래요", "확인", "yes", "y"}

	declineKeywords = []string{"아니", "아니요", "아뇨", "없어", "없습니다", "몰라", "스킵", "넘어가", "skip", "no", "괜찮아"}

	saveIntentKeywords = []string{"저장", "그대로", "save", "keep"}

	previewKeywords = []string{"미리보기", "미리 보기", "보여줘", "보여 줘", "정리해줘", "preview", "show me"}

	modificationKeywords = []string{"수정", "바꿔", "바꾸", "변경", "고쳐", "고치", "추가", "빼줘", "삭제", "modify", "change", "edit"}

	coverLetterIntentKeywords = []string{"자기소개서", "자소서", "지원서", "cover letter", "이력서", "resume"}

	finalizeKeywords = []string{"pdf", "다운로드", "word", "docx", "저장", "download"}
)

func containsAny(message string, keywords []string) bool {
	if message == "" {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// IsCompletionRequest reports whether the user explicitly signalled "I'm done".
func IsCompletionRequest(message string) bool {
	return containsAny(message, completionKeywords)
}

// IsConfirmation reports whether the message is an affirmative reply.
func IsConfirmation(message string) bool {
	return containsAny(message, confirmationKeywords)
}

// IsDecline reports whether the message should be read as "skip it / keep as-is".
// A bare negation is not enough: long substantive replies often contain an
// incidental negative, so a decline needs either a save-intent keyword or a
// short, low-information message (under maxShortLen runes).
func IsDecline(message string, maxShortLen int) bool {
	if !containsAny(message, declineKeywords) {
		return false
	}
	if containsAny(message, saveIntentKeywords) {
		return true
	}
	return utf8.RuneCountInString(strings.TrimSpace(message)) < maxShortLen
}

// IsPreviewRequest reports whether the user asked to see the current record.
func IsPreviewRequest(message string) bool {
	return containsAny(message, previewKeywords)
}

// IsModificationRequest is only meaningful directly after a final-confirmation
// prompt; the caller passes that context explicitly. Save/confirm keywords win
// outright. Otherwise a modification keyword, or any ambiguous message longer
// than minLen runes, is treated as a modification request.
func IsModificationRequest(message string, afterFinalPrompt bool, minLen int) bool {
	if !afterFinalPrompt || message == "" {
		return false
	}
	if containsAny(message, saveIntentKeywords) || containsAny(message, confirmationKeywords) {
		return false
	}
	if containsAny(message, modificationKeywords) {
		return true
	}
	return utf8.RuneCountInString(strings.TrimSpace(message)) > minLen
}

// IsCoverLetterIntent reports whether the message mentions wanting a cover letter.
func IsCoverLetterIntent(message string) bool {
	return containsAny(message, coverLetterIntentKeywords)
}

// IsFinalizeRequest matches the save/download/file-format synonyms accepted at
// the final confirmation gate.
func IsFinalizeRequest(message string) bool {
	return IsConfirmation(message) || containsAny(message, finalizeKeywords)
}
