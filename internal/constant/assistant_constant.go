package constant

// Conversation roles shared by both assistant flows.
const (
	AssistantRoleUser      = "user"
	AssistantRoleAssistant = "assistant"
)

// Oracle prompts. All of them demand a JSON object back; the oracle package
// owns fence-stripping and validated decoding of the reply.
const (
	// ProjectExtractionPromptV1 expects: current metadata JSON, recent
	// history, user message.
	ProjectExtractionPromptV1 = `당신은 프로젝트 메타데이터를 대화를 통해 정리하는 AI입니다.

현재 메타데이터 상태:
%s

최근 대화:
%s

사용자 메시지: %s

사용자의 메시지를 분석하여 다음 정보를 추출하고 업데이트하세요:
- title: 프로젝트 제목
- category: 프로젝트 카테고리 (예: 웹 개발, 앱 개발, 데이터 분석 등)
- tags: 태그 (배열)
- roles: 역할 (배열)
- achievements: 주요 성과 (배열)
- tools: 사용된 기술/도구 (배열)
- description: 상세 설명

사용자가 불완전한 정보를 제공했거나 기억이 안 난다고 하면, 대화를 통해 자연스럽게 추가 정보를 물어보세요.

JSON 형식으로만 응답하세요:
{
  "updated_metadata": {
    "title": "업데이트된 제목 또는 null",
    "category": "업데이트된 카테고리 또는 null",
    "tags": [],
    "roles": [],
    "achievements": [],
    "tools": [],
    "description": "업데이트된 설명 또는 null"
  },
  "response_message": "사용자에게 자연스럽게 대화를 이어갈 수 있는 메시지",
  "needs_more_info": true
}

기존 값이 있으면 유지하되, 새로운 정보가 제공되면 업데이트하세요.`

	// CoverLetterExtractionPromptV1 expects: current data JSON, recent
	// history, user message.
	CoverLetterExtractionPromptV1 = `당신은 자기소개서 작성을 도와주는 AI 챗봇 '넥스터'입니다.

현재 수집된 정보:
%s

최근 대화:
%s

사용자 메시지: %s

사용자의 메시지를 분석하여 다음 정보를 추출하고 업데이트하세요:
- position: 직무 목표 (예: 마케팅/기획, 개발자, 디자이너 등)
- skills: 기술 스택 (배열)
- experience: 최근 경력/경험
- achievements: 주요 성과 (배열)
- motivation: 지원 동기
- strengths: 강점 (배열)
- personality: 성격/특징
- future_plans: 향후 계획

사용자가 불완전한 정보를 제공했거나 기억이 안 난다고 하면, 대화를 통해 자연스럽게 추가 정보를 물어보세요.

JSON 형식으로만 응답하세요:
{
  "updated_data": {
    "position": "직무 또는 null",
    "skills": [],
    "experience": "경력/경험 또는 null",
    "achievements": [],
    "motivation": "지원 동기 또는 null",
    "strengths": [],
    "personality": "성격/특징 또는 null",
    "future_plans": "향후 계획 또는 null"
  },
  "response_message": "사용자에게 자연스럽게 대화를 이어갈 수 있는 메시지",
  "needs_more_info": true
}

기존 값이 있으면 유지하되, 새로운 정보가 제공되면 업데이트하세요.`

	// CoverLetterIntentPromptV1 expects: user message, optional context.
	CoverLetterIntentPromptV1 = `당신은 자기소개서 작성을 도와주는 AI 챗봇 '넥스터'입니다.

사용자가 "안녕하세요! 저는 자기소개서 작성을 도와주는 넥스터입니다. 자기소개서 작성을 원하시나요?"라고 물어본 후, 사용자가 다음과 같이 답했습니다:

사용자 메시지: %s
%s

사용자의 답변을 분석하여 자기소개서 작성을 원하는지 확인해주세요.
- "응", "네", "예", "좋아", "그래", "응응" 등의 긍정 응답은 자기소개서 작성을 원하는 것으로 간주합니다.
- "아니", "안 해", "싫어" 등의 부정 응답은 원하지 않는 것으로 간주합니다.
- 명확하지 않은 경우도 긍정적으로 해석합니다.

JSON 형식으로만 응답하세요:
{
  "wants_cover_letter": true,
  "confidence": "high",
  "reasoning": "판단 근거"
}`

	// DraftGenerationPromptV1 expects: writing style, data JSON, project
	// instruction, writing style (again).
	DraftGenerationPromptV1 = `다음 정보를 바탕으로 %s 문체로 자기소개서 초안을 작성해주세요.

수집된 정보:
%s
%s

자기소개서는 다음을 포함해야 합니다:
1. 지원 동기 및 직무에 대한 관심
2. 보유 기술과 경험
3. 주요 성과와 결과
4. 강점과 특징
5. 향후 계획

문체는 %s 느낌으로 작성해주세요.
구체적이고 설득력 있게 작성하되, 자연스럽게 표현해주세요.`

	DraftMultiProjectInstruction  = "\n\n**중요: 데이터에 포함된 프로젝트들을 각각 구분해서 자기소개서에 반영하세요. 프로젝트가 여러 개인 경우, 각 프로젝트를 별도 문단으로 작성하거나 구분해서 설명해주세요.**"
	DraftSingleProjectInstruction = "\n\n**중요: 데이터에 포함된 프로젝트 정보를 활용하여 자기소개서를 작성하세요.**"

	// DraftModificationPromptV1 expects: current draft, user request.
	DraftModificationPromptV1 = `다음 자기소개서를 사용자의 요청에 맞게 수정해주세요.

현재 자기소개서:
%s

사용자 요청: %s

**수정 가이드라인:**
1. 사용자가 "마지막에 ~로 끝내줘" 또는 "~로 끝내주세요"라고 하면:
   - 자기소개서의 마지막 문장을 사용자가 요청한 내용으로 정확히 교체하세요
   - "감사합니다."는 항상 맨 마지막에 유지하세요

2. 사용자가 "~를 추가해줘"라고 하면:
   - 적절한 위치에 해당 내용을 자연스럽게 추가하세요

3. 사용자가 "~를 바꿔줘" 또는 "~를 수정해줘"라고 하면:
   - 해당 부분을 찾아서 정확히 교체하세요

4. 전체적인 문체와 톤은 유지하되, 요청된 부분은 **반드시** 정확히 반영하세요.

수정된 자기소개서 전문만 출력하세요. 설명이나 추가 코멘트는 불필요합니다.`

	// FollowUpPromptV1 expects: draft excerpt, user question.
	FollowUpPromptV1 = `사용자가 자기소개서 작성을 완료했습니다.

현재 생성된 자기소개서:
%s

사용자의 추가 질문: %s

사용자의 질문에 친절하게 답변해주세요.
- 자기소개서를 다시 수정하고 싶다면: "새로운 자기소개서를 작성하려면 처음부터 다시 시작해주세요"라고 안내
- 파일 다운로드 관련 질문: "이미 생성된 파일을 다운로드하실 수 있습니다"라고 안내
- 일반적인 질문이면 친절하게 답변
- 자기소개서 작성 팁이나 조언을 요청하면 구체적으로 답변`

	// ProjectAnalysisPromptV1 expects: provenance note, source text.
	ProjectAnalysisPromptV1 = `다음 자료를 분석하여 프로젝트 메타데이터를 추출하세요.

자료 출처: %s

자료 내용:
%s

JSON 형식으로만 응답하세요:
{
  "title": "프로젝트 제목 또는 null",
  "category": "프로젝트 카테고리 또는 null",
  "tags": [],
  "roles": [],
  "achievements": [],
  "tools": [],
  "description": "상세 설명 또는 null"
}

자료에서 확인되지 않는 값은 null 또는 빈 배열로 두세요. 추측으로 채우지 마세요.`
)

// Fixed assistant replies. The two phrases "보강했어" and "저장되었습니다"
// double as a response-shape contract: callers include the project payload
// only when the reply carries one of them.
const (
	FallbackApologyMessage = "죄송합니다. 이해하지 못했습니다. 다시 말씀해주실 수 있을까요?"
	ProcessingErrorMessage = "죄송합니다. 처리 중 오류가 발생했습니다."

	RefineOpenGreetingMessage = "이 프로젝트에 대해 이미 정리된 내용이 있네요. 어떤 부분을 수정하거나 보완하고 싶으신가요?"

	RefinePreviewMessageFmt = "지금까지 정리한 내용:\n\n%s\n\n이렇게 업데이트 해도 될까요? (맞으면 '네' 또는 '완료', 수정이 필요하면 수정할 내용을 알려주세요)"

	RefineEnrichedMessageFmt = "말씀해주신 내용을 반영해서 보강했어요!\n\n%s\n\n더 수정할 내용이 있으면 알려주시고, 완료되면 '저장'이라고 말씀해주세요."

	RefineSavedMessageFmt = "저장되었습니다! 최종 정리된 내용입니다:\n\n%s"

	CoverLetterGreetingMessage = "안녕하세요! 저는 자기소개서 작성을 도와주는 넥스터입니다. 자기소개서 작성을 원하시나요?"

	CoverLetterFastPathMessageFmt = "확인된 기본 정보\n\n%s\n\n이 정보를 기반으로 자기소개서를 작성할게요.\n\n문체는 어떤 스타일로 원하시나요?"

	CoverLetterCollectWithInfoFmt = "안녕하세요! 저는 자기소개서 작성을 도와주는 넥스터입니다.\n\n분석된 정보를 확인했습니다:\n\n%s\n\n추가로 필요한 정보를 빠르게 수집하겠습니다."

	CoverLetterCollectMessage = "안녕하세요! 저는 자기소개서 작성을 도와주는 넥스터입니다.\n\n자기소개서 작성을 위해 몇 가지 정보가 필요합니다.\n\n먼저 지원하시는 직무 목표를 알려주세요. (예: 마케팅/기획, 개발자, 디자이너 등)"

	CoverLetterAskPositionMessage = "지원하시는 직무 목표를 알려주세요."

	StyleSelectionMessage = "문체는 어떤 스타일로 원하시나요? (예: 자연스럽고 전문적인, 격식 있는, 친근한 등)"

	DraftPreviewMessageFmt = "AI 초안 미리보기 ✅\n\n\"%s\"\n\n---\n\n어때요? 마음에 드시나요?\n수정하고 싶거나 추가하고 싶은 내용이 있으면 알려주세요!\n완성했다면 '완료' 또는 '저장'이라고 말씀해주세요."

	DraftRevisedMessageFmt = "수정 완료 ✅\n\n%s\n\n이게 맞나요? 맞다면 네 라고 말해주시고 다시 수정을 원하면 수정이라고 말해주세요"

	DraftRevisionIdleMessage = "수정이 필요하시면 알려주세요. 그렇지 않으면 '좋아' 또는 '확인'이라고 말씀해주세요."

	FinalConfirmationMessage = "최종 자기소개서를 확인하시겠어요? (Word 파일로 저장하려면 '예' 또는 '저장'이라고 말씀해주세요)"

	GeneratingFileMessage = "완료 ✅\n\nWord 파일을 생성 중입니다..."

	FileReadyMessageFmt = "완료 ✅\n\nWord 파일을 생성했습니다.\n\n파일명: %s\n\n다음에는 Settings에 '활동·공모전 수상 내역'도 추가하면 더 풍부한 자기소개서가 만들어질 거예요."

	CompletedIdleMessage = "자기소개서가 완성되었습니다! 추가로 궁금한 점이 있으시면 언제든 물어보세요."

	FollowUpErrorMessage = "질문에 답변하는 중 오류가 발생했습니다. 다시 질문해주세요."

	DraftGenerationErrorMessage = "자기소개서 초안 생성 중 오류가 발생했습니다."

	SessionNotFoundMessage = "세션을 찾을 수 없습니다. 먼저 START 요청을 보내주세요."

	DefaultWritingStyle = "자연스럽고 전문적인"
)

// First-turn questions for empty project fields, keyed by field name.
var ProjectFieldQuestions = map[string]string{
	"title":        "안녕하세요! 이 프로젝트에 대해 알려주세요. 먼저 프로젝트 제목이 무엇인가요?",
	"category":     "이 프로젝트는 어떤 카테고리에 속하나요?",
	"tags":         "이 프로젝트와 관련된 키워드나 태그가 있나요?",
	"roles":        "이 프로젝트에서 맡으신 역할이 무엇이었나요?",
	"achievements": "이 프로젝트에서 달성한 주요 성과가 있나요?",
	"tools":        "이 프로젝트에서 사용하신 기술이나 도구가 무엇인가요?",
	"description":  "이 프로젝트에 대해 자세히 설명해주세요.",
}
