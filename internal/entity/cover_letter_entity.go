package entity

import (
	"strings"

	"nexter-ai-be/pkg/merge"
)

// CoverLetter accumulates the applicant profile a draft is generated from.
// Experience is free text assembled from project fragments and conversation;
// motivation/strengths/personality/future plans only ever come from dialogue.
type CoverLetter struct {
	Position      *string   `json:"position"`
	Skills        []string  `json:"skills"`
	Experience    *string   `json:"experience"`
	Achievements  []string  `json:"achievements"`
	Motivation    *string   `json:"motivation"`
	Strengths     []string  `json:"strengths"`
	Personality   *string   `json:"personality"`
	FuturePlans   *string   `json:"future_plans"`
	Projects      []Project `json:"projects,omitempty"`
	NeedsMoreInfo bool      `json:"needs_more_info,omitempty"`
}

// CoverLetterPatch is the oracle-proposed partial update for a profile.
type CoverLetterPatch struct {
	Position     *string  `json:"position"`
	Skills       []string `json:"skills"`
	Experience   *string  `json:"experience"`
	Achievements []string `json:"achievements"`
	Motivation   *string  `json:"motivation"`
	Strengths    []string `json:"strengths"`
	Personality  *string  `json:"personality"`
	FuturePlans  *string  `json:"future_plans"`
}

// ReadinessPolicy decides when a profile holds enough to generate a draft.
// The default requires a position plus at least one of skills/experience;
// stricter deployments can demand both.
type ReadinessPolicy struct {
	RequireSkills     bool
	RequireExperience bool
}

// Apply folds a patch into the profile with the same never-delete semantics
// as the project record.
func (c *CoverLetter) Apply(patch *CoverLetterPatch) {
	if patch == nil {
		return
	}
	c.Position = merge.Text(c.Position, patch.Position)
	c.Skills = merge.Union(c.Skills, patch.Skills)
	c.Experience = merge.Text(c.Experience, patch.Experience)
	c.Achievements = merge.Union(c.Achievements, patch.Achievements)
	c.Motivation = merge.Text(c.Motivation, patch.Motivation)
	c.Strengths = merge.Union(c.Strengths, patch.Strengths)
	c.Personality = merge.Text(c.Personality, patch.Personality)
	c.FuturePlans = merge.Text(c.FuturePlans, patch.FuturePlans)
}

// Ready reports whether the profile satisfies the readiness policy and the
// oracle has not flagged that more information is needed.
func (c *CoverLetter) Ready(policy ReadinessPolicy) bool {
	if c.NeedsMoreInfo {
		return false
	}
	if isEmptyText(c.Position) {
		return false
	}
	hasSkills := len(c.Skills) > 0
	hasExperience := !isEmptyText(c.Experience)
	if policy.RequireSkills && policy.RequireExperience {
		return hasSkills && hasExperience
	}
	if policy.RequireSkills {
		return hasSkills
	}
	if policy.RequireExperience {
		return hasExperience
	}
	return hasSkills || hasExperience
}

// HasBasicInfo reports whether any of the summary-visible fields hold data.
func (c *CoverLetter) HasBasicInfo() bool {
	return !isEmptyText(c.Position) || len(c.Skills) > 0 || !isEmptyText(c.Experience) || len(c.Achievements) > 0
}

// BasicInfoSummary renders the core profile as bullet lines for the
// intent-confirmation and collecting-info replies.
func (c *CoverLetter) BasicInfoSummary() string {
	var lines []string
	if !isEmptyText(c.Position) {
		lines = append(lines, "• 직무 목표: "+*c.Position)
	}
	if len(c.Skills) > 0 {
		lines = append(lines, "• 기술 스택: "+strings.Join(c.Skills, ", "))
	}
	if !isEmptyText(c.Experience) {
		lines = append(lines, "• 최근 경력: "+*c.Experience)
	}
	if len(c.Achievements) > 0 {
		lines = append(lines, "• 주요 성과: "+strings.Join(c.Achievements, ", "))
	}
	if len(lines) == 0 {
		return "아직 입력된 정보가 없습니다."
	}
	return strings.Join(lines, "\n")
}

// CoverLetterFromProjects seeds a profile from prior project records. The
// fold runs exactly once, when the session starts; later turns only merge.
//
// Position is the first role found across projects, falling back to the
// first category. Skills union every project's tools. Experience joins
// per-project "title: description" fragments with " | ", preceded by any
// roles beyond the first.
func CoverLetterFromProjects(projects []Project) *CoverLetter {
	letter := &CoverLetter{Projects: append([]Project(nil), projects...)}

	var roles []string
	var fragments []string

	for _, p := range projects {
		letter.Skills = merge.Union(letter.Skills, p.Tools)
		letter.Achievements = merge.Union(letter.Achievements, p.Achievements)
		for _, r := range p.Roles {
			if r != "" {
				roles = append(roles, r)
			}
		}

		switch {
		case !isEmptyText(p.Title) && !isEmptyText(p.Description):
			fragments = append(fragments, *p.Title+": "+*p.Description)
		case !isEmptyText(p.Title):
			fragments = append(fragments, *p.Title)
		case !isEmptyText(p.Description):
			fragments = append(fragments, *p.Description)
		case !isEmptyText(p.Summary):
			fragments = append(fragments, *p.Summary)
		}
	}

	if len(roles) > 0 {
		letter.Position = merge.Text(nil, &roles[0])
	} else {
		for _, p := range projects {
			if !isEmptyText(p.Category) {
				letter.Position = merge.Text(nil, p.Category)
				break
			}
		}
	}

	var expParts []string
	if len(roles) > 1 {
		expParts = append(expParts, strings.Join(roles[1:], ", "))
	}
	expParts = append(expParts, fragments...)
	if len(expParts) > 0 {
		exp := strings.Join(expParts, " | ")
		letter.Experience = &exp
	}

	return letter
}

// Clone returns a deep copy of the profile.
func (c *CoverLetter) Clone() *CoverLetter {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Skills = append([]string(nil), c.Skills...)
	cp.Achievements = append([]string(nil), c.Achievements...)
	cp.Strengths = append([]string(nil), c.Strengths...)
	cp.Projects = append([]Project(nil), c.Projects...)
	return &cp
}
