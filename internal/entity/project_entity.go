package entity

import (
	"strings"

	"nexter-ai-be/pkg/merge"
)

// Project is the metadata record accumulated for a single project. Absent
// scalars are nil and absent collections are empty; no sentinel strings.
type Project struct {
	Title        *string  `json:"title"`
	Category     *string  `json:"category"`
	Tags         []string `json:"tags"`
	Summary      *string  `json:"summary"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
	Roles        []string `json:"roles"`
	Achievements []string `json:"achievements"`
	Tools        []string `json:"tools"`
	Description  *string  `json:"description"`
}

// ProjectPatch is an oracle-proposed partial update. Nil/empty fields mean
// "no change"; the patch can never clear data.
type ProjectPatch struct {
	Title        *string  `json:"title"`
	Category     *string  `json:"category"`
	Tags         []string `json:"tags"`
	Roles        []string `json:"roles"`
	Achievements []string `json:"achievements"`
	Tools        []string `json:"tools"`
	Description  *string  `json:"description"`
}

// Field identifiers, in the priority order the refine flow asks about them.
const (
	ProjectFieldTitle        = "title"
	ProjectFieldCategory     = "category"
	ProjectFieldTags         = "tags"
	ProjectFieldRoles        = "roles"
	ProjectFieldAchievements = "achievements"
	ProjectFieldTools        = "tools"
	ProjectFieldDescription  = "description"
)

var ProjectFieldPriority = []string{
	ProjectFieldTitle,
	ProjectFieldCategory,
	ProjectFieldTags,
	ProjectFieldRoles,
	ProjectFieldAchievements,
	ProjectFieldTools,
	ProjectFieldDescription,
}

// Apply folds a patch into the record. Scalars overwrite only when the patch
// carries a non-empty value; collections union. Idempotent and monotonic.
func (p *Project) Apply(patch *ProjectPatch) {
	if patch == nil {
		return
	}
	p.Title = merge.Text(p.Title, patch.Title)
	p.Category = merge.Text(p.Category, patch.Category)
	p.Tags = merge.Union(p.Tags, patch.Tags)
	p.Roles = merge.Union(p.Roles, patch.Roles)
	p.Achievements = merge.Union(p.Achievements, patch.Achievements)
	p.Tools = merge.Union(p.Tools, patch.Tools)
	p.Description = merge.Text(p.Description, patch.Description)
}

// MissingFields lists empty fields in ask-priority order.
func (p *Project) MissingFields() []string {
	var missing []string
	if isEmptyText(p.Title) {
		missing = append(missing, ProjectFieldTitle)
	}
	if isEmptyText(p.Category) {
		missing = append(missing, ProjectFieldCategory)
	}
	if len(p.Tags) == 0 {
		missing = append(missing, ProjectFieldTags)
	}
	if len(p.Roles) == 0 {
		missing = append(missing, ProjectFieldRoles)
	}
	if len(p.Achievements) == 0 {
		missing = append(missing, ProjectFieldAchievements)
	}
	if len(p.Tools) == 0 {
		missing = append(missing, ProjectFieldTools)
	}
	if isEmptyText(p.Description) {
		missing = append(missing, ProjectFieldDescription)
	}
	return missing
}

// HasAny reports whether any refine-relevant field is populated.
func (p *Project) HasAny() bool {
	return len(p.MissingFields()) < len(ProjectFieldPriority)
}

// SummaryText renders the record for preview / final-confirmation messages.
func (p *Project) SummaryText() string {
	var parts []string
	if !isEmptyText(p.Title) {
		parts = append(parts, "제목: "+*p.Title)
	}
	if !isEmptyText(p.Category) {
		parts = append(parts, "카테고리: "+*p.Category)
	}
	if len(p.Tags) > 0 {
		parts = append(parts, "태그: "+strings.Join(p.Tags, ", "))
	}
	if len(p.Roles) > 0 {
		parts = append(parts, "역할: "+strings.Join(p.Roles, ", "))
	}
	if len(p.Achievements) > 0 {
		parts = append(parts, "주요 성과: "+strings.Join(p.Achievements, ", "))
	}
	if len(p.Tools) > 0 {
		parts = append(parts, "사용 기술/도구: "+strings.Join(p.Tools, ", "))
	}
	if !isEmptyText(p.Description) {
		parts = append(parts, "상세 설명: "+*p.Description)
	}
	if len(parts) == 0 {
		return "아직 입력된 정보가 없습니다."
	}
	return strings.Join(parts, "\n")
}

// Clone returns a deep copy so a turn can merge without mutating stored state
// until the turn commits.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	cp.Roles = append([]string(nil), p.Roles...)
	cp.Achievements = append([]string(nil), p.Achievements...)
	cp.Tools = append([]string(nil), p.Tools...)
	return &cp
}

func isEmptyText(s *string) bool {
	return s == nil || *s == ""
}
