package entity

import (
	"reflect"
	"strings"
	"testing"
)

func TestCoverLetterFromProjects(t *testing.T) {
	projects := []Project{
		{
			Title:       strPtr("쇼핑몰 리뉴얼"),
			Roles:       []string{"백엔드 개발", "DB 설계"},
			Tools:       []string{"Go", "PostgreSQL"},
			Description: strPtr("주문 처리 파이프라인을 재설계"),
		},
		{
			Title:        strPtr("사내 챗봇"),
			Roles:        []string{"기획"},
			Tools:        []string{"Go", "Redis"},
			Achievements: []string{"응답 시간 40% 단축"},
		},
	}

	letter := CoverLetterFromProjects(projects)

	if letter.Position == nil || *letter.Position != "백엔드 개발" {
		t.Fatalf("Position = %v, want first role", letter.Position)
	}
	if !reflect.DeepEqual(letter.Skills, []string{"Go", "PostgreSQL", "Redis"}) {
		t.Errorf("Skills = %v", letter.Skills)
	}
	if !reflect.DeepEqual(letter.Achievements, []string{"응답 시간 40% 단축"}) {
		t.Errorf("Achievements = %v", letter.Achievements)
	}

	if letter.Experience == nil {
		t.Fatal("Experience should be derived")
	}
	wantExp := "DB 설계, 기획 | 쇼핑몰 리뉴얼: 주문 처리 파이프라인을 재설계 | 사내 챗봇"
	if *letter.Experience != wantExp {
		t.Errorf("Experience = %q, want %q", *letter.Experience, wantExp)
	}

	if len(letter.Projects) != 2 {
		t.Errorf("source projects should be retained, got %d", len(letter.Projects))
	}
}

func TestCoverLetterFromProjectsCategoryFallback(t *testing.T) {
	projects := []Project{
		{Category: strPtr("웹 개발"), Summary: strPtr("포트폴리오 사이트")},
	}

	letter := CoverLetterFromProjects(projects)

	if letter.Position == nil || *letter.Position != "웹 개발" {
		t.Errorf("Position = %v, want category fallback", letter.Position)
	}
	if letter.Experience == nil || *letter.Experience != "포트폴리오 사이트" {
		t.Errorf("Experience = %v, want summary fallback", letter.Experience)
	}
}

func TestCoverLetterFromProjectsEmpty(t *testing.T) {
	letter := CoverLetterFromProjects(nil)

	if letter.Position != nil || letter.Experience != nil || len(letter.Skills) != 0 {
		t.Errorf("empty fold should produce an empty profile: %+v", letter)
	}
	if letter.HasBasicInfo() {
		t.Error("empty profile should report HasBasicInfo() = false")
	}
}

func TestCoverLetterReady(t *testing.T) {
	tests := []struct {
		name   string
		letter CoverLetter
		policy ReadinessPolicy
		want   bool
	}{
		{
			name:   "position plus skills meets default bar",
			letter: CoverLetter{Position: strPtr("백엔드 개발"), Skills: []string{"Go"}},
			want:   true,
		},
		{
			name:   "position plus experience meets default bar",
			letter: CoverLetter{Position: strPtr("백엔드 개발"), Experience: strPtr("3년")},
			want:   true,
		},
		{
			name:   "missing position fails",
			letter: CoverLetter{Skills: []string{"Go"}, Experience: strPtr("3년")},
			want:   false,
		},
		{
			name:   "needs more info blocks readiness",
			letter: CoverLetter{Position: strPtr("백엔드 개발"), Skills: []string{"Go"}, NeedsMoreInfo: true},
			want:   false,
		},
		{
			name:   "strict policy requires both",
			letter: CoverLetter{Position: strPtr("백엔드 개발"), Skills: []string{"Go"}},
			policy: ReadinessPolicy{RequireSkills: true, RequireExperience: true},
			want:   false,
		},
		{
			name:   "strict policy satisfied",
			letter: CoverLetter{Position: strPtr("백엔드 개발"), Skills: []string{"Go"}, Experience: strPtr("3년")},
			policy: ReadinessPolicy{RequireSkills: true, RequireExperience: true},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.letter.Ready(tt.policy); got != tt.want {
				t.Errorf("Ready() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoverLetterBasicInfoSummary(t *testing.T) {
	letter := CoverLetter{
		Position: strPtr("백엔드 개발"),
		Skills:   []string{"Go", "Redis"},
	}

	got := letter.BasicInfoSummary()
	if !strings.Contains(got, "• 직무 목표: 백엔드 개발") {
		t.Errorf("summary missing position bullet: %q", got)
	}
	if !strings.Contains(got, "• 기술 스택: Go, Redis") {
		t.Errorf("summary missing skills bullet: %q", got)
	}
	if strings.Contains(got, "최근 경력") {
		t.Errorf("summary should omit empty experience: %q", got)
	}
}

func TestCoverLetterApplyMerges(t *testing.T) {
	letter := &CoverLetter{Position: strPtr("백엔드 개발"), Skills: []string{"Go"}}

	letter.Apply(&CoverLetterPatch{
		Skills:     []string{"Go", "Kubernetes"},
		Motivation: strPtr("대규모 트래픽 처리 경험을 쌓고 싶어서"),
	})

	if !reflect.DeepEqual(letter.Skills, []string{"Go", "Kubernetes"}) {
		t.Errorf("Skills = %v", letter.Skills)
	}
	if letter.Motivation == nil {
		t.Error("Motivation should be set from patch")
	}
	if *letter.Position != "백엔드 개발" {
		t.Error("Position must survive a patch without it")
	}
}
