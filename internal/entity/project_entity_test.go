package entity

import (
	"reflect"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestProjectApplyNeverDeletes(t *testing.T) {
	project := &Project{
		Title: strPtr("쇼핑몰 리뉴얼"),
		Tags:  []string{"웹"},
	}

	project.Apply(&ProjectPatch{
		Title: strPtr(""),
		Tags:  []string{"웹", "커머스"},
		Tools: []string{"React"},
	})

	if *project.Title != "쇼핑몰 리뉴얼" {
		t.Errorf("empty patch value must not clear title, got %q", *project.Title)
	}
	if !reflect.DeepEqual(project.Tags, []string{"웹", "커머스"}) {
		t.Errorf("Tags = %v", project.Tags)
	}
	if !reflect.DeepEqual(project.Tools, []string{"React"}) {
		t.Errorf("Tools = %v", project.Tools)
	}
}

func TestProjectApplyIdempotent(t *testing.T) {
	patch := &ProjectPatch{
		Category: strPtr("웹 개발"),
		Roles:    []string{"백엔드 개발"},
	}

	project := &Project{}
	project.Apply(patch)
	once := project.Clone()
	project.Apply(patch)

	if !reflect.DeepEqual(project, once) {
		t.Errorf("second apply of same patch changed record: %+v vs %+v", project, once)
	}
}

func TestProjectMissingFieldsOrder(t *testing.T) {
	project := &Project{
		Title: strPtr("사이드 프로젝트"),
		Roles: []string{"기획"},
	}

	got := project.MissingFields()
	want := []string{ProjectFieldCategory, ProjectFieldTags, ProjectFieldAchievements, ProjectFieldTools, ProjectFieldDescription}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingFields() = %v, want %v", got, want)
	}
}

func TestProjectHasAny(t *testing.T) {
	empty := &Project{}
	if empty.HasAny() {
		t.Error("empty record should report HasAny() = false")
	}

	seeded := &Project{Tools: []string{"Go"}}
	if !seeded.HasAny() {
		t.Error("record with tools should report HasAny() = true")
	}
}

func TestProjectSummaryText(t *testing.T) {
	empty := &Project{}
	if got := empty.SummaryText(); got != "아직 입력된 정보가 없습니다." {
		t.Errorf("empty summary = %q", got)
	}

	project := &Project{
		Title: strPtr("결제 시스템"),
		Tools: []string{"Go", "Redis"},
	}
	got := project.SummaryText()
	if !strings.Contains(got, "제목: 결제 시스템") {
		t.Errorf("summary missing title line: %q", got)
	}
	if !strings.Contains(got, "사용 기술/도구: Go, Redis") {
		t.Errorf("summary missing tools line: %q", got)
	}
	if strings.Contains(got, "카테고리") {
		t.Errorf("summary should omit empty fields: %q", got)
	}
}

func TestProjectCloneIsolation(t *testing.T) {
	project := &Project{Tags: []string{"웹"}}
	clone := project.Clone()
	clone.Tags = append(clone.Tags, "모바일")
	clone.Title = strPtr("변경")

	if len(project.Tags) != 1 {
		t.Errorf("mutating clone leaked into original tags: %v", project.Tags)
	}
	if project.Title != nil {
		t.Error("mutating clone leaked into original title")
	}
}
