package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/paper-code/go-papercode/pkg/catalog"
	"github.com/paper-code/go-papercode/pkg/model"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	multiIdx  [][]int
	confirm   []bool
	info      []string

	inputPos   int
	selectPos  int
	multiPos   int
	confirmPos int

	selectOptions [][]string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.selectOptions = append(s.selectOptions, cfg.Options)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multi-select scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func testCatalog() *catalog.Catalog {
	return catalog.MustNew(catalog.Definition{
		ProjectTypes: []catalog.ProjectTypeDef{
			{Name: "Frontend", TechStacks: []string{"React", "Vue"}},
			{Name: "Backend", TechStacks: []string{"Go"}},
		},
		TechStacks: []catalog.TechStackDef{
			{Name: "React", Libraries: []string{"Redux", "Axios", "TailwindCSS"}},
			{Name: "Vue", Libraries: []string{"Pinia"}},
			{Name: "Go", Libraries: []string{}},
		},
	})
}

func TestWizardCollectsConfig(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"  Test Project ", "A test project", "dashboard"},
		selectIdx: []int{0, 0},
		multiIdx:  [][]int{{1, 2}},
		confirm:   []bool{true, false},
	}

	cfg, err := NewWizard(driver, testCatalog(), true).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := model.ProjectConfig{
		ProjectName: "Test Project",
		Description: "A test project",
		ProjectType: "Frontend",
		TechStack:   "React",
		Libraries:   []string{"Axios", "TailwindCSS"},
		AIGenerate:  true,
		AIHint:      "dashboard",
		UpdateMode:  false,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"Frontend", "Backend"}, {"React", "Vue"}}, driver.selectOptions); diff != "" {
		t.Fatalf("offered options (-want +got):\n%s", diff)
	}
}

func TestWizardSkipsAIWhenUnavailable(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Svc", ""},
		selectIdx: []int{1, 0},
		confirm:   []bool{true},
	}

	cfg, err := NewWizard(driver, testCatalog(), false).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if cfg.AIGenerate {
		t.Fatalf("AI must stay off when unavailable")
	}
	if cfg.TechStack != "Go" || len(cfg.Libraries) != 0 {
		t.Fatalf("unexpected stack selection: %+v", cfg)
	}
	if !cfg.UpdateMode {
		t.Fatalf("update mode answer lost")
	}
	if len(driver.info) != 1 {
		t.Fatalf("expected one info line, got %v", driver.info)
	}
}

func TestWizardRequiresName(t *testing.T) {
	driver := &stubDriver{inputs: []string{"   "}}
	if _, err := NewWizard(driver, testCatalog(), false).Run(context.Background()); err == nil {
		t.Fatalf("expected validation error for blank name")
	}
}

func TestWizardPropagatesAbort(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Demo", ""}}
	_, err := NewWizard(driver, testCatalog(), false).Run(context.Background())
	if err == nil {
		t.Fatalf("expected error when select is not scripted")
	}
}

func TestIndexHelpers(t *testing.T) {
	opts := []string{"a", "b", "c"}
	if got := indexOf(opts, "c"); got != 2 {
		t.Fatalf("indexOf = %d", got)
	}
	if got := indexOf(opts, "z"); got != -1 {
		t.Fatalf("indexOf missing = %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(opts, []string{"c", "a"})); diff != "" {
		t.Fatalf("indicesOf (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, defaultsFromIndices(opts, []int{1, 9})); diff != "" {
		t.Fatalf("defaultsFromIndices (-want +got):\n%s", diff)
	}
}
