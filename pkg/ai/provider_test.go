package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/google/go-cmp/cmp"

	"github.com/paper-code/go-papercode/pkg/ai"
	apperrors "github.com/paper-code/go-papercode/pkg/errors"
	"github.com/paper-code/go-papercode/pkg/logger"
	"github.com/paper-code/go-papercode/pkg/testsupport"
)

func canonicalInput() ai.DescribeInput {
	return ai.DescribeInput{
		ProjectName: "Test Project",
		ProjectType: "Frontend",
		TechStack:   "React",
		Libraries:   []string{"TailwindCSS", "Axios", "Axios"},
	}
}

func TestAvailable(t *testing.T) {
	if ai.New(ai.Config{}).Available() {
		t.Fatalf("provider without key should be unavailable")
	}
	if ai.New(ai.Config{APIKey: "   "}).Available() {
		t.Fatalf("blank key should not count")
	}
	if !ai.New(ai.Config{APIKey: "sk-test"}).Available() {
		t.Fatalf("provider with key should be available")
	}
	if !ai.New(ai.Config{}, ai.WithChatModel(&testsupport.FakeChatModel{})).Available() {
		t.Fatalf("injected model should make provider available")
	}
}

func TestDescribeUnavailable(t *testing.T) {
	_, err := ai.New(ai.Config{}).Describe(context.Background(), canonicalInput())
	if !errors.Is(err, apperrors.ErrAIUnavailable) {
		t.Fatalf("expected AIUnavailable, got %v", err)
	}
}

func TestDescribeReturnsTrimmedText(t *testing.T) {
	fake := &testsupport.FakeChatModel{Reply: "\n  A React app that does things.  \n"}
	p := ai.New(ai.Config{Model: "test"}, ai.WithChatModel(fake), ai.WithLogger(logger.Discard()))

	got, err := p.Describe(context.Background(), canonicalInput())
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if got != "A React app that does things." {
		t.Fatalf("got %q", got)
	}
	if calls := fake.Calls(); len(calls) != 1 {
		t.Fatalf("expected exactly one generation call, got %d", len(calls))
	}
}

func TestDescribeUpstreamFailure(t *testing.T) {
	fake := &testsupport.FakeChatModel{Err: errors.New("401 invalid api key")}
	p := ai.New(ai.Config{}, ai.WithChatModel(fake), ai.WithLogger(logger.Discard()))

	_, err := p.Describe(context.Background(), canonicalInput())
	if !errors.Is(err, apperrors.ErrAIRequestFailed) {
		t.Fatalf("expected AIRequestFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "401 invalid api key") {
		t.Fatalf("upstream text lost: %v", err)
	}
	if len(fake.Calls()) != 1 {
		t.Fatalf("failures must not be retried")
	}
}

func TestDescribeEmptyCompletion(t *testing.T) {
	fake := &testsupport.FakeChatModel{Reply: "   "}
	p := ai.New(ai.Config{}, ai.WithChatModel(fake), ai.WithLogger(logger.Discard()))

	if _, err := p.Describe(context.Background(), canonicalInput()); !errors.Is(err, apperrors.ErrAIRequestFailed) {
		t.Fatalf("expected AIRequestFailed, got %v", err)
	}
}

func TestBuildMessagesDeterministic(t *testing.T) {
	in := canonicalInput()
	first, err := ai.BuildMessages(context.Background(), in)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	in.Libraries = []string{"Axios", "TailwindCSS"}
	second, err := ai.BuildMessages(context.Background(), in)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if diff := cmp.Diff(contents(first), contents(second)); diff != "" {
		t.Fatalf("library order changed the prompt (-first +second):\n%s", diff)
	}
	if len(first) != 2 || first[0].Role != schema.System || first[1].Role != schema.User {
		t.Fatalf("unexpected message roles: %v", first)
	}

	user := first[1].Content
	for _, needle := range []string{"Test Project", "Frontend", "React", "Libraries: Axios, TailwindCSS"} {
		if !strings.Contains(user, needle) {
			t.Errorf("user prompt missing %q:\n%s", needle, user)
		}
	}
	if strings.Contains(user, "Additional guidance") {
		t.Errorf("hint line must be omitted when hint is empty:\n%s", user)
	}
}

func TestBuildMessagesHint(t *testing.T) {
	in := canonicalInput()
	in.Hint = "  internal dashboard  "
	msgs, err := ai.BuildMessages(context.Background(), in)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasSuffix(msgs[1].Content, "Additional guidance: internal dashboard") {
		t.Fatalf("hint not appended last:\n%s", msgs[1].Content)
	}
}

func TestFormatLibraries(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, "none"},
		{[]string{" ", ""}, "none"},
		{[]string{"Redux", "Axios", "Redux"}, "Axios, Redux"},
	}
	for _, tc := range cases {
		if got := ai.FormatLibraries(tc.in); got != tc.want {
			t.Errorf("FormatLibraries(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func contents(msgs []*schema.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Content
	}
	return out
}
