package testsupport

import (
	"context"
	"errors"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// FakeChatModel is a scripted model.BaseChatModel. It records every request
// and answers with Reply or Err.
type FakeChatModel struct {
	Reply string
	Err   error

	mu    sync.Mutex
	calls [][]*schema.Message
}

var _ model.BaseChatModel = (*FakeChatModel)(nil)

// Generate records input and returns the scripted reply.
func (f *FakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.mu.Lock()
	f.calls = append(f.calls, input)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	return schema.AssistantMessage(f.Reply, nil), nil
}

// Stream is not used by the generator.
func (f *FakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("testsupport: streaming not supported")
}

// Calls returns the recorded requests.
func (f *FakeChatModel) Calls() [][]*schema.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]*schema.Message(nil), f.calls...)
}
