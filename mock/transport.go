package mock

import (
	"context"

	"gitlab.com/robotk/robotk"
)

// Transport is a hand-rolled robotk.Transport double
type Transport struct {
	DoFn     func(ctx context.Context, req *robotk.Request) (*robotk.Response, error)
	DoCalled bool
	DoCount  int
	Requests []*robotk.Request
}

// Do records the request and delegates to DoFn
func (t *Transport) Do(ctx context.Context, req *robotk.Request) (*robotk.Response, error) {
	t.DoCalled = true
	t.DoCount++
	t.Requests = append(t.Requests, req)
	return t.DoFn(ctx, req)
}
