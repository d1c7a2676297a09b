package github

import (
	"context"
)

// StubClient is an in-memory Client for tests. It counts calls so tests
// can assert that precondition failures never reach the network layer.
type StubClient struct {
	Files map[string]File // keyed by path

	GetCalls int
	PutCalls int
	PutErr   error
}

func NewStubClient() *StubClient {
	return &StubClient{Files: map[string]File{}}
}

func (c *StubClient) GetFile(ctx context.Context, loc Location) (File, error) {
	c.GetCalls++
	file, ok := c.Files[loc.Path]
	if !ok {
		return File{}, ErrFileNotFound
	}
	return file, nil
}

func (c *StubClient) GetFileSHA(ctx context.Context, loc Location) (string, error) {
	file, err := c.GetFile(ctx, loc)
	if err != nil {
		return "", nil
	}
	return file.SHA, nil
}

func (c *StubClient) PutFile(ctx context.Context, loc Location, content []byte, sha string, message string) error {
	c.PutCalls++
	if c.PutErr != nil {
		return c.PutErr
	}
	c.Files[loc.Path] = File{Content: content, SHA: sha + "+1"}
	return nil
}

func (c *StubClient) Cleanup() {
	c.Files = map[string]File{}
	c.GetCalls = 0
	c.PutCalls = 0
}
