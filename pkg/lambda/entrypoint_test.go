package lambda

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-api/pkg/server"
)

type fakeSource struct {
	container *server.Container
	err       error
	calls     int
}

func (f *fakeSource) GetContainer(ctx context.Context) (*server.Container, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.container, nil
}

func TestEntrypoint(t *testing.T) {
	built := 0
	factory := func(name string, container *server.Container) (*Adapter, error) {
		built++
		return NewAdapter(name, quietLogger(), WithRoutes(Route{Method: AnyMethod, Handler: func(ctx context.Context, req *Request) (*Result, error) {
			return OK(name), nil
		}})), nil
	}

	t.Run("BuildsAdapterOnce", func(t *testing.T) {
		built = 0
		source := &fakeSource{container: &server.Container{}}
		handler := EntrypointWithSource("sales", factory, source)

		for i := 0; i < 3; i++ {
			resp, err := handler(context.Background(), BuildEvent(EventOptions{Path: "/sales"}))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		}
		assert.Equal(t, 1, built)
		assert.Equal(t, 3, source.calls)
	})

	t.Run("InitFailureIsEnvelope", func(t *testing.T) {
		source := &fakeSource{err: errors.New("no credentials")}
		handler := EntrypointWithSource("ai", factory, source)

		resp, err := handler(context.Background(), BuildEvent(EventOptions{Path: "/ai"}))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Contains(t, resp.Body, "failed to initialize ai handler: no credentials")
		assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

		source.err = nil
		source.container = &server.Container{}
		resp, err = handler(context.Background(), BuildEvent(EventOptions{Path: "/ai"}))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestConnectionManagerCleanup(t *testing.T) {
	container := &server.Container{}
	cm := &ConnectionManager{container: container}

	got, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	assert.Same(t, container, got)

	shutdown("sales", cm)
	assert.Nil(t, cm.container)
	assert.NoError(t, cm.Cleanup(), "cleanup without a container is a no-op")
}
