package lambda

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"fitness-api/pkg/server"
)

// AdapterFactory builds the named adapter from a container
type AdapterFactory func(name string, container *server.Container) (*Adapter, error)

// ContainerSource supplies the process container
type ContainerSource interface {
	GetContainer(ctx context.Context) (*server.Container, error)
}

// Start runs the named handler under the aws-lambda-go runtime and releases
// the cached container on SIGTERM
func Start(name string, factory AdapterFactory) {
	awslambda.StartWithOptions(Entrypoint(name, factory),
		awslambda.WithEnableSIGTERM(func() { shutdown(name, GetConnectionManager()) }),
	)
}

func shutdown(name string, cm *ConnectionManager) {
	if err := cm.Cleanup(); err != nil {
		logrus.WithError(err).Error(name + "_lambda_shutdown_failed")
		return
	}
	logrus.Info(name + "_lambda_shutdown")
}

// Entrypoint returns the function passed to the aws-lambda-go runtime. The
// container comes from the global connection manager and the adapter is
// built once per container. Initialization failures are reported as a 500
// envelope and retried on the next invocation.
func Entrypoint(name string, factory AdapterFactory) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return EntrypointWithSource(name, factory, GetConnectionManager())
}

// EntrypointWithSource is Entrypoint with an explicit container source
func EntrypointWithSource(name string, factory AdapterFactory, source ContainerSource) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var (
		mu        sync.Mutex
		adapter   *Adapter
		container *server.Container
	)

	resolve := func(ctx context.Context) (*Adapter, error) {
		current, err := source.GetContainer(ctx)
		if err != nil {
			return nil, err
		}

		mu.Lock()
		defer mu.Unlock()
		if adapter != nil && container == current {
			return adapter, nil
		}
		built, err := factory(name, current)
		if err != nil {
			return nil, err
		}
		adapter, container = built, current
		return adapter, nil
	}

	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		a, err := resolve(ctx)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(),
				"path":  event.Path,
			}).Error(name + "_lambda_init_failed")
			return Failure(http.StatusInternalServerError, fmt.Sprintf("failed to initialize %s handler: %v", name, err)).ToProxyResponse(), nil
		}
		return a.Handle(ctx, event)
	}
}
