package tasks

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	wla "github.com/ma-hartma/watermill-logrus-adapter"
	"github.com/voi-oss/watermill-opentelemetry/pkg/opentelemetry"

	"github.com/cropwise/cropwise/pkg/models"
)

const TaskCountThrottle = 50 // messages per second
const MaxQueueRetries = 3
const PoisonQueueTopic = "poison_queue"

var _ models.TaskRouter = &TaskRouter{}

// TaskRouter is a wrapper around watermill's Router that adds some
// functionality for managing tasks and handlers.
// All handlers consume from the same in-process GoChannel the TaskPublisher
// writes to.
type TaskRouter struct {
	*message.Router
	pubSub *gochannel.GoChannel
	logger watermill.LoggerAdapter
}

// NewPubSub returns the in-process pub/sub shared by a TaskRouter and its
// TaskPublisher.
func NewPubSub() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		wla.NewLogrusLogger(log),
	)
}

func NewTaskRouter(pubSub *gochannel.GoChannel) (*TaskRouter, error) {
	var wlog = wla.NewLogrusLogger(log)

	router, err := message.NewRouter(message.RouterConfig{}, wlog)
	if err != nil {
		return nil, err
	}

	// Messages that still fail after MaxQueueRetries are acked and moved to
	// the poison queue. GoChannel would otherwise redeliver them forever.
	poisonQueue, err := middleware.PoisonQueue(pubSub, PoisonQueueTopic)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		// CorrelationID will copy the correlation id from the incoming message's metadata to the produced messages
		middleware.CorrelationID,

		// Trace starts a span per handled message, continuing the publisher's span.
		opentelemetry.Trace(),

		poisonQueue,

		// Throttle limits the number of messages processed per second.
		middleware.NewThrottle(TaskCountThrottle, time.Second).Middleware,

		// The handler function is retried if it returns an error.
		middleware.Retry{
			MaxRetries:      MaxQueueRetries,
			InitialInterval: 100 * time.Millisecond,
			Multiplier:      2,
			Logger:          wlog,
		}.Middleware,

		// Recoverer turns handler panics into errors so they are retried.
		middleware.Recoverer,
	)

	return &TaskRouter{
		Router: router,
		pubSub: pubSub,
		logger: wlog,
	}, nil
}

// AddTask adds a task handler to the router.
func (tr *TaskRouter) AddTask(_ context.Context, name string, topic models.TaskTopic, task models.Task) {
	tr.AddConsumerHandler(
		name,
		string(topic),
		tr.pubSub,
		TaskHandler(task),
	)
}

func (tr *TaskRouter) Close() (err error) {
	routerErr := tr.Router.Close()
	defer func() {
		pubSubErr := tr.pubSub.Close()
		if err == nil {
			err = pubSubErr
		}
	}()
	if routerErr != nil {
		err = routerErr
	}
	return err
}

// TaskHandler returns a message handler function for the given task.
// Handlers are NoPublishHandlerFuncs i.e. do not publish messages.
func TaskHandler(task models.Task) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		err := task.Execute(msg.Context(), msg)
		if err != nil {
			task.HandleError(err)
			return err
		}
		return nil
	}
}

// RunTaskRouter wires the task router and publisher into appState and
// returns once the router is consuming.
func RunTaskRouter(ctx context.Context, appState *models.AppState) error {
	pubSub := NewPubSub()

	router, err := NewTaskRouter(pubSub)
	if err != nil {
		return err
	}
	Initialize(ctx, appState, router)

	appState.TaskRouter = router
	appState.TaskPublisher = NewTaskPublisher(opentelemetry.NewPublisherDecorator(pubSub))

	go func() {
		log.Info("running task router")
		if err := router.Run(ctx); err != nil {
			log.Errorf("task router stopped: %v", err)
		}
	}()

	select {
	case <-router.Running():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
