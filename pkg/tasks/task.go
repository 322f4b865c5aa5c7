// Package tasks runs background work off an in-process message queue.
package tasks

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/models"
)

var log = internal.GetLogger()

type BaseTask struct{}

func (b *BaseTask) Execute(
	ctx context.Context, // nolint: revive
	msg *message.Message, // nolint: revive
) error {
	return nil
}

func (b *BaseTask) HandleError(err error) {
	log.Errorf("Task HandleError error: %s", err)
}

func Initialize(ctx context.Context, appState *models.AppState, router models.TaskRouter) {
	log.Info("Initializing tasks")

	addTask := func(ctx context.Context, name string, topic models.TaskTopic, enabled bool, newTask func() models.Task) {
		if enabled {
			task := newTask()
			router.AddTask(ctx, name, topic, task)
			log.Infof("%s task added to task router", name)
		}
	}

	addTask(
		ctx,
		string(models.KnowledgeIngestTopic),
		models.KnowledgeIngestTopic,
		appState.KnowledgeBase != nil,
		func() models.Task { return NewKnowledgeIngestTask(appState.KnowledgeBase) },
	)
}
