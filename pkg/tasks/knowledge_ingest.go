package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/cropwise/cropwise/pkg/models"
)

var _ models.Task = &KnowledgeIngestTask{}

// KnowledgeIngestTask adds queued documents to the knowledge base. It is
// the only writer for documents that arrive through the queue.
type KnowledgeIngestTask struct {
	BaseTask
	knowledgeBase models.KnowledgeBase
}

func NewKnowledgeIngestTask(knowledgeBase models.KnowledgeBase) *KnowledgeIngestTask {
	return &KnowledgeIngestTask{knowledgeBase: knowledgeBase}
}

func (t *KnowledgeIngestTask) Execute(ctx context.Context, msg *message.Message) error {
	var payload models.KnowledgeIngestTask
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal knowledge ingest payload: %w", err)
	}

	if strings.TrimSpace(payload.Content) == "" {
		log.Warnf("skipping empty knowledge ingest message %s", msg.UUID)
		return nil
	}

	doc, err := t.knowledgeBase.AddDocument(ctx, payload.Content, payload.Metadata)
	if err != nil {
		return fmt.Errorf("knowledge ingest failed: %w", err)
	}

	log.Infof("ingested document %s (source %q)", doc.ID, msg.Metadata.Get("source"))
	return nil
}

func (t *KnowledgeIngestTask) HandleError(err error) {
	log.Errorf("KnowledgeIngestTask error: %s", err)
}
