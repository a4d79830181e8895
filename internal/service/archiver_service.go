// FILE: internal/service/archiver_service.go
package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"nexter-ai-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IArchiverService consumes cover letter completion events and writes the
// artifact metadata next to the rendered file, keeping the metadata
// side-write off the request path.
type IArchiverService interface {
	Consume(ctx context.Context) error
}

type archiverService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	outputDir string
	log       logger.ILogger
}

func NewArchiverService(
	pubSub *gochannel.GoChannel,
	topicName string,
	outputDir string,
	log logger.ILogger,
) IArchiverService {
	return &archiverService{
		pubSub:    pubSub,
		topicName: topicName,
		outputDir: outputDir,
		log:       log,
	}
}

func (as *archiverService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(msg)
		}
	}()

	return nil
}

func (as *archiverService) processMessage(msg *message.Message) {
	var event CoverLetterCompletedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		as.log.Error("archiver_service", "failed to unmarshal completion event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if event.Artifact == nil {
		as.log.Warn("archiver_service", "completion event without artifact", map[string]interface{}{"session_id": event.SessionId})
		msg.Ack()
		return
	}

	payload, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		as.log.Error("archiver_service", "failed to marshal artifact metadata", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	path := filepath.Join(as.outputDir, event.Artifact.Id.String()+"_metadata.json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		as.log.Error("archiver_service", "failed to write artifact metadata", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	as.log.Info("archiver_service", "artifact metadata archived", map[string]interface{}{
		"session_id": event.SessionId,
		"filename":   event.Artifact.Filename,
	})
	msg.Ack()
}
