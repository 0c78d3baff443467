//go:build gcloud

package notifier

import (
	"context"
	"fmt"
	"log/slog"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

// CloudTasksSink hands the webhook delivery to a Cloud Tasks queue, which
// performs the POST to the webhook URL.
type CloudTasksSink struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	webhookURL string
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	WebhookURL string
}

var _ domain.NotificationSink = (*CloudTasksSink)(nil)

func NewCloudTasksSink(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksSink, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	return &CloudTasksSink{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		webhookURL: cfg.WebhookURL,
	}, nil
}

func (s *CloudTasksSink) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", s.projectID, s.locationID, s.queueID)
}

func (s *CloudTasksSink) Send(ctx context.Context, message string) error {
	payload, err := marshalPayload(message)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	task := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        s.webhookURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
		ScheduleTime: timestamppb.Now(),
	}

	// Named tasks are deduplicated by the queue, so a repeated cycle
	// cannot post the same message twice.
	if key := DeliveryKeyFromContext(ctx); key != "" {
		task.Name = s.queuePath() + "/tasks/" + key
	}

	created, err := s.client.CreateTask(ctx, &taskspb.CreateTaskRequest{
		Parent: s.queuePath(),
		Task:   task,
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			slog.InfoContext(ctx, "notification task already registered",
				slog.String("task_name", task.Name),
			)
			return nil
		}
		return fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "notification task registered to Cloud Tasks",
		slog.String("task_name", created.Name),
	)

	return nil
}

func (s *CloudTasksSink) Close() error {
	return s.client.Close()
}
