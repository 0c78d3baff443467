package config

import "os"

type NotifyConfig struct {
	SlackWebhookURL string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
}

func LoadNotifyConfig() *NotifyConfig {
	return &NotifyConfig{
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),

		GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
		GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
		GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
	}
}
