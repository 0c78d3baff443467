//go:build !gcloud

package config

// Validate accepts an empty webhook; messages are then only logged.
func (c *NotifyConfig) Validate() error {
	return nil
}
