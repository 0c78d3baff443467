package config

import "errors"

// ValidateForRun checks every setting the watcher needs before it starts.
func ValidateForRun(cfg *Config) error {
	errs := []error{
		cfg.Feed.Validate(),
		cfg.Calendar.Validate(),
		cfg.Notify.Validate(),
		cfg.Seen.Validate(),
	}
	if cfg.Seen.UsesRedis() {
		errs = append(errs, cfg.Redis.Validate())
	}
	return errors.Join(errs...)
}
