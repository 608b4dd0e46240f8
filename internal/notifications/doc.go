// Package notifications publishes alignment run summaries to ntfy.
//
// NewService returns a no-op notifier when no topic is configured, so callers
// can notify unconditionally.
package notifications
