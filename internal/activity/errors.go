package activity

import "go.temporal.io/sdk/temporal"

// nonRetryable wraps validation and programming errors that retries cannot
// fix; Temporal fails the activity immediately.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}

// retryable wraps transient failures, typically judge transport errors, so
// the workflow retry policy reruns the activity.
func retryable(tag string, cause error, msg string) error {
	return temporal.NewApplicationErrorWithCause(msg, tag, cause)
}
