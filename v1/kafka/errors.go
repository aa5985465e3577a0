package kafka

import "errors"

var (
	// ErrInvalidConfig is returned for settings that cannot be applied.
	ErrInvalidConfig = errors.New("invalid kafka configuration")

	// ErrNoBrokers is returned when no broker address is configured.
	ErrNoBrokers = errors.New("no kafka brokers configured")

	// ErrNoTopics is returned when the consumer has nothing to subscribe to.
	ErrNoTopics = errors.New("no kafka topics configured")

	// ErrNoGroupID is returned when the consumer group is missing. Offsets
	// can only be committed within a group.
	ErrNoGroupID = errors.New("no kafka consumer group configured")

	// ErrUnsupportedSASLMechanism is returned for unknown SASL mechanisms.
	ErrUnsupportedSASLMechanism = errors.New("unsupported SASL mechanism")

	// ErrFetchFailed wraps errors returned while fetching messages.
	ErrFetchFailed = errors.New("failed to fetch message")

	// ErrCommitFailed wraps errors returned while committing offsets.
	ErrCommitFailed = errors.New("failed to commit offsets")

	// ErrDecodeFailed wraps errors of the ValueDecoder that are not caused by
	// the message itself, such as an unreachable schema registry.
	ErrDecodeFailed = errors.New("failed to decode message")

	// ErrBatchFailed wraps a fatal error returned by the batch processor.
	ErrBatchFailed = errors.New("batch processing failed")

	// ErrPublishFailed wraps errors returned while writing to the dead letter topic.
	ErrPublishFailed = errors.New("failed to publish dead letter")
)

// IsConfigError checks if the error is caused by the configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrNoBrokers) ||
		errors.Is(err, ErrNoTopics) ||
		errors.Is(err, ErrNoGroupID) ||
		errors.Is(err, ErrUnsupportedSASLMechanism)
}

// IsBatchError checks if the consumer stopped because a batch could not be processed.
func IsBatchError(err error) bool {
	return errors.Is(err, ErrBatchFailed) || errors.Is(err, ErrDecodeFailed)
}
