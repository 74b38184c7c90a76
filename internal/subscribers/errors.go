package subscribers

import "errors"

// Business-rule rejections surfaced by the subscribe path.
var (
	ErrAlreadySubscribed     = errors.New("email already subscribed")
	ErrSubscriptionCancelled = errors.New("subscription was cancelled")
)
