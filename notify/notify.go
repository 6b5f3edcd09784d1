// Package notify delivers watcher output to the operator. The watcher only
// needs three verbs: send a text, edit a previously sent text, pin one.
package notify

import "context"

type Notifier interface {
	// Send delivers text and returns the message id for later Edit/Pin.
	// silent suppresses the client-side notification sound.
	Send(ctx context.Context, text string, silent bool) (int, error)

	// Edit replaces the text of an earlier message.
	Edit(ctx context.Context, messageID int, text string) error

	// Pin pins an earlier message without notifying.
	Pin(ctx context.Context, messageID int) error
}
