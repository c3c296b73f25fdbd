package notify

import (
	"context"
	"sync"
)

// SentMessage records one delivery the fake accepted.
type SentMessage struct {
	Token   string
	Message string
	Sticker bool
}

// FakeNotifier records messages instead of delivering them.
type FakeNotifier struct {
	mu   sync.Mutex
	sent []SentMessage

	// Err, when set, is returned from every Send.
	Err error
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (f *FakeNotifier) Send(_ context.Context, token, message string, sticker bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.sent = append(f.sent, SentMessage{Token: token, Message: message, Sticker: sticker})
	return nil
}

func (f *FakeNotifier) Sent() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentMessage(nil), f.sent...)
}
