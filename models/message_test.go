package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessage_VisibleTo(t *testing.T) {
	tests := []struct {
		name    string
		message Message
		user    string
		visible bool
	}{
		{
			name:    "broadcast visible to anyone",
			message: Message{From: "Alice", To: "Bob", Kind: KindBroadcast},
			user:    "Carol",
			visible: true,
		},
		{
			name:    "status visible to anyone",
			message: Message{From: "Alice", To: BroadcastRecipient, Kind: KindStatus},
			user:    "Carol",
			visible: true,
		},
		{
			name:    "private visible to recipient",
			message: Message{From: "Alice", To: "Bob", Kind: KindPrivate},
			user:    "Bob",
			visible: true,
		},
		{
			name:    "private visible to sender",
			message: Message{From: "Alice", To: "Bob", Kind: KindPrivate},
			user:    "Alice",
			visible: true,
		},
		{
			name:    "private hidden from third party",
			message: Message{From: "Alice", To: "Bob", Kind: KindPrivate},
			user:    "Carol",
			visible: false,
		},
		{
			name:    "recipient matches regardless of case",
			message: Message{From: "Alice", To: "bob", Kind: KindPrivate},
			user:    "Bob",
			visible: true,
		},
		{
			name:    "sender matches regardless of case",
			message: Message{From: "ALICE", To: "Bob", Kind: KindPrivate},
			user:    "alice",
			visible: true,
		},
		{
			name:    "private to everyone visible to anyone",
			message: Message{From: "Alice", To: BroadcastRecipient, Kind: KindPrivate},
			user:    "Carol",
			visible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, tt.message.VisibleTo(tt.user))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "alice", NormalizeName("Alice"))
	assert.Equal(t, "alice", NormalizeName("  aLiCe "))
	assert.Equal(t, NormalizeName("ALICE"), NormalizeName("alice"))
}

func TestNewStatusMessage(t *testing.T) {
	at := time.Date(2024, 3, 1, 18, 4, 5, 0, time.Local)
	message := NewStatusMessage("Alice", StatusLeftText, at)

	assert.Equal(t, "Alice", message.From)
	assert.Equal(t, BroadcastRecipient, message.To)
	assert.Equal(t, KindStatus, message.Kind)
	assert.Equal(t, StatusLeftText, message.Text)
	assert.Equal(t, "18:04:05", message.Time)
	assert.Equal(t, at.UnixMilli(), int64(message.SentAt))
	assert.Equal(t, "alice", message.FromKey)
}

func TestMessage_Keyed(t *testing.T) {
	message := Message{From: " Alice ", To: "BOB"}.Keyed()
	assert.Equal(t, "alice", message.FromKey)
	assert.Equal(t, "bob", message.ToKey)
}
