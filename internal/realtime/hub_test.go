package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConn(channels ...string) *connection {
	c := &connection{
		send:     make(chan []byte, 8),
		channels: make(map[string]bool),
	}
	for _, ch := range channels {
		c.channels[ch] = true
	}
	return c
}

func receiveEvent(t *testing.T, c *connection) ChangeEvent {
	t.Helper()
	select {
	case data := <-c.send:
		var event ChangeEvent
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return ChangeEvent{}
	}
}

func TestNotifyCoalescesBurst(t *testing.T) {
	hub := NewHub(20 * time.Millisecond)
	c := testConn(ChannelServiceRecords)
	hub.register(c)

	for i := 0; i < 10; i++ {
		hub.Notify(ChannelServiceRecords)
	}

	event := receiveEvent(t, c)
	assert.Equal(t, EventChange, event.Type)
	assert.Equal(t, ChannelServiceRecords, event.Channel)

	// the burst produced exactly one event
	select {
	case <-c.send:
		t.Fatal("expected a single coalesced event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifySeparateBursts(t *testing.T) {
	hub := NewHub(10 * time.Millisecond)
	c := testConn(ChannelServiceRecords)
	hub.register(c)

	hub.Notify(ChannelServiceRecords)
	receiveEvent(t, c)

	hub.Notify(ChannelServiceRecords)
	receiveEvent(t, c)
}

func TestNotifyChannelsIndependent(t *testing.T) {
	hub := NewHub(10 * time.Millisecond)
	records := testConn(ChannelServiceRecords)
	users := testConn(ChannelUsers)
	hub.register(records)
	hub.register(users)

	hub.Notify(ChannelServiceRecords)
	hub.Notify(ChannelUsers)

	assert.Equal(t, ChannelServiceRecords, receiveEvent(t, records).Channel)
	assert.Equal(t, ChannelUsers, receiveEvent(t, users).Channel)

	// neither connection saw the other channel's event
	select {
	case <-records.send:
		t.Fatal("records connection got an extra event")
	case <-users.send:
		t.Fatal("users connection got an extra event")
	case <-time.After(30 * time.Millisecond):
	}
}

func TestNotifyImmediateWithoutDebounce(t *testing.T) {
	hub := NewHub(0)
	c := testConn(ChannelAuditLogs)
	hub.register(c)

	hub.Notify(ChannelAuditLogs)

	select {
	case <-c.send:
	default:
		t.Fatal("expected an immediate event")
	}
}

func TestNotifySkipsUnsubscribed(t *testing.T) {
	hub := NewHub(0)
	c := testConn(ChannelUsers)
	hub.register(c)

	hub.Notify(ChannelServiceRecords)

	select {
	case <-c.send:
		t.Fatal("unsubscribed connection got an event")
	default:
	}
}
