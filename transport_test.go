// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcm

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lcm-go/lcm/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	url, err := testutil.GetMulticastTestProviderURL()
	require.NoError(t, err)
	lo, err := testutil.GetLoopbackInterface()
	require.NoError(t, err)
	allOpts := append([]Option{WithInterface(lo)}, opts...)
	c, err := New(url, allOpts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	c := newTestClient(t)

	received := make(chan []byte, 1)
	_, err := c.Subscribe("TEST", func(channel string, payload []byte) {
		if channel == "TEST" {
			received <- payload
		}
	})
	require.NoError(t, err)

	waitForJoin()
	require.NoError(t, c.Publish("TEST", []byte{1, 2, 3, 4, 5}))

	select {
	case got := <-received:
		require.Equal(t, []byte{1, 2, 3, 4, 5}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestSubscribePatternMatchesOnlyIntendedChannels(t *testing.T) {
	c := newTestClient(t)

	var mu sync.Mutex
	var seen []string
	_, err := c.Subscribe("SENSOR_.*", func(channel string, payload []byte) {
		mu.Lock()
		seen = append(seen, channel)
		mu.Unlock()
	})
	require.NoError(t, err)

	waitForJoin()
	require.NoError(t, c.Publish("SENSOR_1", []byte("a")))
	require.NoError(t, c.Publish("SENSOR_2", []byte("b")))
	require.NoError(t, c.Publish("OTHER", []byte("c")))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 2
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.ElementsMatch(t, []string{"SENSOR_1", "SENSOR_2"}, seen)
}

func TestFragmentedPublishReassemblesLargePayload(t *testing.T) {
	c := newTestClient(t)

	payload := bytes.Repeat([]byte{0x5a}, 200000)
	received := make(chan []byte, 1)
	_, err := c.Subscribe("BIG", func(channel string, p []byte) {
		received <- p
	})
	require.NoError(t, err)

	waitForJoin()
	require.NoError(t, c.Publish("BIG", payload))

	select {
	case got := <-received:
		require.Equal(t, payload, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reassembled delivery")
	}
}

func TestUnsubscribeStopsFurtherDeliveries(t *testing.T) {
	c := newTestClient(t)

	count := make(chan struct{}, 10)
	sub, err := c.Subscribe("X", func(channel string, payload []byte) {
		count <- struct{}{}
	})
	require.NoError(t, err)

	waitForJoin()
	require.NoError(t, c.Publish("X", []byte("1")))
	<-count

	require.NoError(t, c.Unsubscribe(sub))
	require.NoError(t, c.Publish("X", []byte("2")))

	select {
	case <-count:
		t.Fatal("received delivery after unsubscribe")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestChannelNameLengthBoundary(t *testing.T) {
	c := newTestClient(t)

	ok63 := string(bytes.Repeat([]byte("a"), 63))
	require.NoError(t, c.Publish(ok63, []byte("x")))

	bad64 := string(bytes.Repeat([]byte("a"), 64))
	err := c.Publish(bad64, []byte("x"))
	require.Error(t, err)
	var tooLong *ChannelNameTooLongError
	require.ErrorAs(t, err, &tooLong)
}

func TestOperationsAfterCloseFail(t *testing.T) {
	url, err := testutil.GetMulticastTestProviderURL()
	require.NoError(t, err)
	lo, err := testutil.GetLoopbackInterface()
	require.NoError(t, err)
	c, err := New(url, WithInterface(lo))
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close()) // idempotent

	err = c.Publish("X", []byte("x"))
	require.ErrorIs(t, err, ErrInstanceClosed)

	_, err = c.Subscribe("X", func(string, []byte) {})
	require.ErrorIs(t, err, ErrInstanceClosed)
}

func TestPublishPayloadSizeBoundary(t *testing.T) {
	c := newTestClient(t)

	// need = len(channel) + 1 + len(payload); channel "X" has length 1.
	atBoundary := bytes.Repeat([]byte{1}, maxShortPayload-2)
	require.NoError(t, c.Publish("X", atBoundary))

	overBoundary := bytes.Repeat([]byte{1}, maxShortPayload-1)
	require.NoError(t, c.Publish("X", overBoundary))
}

func waitForJoin() {
	time.Sleep(50 * time.Millisecond)
}
