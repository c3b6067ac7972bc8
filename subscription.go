// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcm

import "regexp"

// Handler is called once per delivered message on a matching subscription.
type Handler func(channel string, payload []byte)

// Subscription is the handle returned by Subscribe, opaque to callers
// except for use with Unsubscribe.
type Subscription struct {
	id      int64
	pattern string
	re      *regexp.Regexp
	handler Handler
}

// subscriptionList is an ordered list of (pattern, handler) pairs,
// mutated only from the client's event loop, per spec.md 3 and 5.
type subscriptionList struct {
	entries []*Subscription
	nextID  int64
}

func newSubscriptionList() *subscriptionList {
	return &subscriptionList{}
}

// add compiles pattern anchored at both ends and appends it, per
// spec.md 4.7.
func (l *subscriptionList) add(pattern string, handler Handler) (*Subscription, error) {
	re, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return nil, &SubscriptionPatternError{Pattern: pattern, Err: err}
	}
	l.nextID++
	sub := &Subscription{id: l.nextID, pattern: pattern, re: re, handler: handler}
	l.entries = append(l.entries, sub)
	return sub, nil
}

// remove deletes sub by identity, a no-op if it is not present (already
// removed, or belongs to another instance).
func (l *subscriptionList) remove(sub *Subscription) {
	for i, s := range l.entries {
		if s == sub {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

// dispatch offers (channel, payload) to every matching subscription, in
// insertion order. A handler panic is recovered and logged so it cannot
// interrupt delivery to the remaining subscribers, per spec.md 4.6's
// "Handler exceptions are captured and reported but do not interrupt
// delivery to other subscribers."
func (l *subscriptionList) dispatch(channel string, payload []byte, log *Logger) {
	for _, sub := range l.entries {
		if !sub.re.MatchString(channel) {
			continue
		}
		runHandler(sub, channel, payload, log)
	}
}

func runHandler(sub *Subscription, channel string, payload []byte, log *Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("subscription %q handler panicked on channel %q: %v", sub.pattern, channel, r)
		}
	}()
	sub.handler(channel, payload)
}

// clear empties the list, used by Close.
func (l *subscriptionList) clear() {
	l.entries = nil
}
