// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"fmt"
	"strings"
	"sync"
)

// Sink is an append-only text destination fed live output by the streaming
// executor. Implementations must tolerate appends from a reader goroutine
// while being read from another.
type Sink interface {
	Append(text string)
}

// Buffer is the concrete Sink used for a single in-flight command. It is
// reset to empty before each new command starts so stale output never bleeds
// into the next command's display.
type Buffer struct {
	mu sync.Mutex
	sb strings.Builder
}

var _ Sink = (*Buffer)(nil)

// Append implements Sink.
func (b *Buffer) Append(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sb.WriteString(text)
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.sb.String()
}

// Len returns the number of bytes buffered.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.sb.Len()
}

// Reset clears the buffer.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sb.Reset()
}

// sinkContents returns the sink's accumulated text when the implementation
// can report it, used to attach captured output to a ProcessFailure.
func sinkContents(s Sink) string {
	if str, ok := s.(fmt.Stringer); ok {
		return str.String()
	}

	return ""
}
