package workflow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// DestinationPicker chooses the file that receives the extracted unit.
// An empty path means the user cancelled.
type DestinationPicker interface {
	Pick(ctx context.Context, sourcePath string) (string, error)
}

// StaticPicker always picks the same path.
type StaticPicker string

// Pick returns the configured path.
func (p StaticPicker) Pick(ctx context.Context, sourcePath string) (string, error) {
	return string(p), nil
}

// PromptPicker asks for a destination on Out and reads one line from In.
//
// In is buffered across calls, so several Picks may share one reader. A read
// cannot be interrupted: when ctx ends first, the pending read stays in
// flight and its line answers the next Pick.
type PromptPicker struct {
	In  io.Reader
	Out io.Writer

	mu      sync.Mutex
	reader  *bufio.Reader
	pending chan promptAnswer
}

type promptAnswer struct {
	line string
	err  error
}

// Pick prompts for a path. EOF or an empty answer cancels.
func (p *PromptPicker) Pick(ctx context.Context, sourcePath string) (string, error) {
	fmt.Fprintf(p.Out, "Destination file for selection in %s: ", sourcePath)

	ch := p.readLine()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-ch:
		p.mu.Lock()
		p.pending = nil
		p.mu.Unlock()
		if a.err != nil && a.err != io.EOF {
			return "", fmt.Errorf("failed to read destination: %w", a.err)
		}
		return strings.TrimSpace(a.line), nil
	}
}

// readLine starts a read unless one is already in flight.
func (p *PromptPicker) readLine() chan promptAnswer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	if p.pending == nil {
		ch := make(chan promptAnswer, 1)
		reader := p.reader
		go func() {
			line, err := reader.ReadString('\n')
			ch <- promptAnswer{line, err}
		}()
		p.pending = ch
	}
	return p.pending
}
