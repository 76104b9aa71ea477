package codec

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/backmassage/pixmaster/internal/planner"
	"github.com/backmassage/pixmaster/internal/probe"
)

// ExecResult holds the outcome of a single in-memory transcode.
type ExecResult struct {
	Data   []byte // Encoded output, ready to write.
	Width  int    // Output dimensions.
	Height int

	Flattened bool // Alpha was composited onto white.
}

// Executor runs one in-memory transcode at a time.
//
// Image work cannot be interrupted mid-call. When ctx ends first, Execute
// returns ctx.Err() and the abandoned transcode finishes in the background
// with its result discarded. The next Execute (or [Executor.Settle]) waits
// for it, so at most one decoded image is held at once. An Executor is not
// safe for concurrent use.
type Executor struct {
	c       Codec
	pending <-chan struct{} // closed when the abandoned transcode returns
}

// NewExecutor returns an Executor transcoding with c.
func NewExecutor(c Codec) *Executor {
	return &Executor{c: c}
}

// Settle blocks until a transcode abandoned by an earlier Execute has
// returned. It is a no-op when nothing is pending.
func (e *Executor) Settle() {
	if e.pending != nil {
		<-e.pending
		e.pending = nil
	}
}

// Execute decodes r, downscales to plan.ResizeWidth, flattens alpha when the
// plan asks for it, and encodes into memory. Nothing is written to disk, so
// a caller that gives up (ctx done) leaves no partial output.
func (e *Executor) Execute(ctx context.Context, plan *planner.FilePlan, r io.Reader) (*ExecResult, error) {
	if plan.Action != planner.ActionEncode {
		return nil, fmt.Errorf("execute: plan action is %s, not encode", plan.Action)
	}
	e.Settle()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type outcome struct {
		res *ExecResult
		err error
	}
	done := make(chan outcome, 1)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		res, err := transcode(e.c, plan, r)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		e.pending = finished
		return nil, ctx.Err()
	}
}

func transcode(c Codec, plan *planner.FilePlan, r io.Reader) (*ExecResult, error) {
	img, err := c.Decode(r)
	if err != nil {
		return nil, err
	}

	img = c.ResizeToWidth(img, plan.ResizeWidth, false)

	res := &ExecResult{}
	if plan.FlattenAlpha && probe.HasAlpha(img) {
		img = Flatten(img)
		res.Flattened = true
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, img, plan.Format, BuildOptions(plan)); err != nil {
		return nil, err
	}

	b := img.Bounds()
	res.Data = buf.Bytes()
	res.Width, res.Height = b.Dx(), b.Dy()
	return res, nil
}
