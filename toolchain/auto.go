// SPDX-License-Identifier: EPL-2.0

package toolchain

import (
	"context"
	"errors"
	"sync"

	"github.com/ik5/wavbatch/audio"
)

// Auto delegates to the first candidate whose Probe succeeds.
type Auto struct {
	candidates []Toolchain

	mu     sync.Mutex
	chosen Toolchain
}

func NewAuto(candidates ...Toolchain) *Auto {
	return &Auto{candidates: candidates}
}

// Name reports the selected toolchain once probed.
func (a *Auto) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chosen == nil {
		return string(KindAuto)
	}

	return a.chosen.Name()
}

// Chosen returns the selected toolchain, or nil before a successful Probe.
func (a *Auto) Chosen() Toolchain {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.chosen
}

func (a *Auto) Probe(ctx context.Context) error {
	_, err := a.pick(ctx)
	return err
}

func (a *Auto) Transcode(ctx context.Context, src, dst string, target audio.Target) error {
	tc, err := a.pick(ctx)
	if err != nil {
		return err
	}

	return tc.Transcode(ctx, src, dst, target)
}

func (a *Auto) pick(ctx context.Context) (Toolchain, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chosen != nil {
		return a.chosen, nil
	}

	var errs []error
	for _, c := range a.candidates {
		err := c.Probe(ctx)
		if err == nil {
			a.chosen = c
			return c, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		errs = append(errs, errors.New("no candidates configured"))
	}

	return nil, &UnavailableError{Tool: string(KindAuto), Err: errors.Join(errs...)}
}
