package repokit

import (
	"context"
	"fmt"
	"time"
)

type guarder interface {
	Guard(context.Context) error
}

// GuardTimeout bounds Ready when ctx has no deadline
const GuardTimeout = 5 * time.Second

// Ready runs g.Guard under GuardTimeout unless ctx already has a deadline
func Ready(ctx context.Context, g guarder) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, GuardTimeout)
		defer cancel()
	}
	return g.Guard(ctx)
}

// MustGuard runs Ready and panics on any error; for service startup
func MustGuard(ctx context.Context, g guarder) {
	if err := Ready(ctx, g); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
