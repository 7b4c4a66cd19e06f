package trace

import (
	"context"
)

// CallInfo describes one forwarded call to hooks.
type CallInfo struct {
	RunID     string
	Seq       uint64
	Operation string
}

// HookToken is an opaque value returned by OnCallStart and passed back to OnCallEnd.
// Only meaningful to the CallHook that created it.
type HookToken interface{}

// CallHook observes every call forwarded to the wrapped module. OnCallStart runs right
// before forwarding, OnCallEnd right after, with the error the module returned.
// Implementations must be safe for concurrent use.
type CallHook interface {
	OnCallStart(ctx context.Context, info CallInfo) (context.Context, HookToken)
	OnCallEnd(ctx context.Context, token HookToken, info CallInfo, err error)
}
