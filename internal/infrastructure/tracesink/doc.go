// Package tracesink serializes call events to the trace destination. A single Sink owns
// the sequence counter: numbers start at 0, are strictly increasing, gap-free and never
// reset, and the entry and exit records of a call share one number.
package tracesink
