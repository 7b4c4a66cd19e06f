// Package app contains the call interceptor. Spy implements cryptoki.Module in front of
// a lazily loaded module and traces the entry and exit of every forwarded call.
package app
