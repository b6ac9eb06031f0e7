// Package demo is a small greeting application and the example suite that
// exercises every kind of pass condition against it.
package demo

import (
	"fmt"
	"io"
	"time"

	"github.com/ajxudir/subtest/pkg/condition"
	"github.com/ajxudir/subtest/pkg/deferred"
)

// Greeting is what SayHello prints and HelloAfter resolves to.
const Greeting = "Hello, world!"

// SayHello writes Greeting to w.
func SayHello(w io.Writer) {
	_, _ = fmt.Fprintln(w, Greeting)
}

// HelloUser greets name.
func HelloUser(name string) string {
	return "Hello, " + name + "!"
}

// HelloAfter returns a deferred that resolves to Greeting once delay has elapsed.
func HelloAfter(delay time.Duration) *deferred.Deferred {
	return deferred.After(delay, Greeting)
}

// GoodbyeAfter returns a deferred that fails with "Goodbye!" once delay has elapsed.
func GoodbyeAfter(delay time.Duration) *deferred.Deferred {
	return deferred.FailAfter(delay, "Goodbye!")
}

// Oops returns the failure ThrowError raises. Every call returns a new value,
// so matching a raised failure relies on its name and message only.
func Oops() error {
	return condition.NewFailure("Error", "Oops!")
}

// ThrowError always raises Oops.
func ThrowError() {
	panic(Oops())
}
