package testutil

import (
	"errors"
	"testing"
	"time"

	"github.com/ajxudir/subtest/pkg/deferred"
	"github.com/ajxudir/subtest/pkg/subtest"
)

// SettleTimeout bounds how long AwaitSettled waits for a single test.
const SettleTimeout = 2 * time.Second

// Passing returns a test whose code returns normally.
func Passing() *subtest.Test {
	return subtest.Func(func() {})
}

// Failing returns a test whose code panics with an error carrying msg.
func Failing(msg string) *subtest.Test {
	return subtest.Func(func() { panic(errors.New(msg)) })
}

// Held returns a test expecting resolution of a deferred that only the caller
// settles. The test stays pending until the returned deferred is resolved or
// rejected.
func Held() (*subtest.Test, *deferred.Deferred) {
	d := deferred.New()
	return subtest.Promise(func() *deferred.Deferred { return d }).ShouldResolve(), d
}

// AwaitSettled starts every test and fails t unless each one settles within
// SettleTimeout.
func AwaitSettled(t *testing.T, tests ...*subtest.Test) {
	t.Helper()
	for _, test := range tests {
		test.Start()
	}
	for _, test := range tests {
		select {
		case <-test.Condition().Done():
		case <-time.After(SettleTimeout):
			t.Fatalf("test did not settle within %s", SettleTimeout)
		}
	}
}
