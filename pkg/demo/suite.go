package demo

import (
	"io"
	"time"

	"github.com/ajxudir/subtest/pkg/deferred"
	"github.com/ajxudir/subtest/pkg/subtest"
)

// DefaultDelay is how long deferred example tests take when Options.Delay is unset.
const DefaultDelay = 500 * time.Millisecond

// Options configures the example suite.
type Options struct {
	// Delay is how long the deferred example tests take to settle.
	Delay time.Duration

	// Fail adds a test with a wrong expectation and a test gated on it.
	Fail bool

	// Out receives what SayHello prints. Nil discards it.
	Out io.Writer
}

// Suite builds the example suite.
//
// Test names are grouped with "/" so they can be selected with filters such as
// "greeting/*" or "deferred/**":
//   - greeting/say-hello: runs without failure
//   - greeting/hello-user: returns an expected value
//   - deferred/resolves, deferred/resolves-to: deferred success
//   - deferred/rejects, deferred/rejects-to: deferred failure
//   - errors/throws, errors/throws-specific: raised failures
//   - greeting/hello-again: runs after deferred/resolves-to has passed
//
// With Options.Fail, broken/mismatch fails its equality check and
// broken/blocked fails because it depends on broken/mismatch.
func Suite(opts Options) *subtest.Suite {
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	sayHello := subtest.Func(func() { SayHello(out) }).ShouldRun()
	helloUser := subtest.Value(func() any { return HelloUser("Subnodal") }).ShouldEqual("Hello, Subnodal!")
	resolves := subtest.Promise(func() *deferred.Deferred { return HelloAfter(delay) }).ShouldResolve()
	resolvesTo := subtest.Promise(func() *deferred.Deferred { return HelloAfter(delay) }).ShouldResolveTo(Greeting)
	rejects := subtest.Promise(func() *deferred.Deferred { return GoodbyeAfter(delay) }).ShouldReject()
	rejectsTo := subtest.Promise(func() *deferred.Deferred { return GoodbyeAfter(delay) }).ShouldRejectTo("Goodbye!")
	throws := subtest.Func(ThrowError).ShouldThrow(nil)
	throwsSpecific := subtest.Func(ThrowError).ShouldThrow(Oops())
	helloAgain := subtest.Func(func() { SayHello(out) }).ShouldRun().After(resolvesTo, true)

	suite := subtest.NewSuite().
		Add("greeting/say-hello", sayHello).
		Add("greeting/hello-user", helloUser).
		Add("deferred/resolves", resolves).
		Add("deferred/resolves-to", resolvesTo).
		Add("deferred/rejects", rejects).
		Add("deferred/rejects-to", rejectsTo).
		Add("errors/throws", throws).
		Add("errors/throws-specific", throwsSpecific).
		Add("greeting/hello-again", helloAgain)

	if opts.Fail {
		mismatch := subtest.Value(func() any { return HelloUser("World") }).ShouldEqual("Hello, Subnodal!")
		blocked := subtest.Func(func() { SayHello(out) }).After(mismatch, true)
		suite.
			Add("broken/mismatch", mismatch).
			Add("broken/blocked", blocked)
	}
	return suite
}
