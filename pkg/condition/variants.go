package condition

// Compile-time checks that every variant implements Condition.
var (
	_ Condition = (*RanWithoutFailure)(nil)
	_ Condition = (*Equality)(nil)
	_ Condition = (*DeferredSettlement)(nil)
	_ Condition = (*DeferredSettlementEquality)(nil)
	_ Condition = (*DeferredFailure)(nil)
	_ Condition = (*DeferredFailureEquality)(nil)
	_ Condition = (*RaisedFailure)(nil)
	_ Condition = (*Deferred)(nil)
)

// RanWithoutFailure passes when the code completes without raising.
// The failure detail is the raised failure itself.
type RanWithoutFailure struct {
	state
}

// Run invokes code and settles immediately.
func (c *RanWithoutFailure) Run(code Invocable) {
	if !c.begin(c) {
		return
	}
	if _, err := invoke(code); err != nil {
		c.fail(err)
		return
	}
	c.pass()
}

// Equality passes when the code returns a value equivalent to Expected.
type Equality struct {
	state
	Expected any
}

// Run invokes code once and compares its return value.
func (c *Equality) Run(code Invocable) {
	if !c.begin(c) {
		return
	}
	actual, err := invoke(code)
	if err != nil {
		c.fail(err)
		return
	}
	if !Equivalent(c.Expected, actual) {
		c.fail(&MismatchError{Expected: c.Expected, Actual: actual})
		return
	}
	c.pass()
}

// DeferredSettlement passes when the deferred result returned by the code succeeds.
type DeferredSettlement struct {
	state
}

// Run invokes code and settles when its deferred result settles.
func (c *DeferredSettlement) Run(code Invocable) {
	if !c.begin(c) {
		return
	}
	c.watch(code,
		func(any) { c.pass() },
		func(failure any) { c.fail(&DeferredFailureError{Failure: failure}) },
	)
}

// DeferredSettlementEquality passes when the deferred result returned by the
// code succeeds with a value equivalent to Expected.
type DeferredSettlementEquality struct {
	state
	Expected any
}

// Run invokes code and compares the success value of its deferred result.
func (c *DeferredSettlementEquality) Run(code Invocable) {
	if !c.begin(c) {
		return
	}
	c.watch(code,
		func(value any) {
			if !Equivalent(c.Expected, value) {
				c.fail(&MismatchError{Expected: c.Expected, Actual: value})
				return
			}
			c.pass()
		},
		func(failure any) { c.fail(&DeferredFailureError{Failure: failure}) },
	)
}

// DeferredFailure passes when the deferred result returned by the code fails.
type DeferredFailure struct {
	state
}

// Run invokes code and settles when its deferred result settles.
func (c *DeferredFailure) Run(code Invocable) {
	if !c.begin(c) {
		return
	}
	c.watch(code,
		func(any) { c.fail(ErrNoDeferredFailure) },
		func(any) { c.pass() },
	)
}

// DeferredFailureEquality passes when the deferred result returned by the code
// fails with a payload equivalent to Expected.
type DeferredFailureEquality struct {
	state
	Expected any
}

// Run invokes code and compares the failure payload of its deferred result.
func (c *DeferredFailureEquality) Run(code Invocable) {
	if !c.begin(c) {
		return
	}
	c.watch(code,
		func(any) { c.fail(ErrNoDeferredFailure) },
		func(failure any) {
			if !Equivalent(c.Expected, failure) {
				c.fail(&MismatchError{Expected: c.Expected, Actual: failure})
				return
			}
			c.pass()
		},
	)
}

// RaisedFailure passes when the code raises. When Expected is set, the raised
// failure must also have the same name and message as Expected.
type RaisedFailure struct {
	state
	Expected error
}

// Run invokes code and inspects what it raised.
func (c *RaisedFailure) Run(code Invocable) {
	if !c.begin(c) {
		return
	}
	_, err := invoke(code)
	switch {
	case err == nil:
		c.fail(ErrNoFailureRaised)
	case c.Expected == nil, SameFailure(c.Expected, err):
		c.pass()
	default:
		c.fail(err)
	}
}

// Deferred runs Subsequent only after the gate of an inter-test dependency has
// opened. The code it runs must return a deferred result: its failure fails the
// condition, its success value is the continuation that Subsequent evaluates.
//
// A success value that is an Invocable (or a func() (any, error)) is run as the
// continuation; any other value is adopted as the continuation's return value.
type Deferred struct {
	state
	Subsequent Condition
	resumed    bool
}

// Waiting reports whether the condition is pending on its gate. It is false
// once the gate opened or the condition settled.
func (c *Deferred) Waiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.resumed && c.outcome == Pending
}

// Run invokes code and, once its deferred result succeeds, runs Subsequent
// against the continuation and adopts Subsequent's outcome.
func (c *Deferred) Run(code Invocable) {
	if !c.begin(c) {
		return
	}
	if c.Subsequent == nil {
		c.Subsequent = &RanWithoutFailure{}
	}
	c.watch(code, c.resume, func(failure any) { c.fail(gateFailure(failure)) })
}

func (c *Deferred) resume(value any) {
	c.mu.Lock()
	c.resumed = true
	c.mu.Unlock()

	c.Subsequent.Run(continuation(value))
	<-c.Subsequent.Done()

	if c.Subsequent.Outcome() == Passed {
		c.pass()
		return
	}
	c.fail(c.Subsequent.FailureDetail())
}

func continuation(value any) Invocable {
	switch fn := value.(type) {
	case Invocable:
		return fn
	case func() (any, error):
		return fn
	default:
		return func() (any, error) { return value, nil }
	}
}

// gateFailure keeps error payloads as they are so callers can match them with
// errors.Is; other payloads are wrapped.
func gateFailure(failure any) error {
	if err, ok := failure.(error); ok {
		return err
	}
	return &DeferredFailureError{Failure: failure}
}
