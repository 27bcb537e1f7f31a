/*
Package try turns panics into errors.

Err, Result and As run a function and hand back whatever it returned, or the
recovered panic wrapped in a *PanicError. Async and ResultAsync do the same on
a new goroutine and deliver the outcome on a channel, giving up early when the
context is cancelled.

	v, err := try.Result(func() (int, error) {
		return strconv.Atoi(input)
	})
*/
package try
