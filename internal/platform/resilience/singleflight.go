package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight is a typed front for singleflight.Group. Callers that join
// an in-flight call for the same key share its result.
type SingleFlight[T any] struct {
	group singleflight.Group
}

func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	v, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	val, _ := v.(T)
	return val, err, shared
}

// Forget drops key so the next Do runs fn even if a call is in flight.
func (g *SingleFlight[T]) Forget(key string) {
	g.group.Forget(key)
}
