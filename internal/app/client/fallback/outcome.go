// Package fallback records which path produced a result: the remote backend
// or the local cache.
package fallback

type Path int

const (
	PathRemote Path = iota
	PathLocal
)

func (p Path) String() string {
	if p == PathRemote {
		return "remote"
	}
	return "local"
}

type Outcome[T any] struct {
	Value T
	Path  Path
}

func Remote[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Path: PathRemote}
}

func Local[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Path: PathLocal}
}

func (o Outcome[T]) IsLocal() bool {
	return o.Path == PathLocal
}
