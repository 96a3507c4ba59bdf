package request

import "context"

// Do dispatches through d and decodes the normalized response into T.
func Do[T any](ctx context.Context, d Doer, verb Verb, path string, body any) Result[T] {
	return Convert[T](d.Dispatch(ctx, verb, path, body))
}
