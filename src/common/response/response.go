// Package response defines the result wrapper every dc3 operation returns:
// either a success carrying data or a failure carrying a message.
package response

// Response is the uniform result of a service call. A failed Response
// always has the zero Data.
type Response[T any] struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

const okMessage = "ok"

// Ok wraps data in a successful Response.
func Ok[T any](data T) Response[T] {
	return Response[T]{Ok: true, Message: okMessage, Data: data}
}

// Fail returns a failed Response carrying message.
func Fail[T any](message string) Response[T] {
	return Response[T]{Ok: false, Message: message}
}

// FailFrom re-types a failed Response, keeping its message.
func FailFrom[T, U any](r Response[U]) Response[T] {
	return Fail[T](r.Message)
}

// IsOk reports whether r is a success.
func (r Response[T]) IsOk() bool {
	return r.Ok
}
