// Package host owns a paginator on behalf of several front ends.
//
// A [Controller] serializes access to its [paginator.Paginator], answers the
// paginator's change requests with a [policy.Policy], and broadcasts the
// outcome to channel subscribers.
package host
