// Package event provides a synchronous, ordered notification bus.
//
// Handlers are delivered in subscription order on the goroutine that calls
// [Bus.Emit]. Events are cancelable: any handler may call
// [Event.PreventDefault], which is reported back to the emitter.
//
// A [Bus] is not safe for concurrent use. Owners that are shared between
// goroutines must serialize access themselves.
package event
