// Package events provides the change-notification contract between the
// marketplace and whoever displays its data.
//
// The marketplace emits one Event per successful mutation, naming the
// collection that changed. Handlers register with an emitter and re-query
// the marketplace for fresh data; they never receive live references.
//
// The primary components are:
// - Event: a change notification identified by its Kind
// - EventHandler: interface for components that react to events
// - EventEmitter: interface for components that publish events
//
// InMemoryEventEmitter.Subscribe narrows delivery to chosen kinds, so a
// session indicator can ignore catalog traffic.
package events
