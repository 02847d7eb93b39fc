// Package pact defines the pact document object model: the consumer and
// provider names, the ordered sequence of expected interactions, and the
// matching-rule tree attached to each request/response. It is the hub data
// structure every other package in this module either produces, consumes,
// or matches against.
package pact
