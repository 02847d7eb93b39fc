// Package mockserver runs an in-process HTTP listener that serves
// responses for the interactions of a pact.PactDocument and records a
// VerificationReport of how each incoming request was matched.
package mockserver
