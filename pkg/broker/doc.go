// Package broker implements a HAL+JSON hypermedia client for discovering
// pacts to verify from a Pact Broker instance.
package broker
