// Package services contains stateless domain services of the fulfillment
// core: logic that spans aggregates or that does not naturally belong to a
// single entity. The capability checker decides which workers may claim
// which stages, keeping authorization rules out of the state machine itself
// so both can be tested independently.
package services
