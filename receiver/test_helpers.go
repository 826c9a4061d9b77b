package receiver

import "github.com/stretchr/testify/mock"

// MatchReceiver creates a custom matcher for receiver arguments in mocks
func MatchReceiver(matcher func(Receiver) bool) interface{} {
	return mock.MatchedBy(matcher)
}
