// Package mocks provides shared test doubles.
//
// Each mock has a function field per interface method for custom behavior,
// default return values for the common case, and mutex-guarded call tracking
// so tests running handlers concurrently can still assert on calls.
//
//	completer := &mocks.MockCompleter{
//	    Responses: map[string]mocks.CompletionResponse{
//	        "gpt-4o-mini": {Err: errors.New("boom")},
//	        "gpt-4o":      {Reply: "**Minutes of Meeting**"},
//	    },
//	}
package mocks
