// Package mocks provides testify mock implementations of the store, cache and
// service interfaces for use in package tests.
//
// Usage:
//
//	users := new(mocks.UserStore)
//	users.On("GetByID", mock.Anything, int64(1)).Return(user, nil)
//	// exercise code that depends on store.UserStore
//	users.AssertExpectations(t)
package mocks
