// Package dto defines the transfer types exchanged with clients and stored in
// the cache: create and update drafts carrying validation tags, and the
// user, card and page responses.
package dto
