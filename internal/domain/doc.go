// Package domain contains the core business entities of the cardholder
// service: users, the payment cards they own, and the paging value objects
// used by listings. It is independent of any storage or delivery mechanism.
package domain
