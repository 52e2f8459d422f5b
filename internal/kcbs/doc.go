// Package kcbs provides the client for the KCBS member-site event search.
//
// The kcbs package builds the radius-search query against the member site's
// JSON endpoint, issues the HTTPS GET, unwraps the JSONP callback the
// endpoint sometimes emits, and decodes the payload. The endpoint has served
// misconfigured certificates, so certificate verification is disabled unless
// the caller opts back in.
package kcbs
