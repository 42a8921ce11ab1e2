// Package demo is the quote board served by "statectx serve".
//
// The board keeps a counter and the last fetched quote in one map-state
// context. Its page is mounted on a host root; commits are pushed to
// browsers over a websocket as whole-board HTML.
package demo
