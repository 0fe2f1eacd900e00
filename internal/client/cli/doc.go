// Package cli implements the gophfeed command-line client on top of cobra.
//
// Commands:
//
//	register   create an account (password is prompted without echo)
//	login      obtain an access token and store it in the token file
//	logout     forget the stored token
//	post       publish a post
//	comment    comment on a post
//	feed       show a page of posts, newest first, as a table
//
// Persistent flags --server and --token-file override the values loaded by
// the config package.
package cli
