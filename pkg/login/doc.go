// Package login implements form-based authentication: credential
// verification against bcrypt hashes, JWT session cookies, and the
// middleware that attaches the session identity to request contexts.
package login
