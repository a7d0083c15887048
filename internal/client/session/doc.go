// Package session implements the sign-in state machine of the SWMS client.
//
// A Manager starts LoggedOut. Login moves it to LoggedIn with a Session
// copied from the matching user record; Logout moves it back. Sessions are
// never persisted, so every process starts logged out.
//
// Credential checks go through a Verifier. DemoVerifier accepts the fixed
// demo passwords; BcryptVerifier compares against a stored bcrypt hash.
package session
