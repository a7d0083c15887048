// Package cli provides the interactive SWMS terminal dashboard.
//
// It runs a read-eval-print loop over the application context: sign in or
// register, list the menus the session may open, open a view and run the
// commands that view offers. A background ticker keeps the clock shown in
// the prompt current.
//
// Every view command is tied to a menu and is refused when the signed-in
// session cannot navigate to that menu.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartClock and runREPL for details.
package cli
