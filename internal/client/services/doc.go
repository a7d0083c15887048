// Package services holds the operations behind the SWMS views. Every
// service works on the application context it was built with and checks the
// signed-in session against the menu capabilities before it changes
// anything. Mutations go through store bindings with Update, so each one
// reads the full current value, computes the full next value and writes it.
package services
