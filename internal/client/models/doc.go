// Package models defines the records kept in SWMS slots, the slot keys
// themselves and the demo data every slot starts from.
package models
