// Package shell is the terminal front end: it reads lines, turns slash
// commands and quick actions into runner calls, and prints turns.
package shell
