// Package output turns search reports into text, JSON or JSON Lines.
//
// Writers own all presentation; the solver only returns values.
package output
