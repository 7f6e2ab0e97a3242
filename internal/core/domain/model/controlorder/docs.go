// Package controlorder holds the ControlOrder aggregate: the work instruction
// an operator at a production or assembly workstation executes. The Type
// discriminator selects the production or assembly flavour and with it the
// transition table and the type specific text fields.
package controlorder
