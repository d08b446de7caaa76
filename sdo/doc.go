// See sdo.go for Oracle, Options, and Eval's three ordered gates.
package sdo
