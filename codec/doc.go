// Package codec reads and writes the plain-text instance and solution
// formats of the course tooling.
//
// Instance file (blank lines between sections are optional):
//
//	t k a
//
//	q_0 q_1 ... q_{k-1}
//
//	H_00 ... H_0(k-1)
//	...
//	H_(k-1)0 ... H_(k-1)(k-1)
//
//	u_0 v_0
//	...
//	u_{a-1} v_{a-1}
//
// Solution stream: one solution per non-blank line, node types separated by
// whitespace. Streams may hold several improving solutions; the last line is
// the best one.
package codec
