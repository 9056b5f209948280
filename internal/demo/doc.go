// Package demo holds the built-in tracing scenarios run by "mindala demo".
//
// All scenarios share two module-level names, A = 23 and B = 42, and variations of
//
//	f(x) = x + A
//	g(x) = f(x) + B
package demo
