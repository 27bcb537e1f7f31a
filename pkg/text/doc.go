// Package text holds small helpers over strings: validation, conversion,
// truncation and wrapping, case conversion and a passphrase cipher.
package text
