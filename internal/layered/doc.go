// Package layered implements security-level encryption of single string values.
//
// Level 0 passes values through unchanged, level 1 encrypts once under passphrase 1,
// and level 2 encrypts under passphrase 2 and then under passphrase 1:
//
//	level2(v) = level1(encrypt(v, passphrase2))
//
// Decryption undoes the outermost layer (passphrase 1) first. Every operation
// reports its outcome as a Result instead of an error return; failures carry a
// typed *Error whose message is passed through unchanged by the enclosing level.
package layered
