// Package primitive provides the single-pass symmetric ciphers used underneath the layered cipher.
// Every primitive encrypts a string under a passphrase and returns opaque base64 text.
//
//   - aes-cbc: OpenSSL "Salted__" AES-256-CBC with an MD5 EVP_BytesToKey schedule,
//     readable by CryptoJS.AES and `openssl enc -aes-256-cbc -md md5 -a`.
//   - aes-siv: deterministic AEAD backed by tink, keyed through HKDF-SHA256.
//   - chacha20poly1305: salted AEAD keyed through Argon2id.
package primitive
