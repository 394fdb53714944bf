// Package aescore is a clarity-first AES-128 implementation: key schedule,
// single-block encryption and decryption, and the four round
// transformations (SubBytes, ShiftRows, MixColumns, AddRoundKey) exposed
// individually so the generator can reify each one as a linear or affine
// map instead of only running the whole cipher end to end.
//
// It mirrors FIPS-197 rather than chasing constant-time guarantees; it is
// not meant to be used directly as a side-channel-hardened cipher, only as
// the reference the white-box tables are built against.
package aescore
