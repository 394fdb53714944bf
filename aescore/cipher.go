package aescore

// EncryptBlock encrypts a single block under the given expanded round
// keys, per FIPS-197 Section 5.1.
func EncryptBlock(block Block, keys RoundKeys) Block {
	state := block
	AddRoundKey(&state, keys.Get(0))

	for round := 1; round < 10; round++ {
		SubBytes(&state)
		ShiftRows(&state)
		MixColumns(&state)
		AddRoundKey(&state, keys.Get(round))
	}

	SubBytes(&state)
	ShiftRows(&state)
	AddRoundKey(&state, keys.Get(10))

	return state
}

// DecryptBlock decrypts a single block under the given expanded round
// keys, per FIPS-197 Section 5.3.
func DecryptBlock(block Block, keys RoundKeys) Block {
	state := block
	AddRoundKey(&state, keys.Get(10))

	for round := 9; round >= 1; round-- {
		InvShiftRows(&state)
		InvSubBytes(&state)
		AddRoundKey(&state, keys.Get(round))
		InvMixColumns(&state)
	}

	InvShiftRows(&state)
	InvSubBytes(&state)
	AddRoundKey(&state, keys.Get(0))

	return state
}
