// Command wbaes is the white-box AES CLI: generate an instance from a key,
// encrypt/decrypt files through it, check it against plain AES, or run an
// end-to-end demo.
package main

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/intersesh/wbaes/aescore"
	"github.com/intersesh/wbaes/generator"
	"github.com/intersesh/wbaes/instance"
	"github.com/intersesh/wbaes/rng"
	wbaespkg "github.com/intersesh/wbaes"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wbaes",
		Short: "White-box AES CLI (Baek-Cheon-Hong revisited)",
	}
	root.AddCommand(newGenCmd(), newEncCmd(), newDecCmd(), newCheckCmd(), newDemoCmd())
	return root
}

func newGenCmd() *cobra.Command {
	var keyHex, out string
	var seed int64
	var externalEncodings bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a white-box instance from a key",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKeyHex(keyHex)
			if err != nil {
				return err
			}

			src, err := seededSource(seed)
			if err != nil {
				return err
			}

			gen := generator.WithConfig(src, generator.Config{ExternalEncodings: externalEncodings})
			inst, err := gen.Generate(key)
			if err != nil {
				return fmt.Errorf("generate instance: %w", err)
			}

			data, err := inst.Marshal()
			if err != nil {
				return fmt.Errorf("serialize instance: %w", err)
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keyHex, "key-hex", "", "AES-128 key as 32 hex characters")
	cmd.Flags().StringVar(&out, "out", "", "output path for the serialized instance")
	cmd.Flags().Int64Var(&seed, "seed", -1, "RNG seed for reproducible generation (omit for random)")
	cmd.Flags().BoolVar(&externalEncodings, "external-encodings", false, "enable random external input/output encodings")
	_ = cmd.MarkFlagRequired("key-hex")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newEncCmd() *cobra.Command {
	var instancePath, inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "enc",
		Short: "Encrypt 32-byte blocks from a file using a white-box instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance(instancePath)
			if err != nil {
				return err
			}
			cipher := wbaespkg.NewCipher(inst)

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read %s: %w", inputPath, err)
			}
			if len(data)%32 != 0 {
				return fmt.Errorf("input length must be a multiple of 32 bytes")
			}

			for i := 0; i < len(data); i += 32 {
				block, err := cipher.EncryptBlock(data[i : i+32])
				if err != nil {
					return err
				}
				copy(data[i:i+32], block[:])
			}

			if err := os.WriteFile(outputPath, data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&instancePath, "instance", "", "path to the serialized instance")
	cmd.Flags().StringVar(&inputPath, "input", "", "input file (must be a multiple of 32 bytes)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output ciphertext path")
	_ = cmd.MarkFlagRequired("instance")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newDecCmd() *cobra.Command {
	var instancePath, keyHex, inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "dec",
		Short: "Decrypt 32-byte blocks using the AES key (assumes no external output encoding)",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance(instancePath)
			if err != nil {
				return err
			}
			if inst.Encodings.Output != nil {
				return wbaespkg.ErrOutputEncodingPresent
			}

			key, err := parseKeyHex(keyHex)
			if err != nil {
				return err
			}
			roundKeys := aescore.ExpandKey(key)

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read %s: %w", inputPath, err)
			}
			if len(data)%32 != 0 {
				return fmt.Errorf("input length must be a multiple of 32 bytes")
			}

			for i := 0; i < len(data); i += 32 {
				var b1, b2 aescore.Block
				copy(b1[:], data[i:i+16])
				copy(b2[:], data[i+16:i+32])
				pt1 := aescore.DecryptBlock(b1, roundKeys)
				pt2 := aescore.DecryptBlock(b2, roundKeys)
				copy(data[i:i+16], pt1[:])
				copy(data[i+16:i+32], pt2[:])
			}

			if err := os.WriteFile(outputPath, data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&instancePath, "instance", "", "path to the serialized instance")
	cmd.Flags().StringVar(&keyHex, "key-hex", "", "AES-128 key as 32 hex characters")
	cmd.Flags().StringVar(&inputPath, "input", "", "input file (ciphertext)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output plaintext path")
	_ = cmd.MarkFlagRequired("instance")
	_ = cmd.MarkFlagRequired("key-hex")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newCheckCmd() *cobra.Command {
	var instancePath, keyHex string
	var samples int
	var seed int64

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify a white-box instance matches AES for random samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance(instancePath)
			if err != nil {
				return err
			}
			if inst.Encodings.Output != nil {
				return fmt.Errorf("check expects instances with output encodings folded into the tables: %w", wbaespkg.ErrOutputEncodingPresent)
			}

			key, err := parseKeyHex(keyHex)
			if err != nil {
				return err
			}
			roundKeys := aescore.ExpandKey(key)
			cipher := wbaespkg.NewCipher(inst)

			src, err := seededSource(seed)
			if err != nil {
				return err
			}

			for i := 0; i < samples; i++ {
				var block [32]byte
				if _, err := src.Read(block[:]); err != nil {
					return err
				}

				var first, second aescore.Block
				copy(first[:], block[:16])
				copy(second[:], block[16:])
				expected1 := aescore.EncryptBlock(first, roundKeys)
				expected2 := aescore.EncryptBlock(second, roundKeys)

				actual, err := cipher.EncryptBlock(block[:])
				if err != nil {
					return err
				}

				if string(actual[:16]) != string(expected1[:]) || string(actual[16:]) != string(expected2[:]) {
					return fmt.Errorf("mismatch between white-box and AES outputs on sample %d", i)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d samples matched\n", samples)
			return nil
		},
	}

	cmd.Flags().StringVar(&instancePath, "instance", "", "path to the serialized instance")
	cmd.Flags().StringVar(&keyHex, "key-hex", "", "AES-128 key as 32 hex characters")
	cmd.Flags().IntVar(&samples, "samples", 4, "number of random samples to test")
	cmd.Flags().Int64Var(&seed, "seed", -1, "RNG seed for reproducibility (omit for random)")
	_ = cmd.MarkFlagRequired("instance")
	_ = cmd.MarkFlagRequired("key-hex")

	return cmd
}

func newDemoCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a key and instance, encrypt random data, and decrypt it back",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := seededSource(seed)
			if err != nil {
				return err
			}

			var key aescore.Aes128Key
			if _, err := src.Read(key[:]); err != nil {
				return err
			}

			gen := generator.New(src)
			inst, err := gen.Generate(key)
			if err != nil {
				return fmt.Errorf("generate instance: %w", err)
			}
			cipher := wbaespkg.NewCipher(inst)

			var plaintext [32]byte
			if _, err := src.Read(plaintext[:]); err != nil {
				return err
			}

			ciphertext, err := cipher.EncryptBlock(plaintext[:])
			if err != nil {
				return err
			}

			roundKeys := aescore.ExpandKey(key)
			var first, second aescore.Block
			copy(first[:], ciphertext[:16])
			copy(second[:], ciphertext[16:])
			pt1 := aescore.DecryptBlock(first, roundKeys)
			pt2 := aescore.DecryptBlock(second, roundKeys)
			var decrypted [32]byte
			copy(decrypted[:16], pt1[:])
			copy(decrypted[16:], pt2[:])

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "demo key: %s\n", hex.EncodeToString(key[:]))
			fmt.Fprintf(out, "plaintext: %s\n", hex.EncodeToString(plaintext[:]))
			fmt.Fprintf(out, "ciphertext: %s\n", hex.EncodeToString(ciphertext[:]))
			fmt.Fprintf(out, "decrypted: %s\n", hex.EncodeToString(decrypted[:]))

			if decrypted != plaintext {
				return fmt.Errorf("demo round trip failed")
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", -1, "RNG seed for reproducibility (omit for random)")
	return cmd
}

func parseKeyHex(keyHex string) (aescore.Aes128Key, error) {
	var key aescore.Aes128Key
	bytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return key, fmt.Errorf("decode key hex: %w", err)
	}
	if len(bytes) != 16 {
		return key, fmt.Errorf("AES-128 key must be 16 bytes (32 hex characters)")
	}
	copy(key[:], bytes)
	return key, nil
}

func loadInstance(path string) (*instance.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	inst, err := instance.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize instance: %w", err)
	}
	return inst, nil
}

// seededSource builds a deterministic rng.Source from seed, or from
// crypto/rand when seed is negative (the "omit" sentinel, since 0 is a
// valid user-chosen seed).
func seededSource(seed int64) (*rng.Source, error) {
	var seedBytes [32]byte
	if seed < 0 {
		if _, err := rand.Read(seedBytes[:]); err != nil {
			return nil, fmt.Errorf("read random seed: %w", err)
		}
	} else {
		binary.LittleEndian.PutUint64(seedBytes[:8], uint64(seed))
	}
	return rng.NewSource(seedBytes), nil
}
