// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package credstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/authcode-tui/internal/util"
)

// EncryptedPrefix marks a stored value as encrypted (format: ENC:base64(nonce|ciphertext|tag))
const EncryptedPrefix = "ENC:"

// NonceSize is the size of the nonce/IV for AES-GCM (12 bytes / 96 bits)
const NonceSize = 12

// KeySize is the size of the AES-256 key (32 bytes / 256 bits)
const KeySize = 32

// SaltSize is the size of the salt for key derivation (32 bytes)
const SaltSize = 32

// secretSize is the size of the random secret stored in the keyfile
const secretSize = 32

// PBKDF2Iterations is the number of iterations for PBKDF2-SHA-256 key
// derivation. OWASP 2023 recommends 600,000+ for adequate brute-force
// resistance on modern hardware.
const PBKDF2Iterations = 600000

var (
	// ErrInvalidCiphertext indicates the ciphertext format is invalid
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")
	// ErrDecryptionFailed indicates decryption failed (wrong key or tampered data)
	ErrDecryptionFailed = errors.New("decryption failed: authentication tag mismatch")
)

// cipherBox wraps an AES-256-GCM AEAD keyed from the store's keyfile.
type cipherBox struct {
	aead cipher.AEAD
}

// loadCipherBox derives the encryption key from the keyfile at path,
// creating the keyfile on first use. The keyfile holds a random secret and
// salt; the key is derived with PBKDF2-SHA-256 so a copied keyfile alone
// does not reveal key structure.
func loadCipherBox(path string) (*cipherBox, error) {
	material, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		material, err = createKeyfile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load keyfile: %w", err)
	}
	if len(material) != secretSize+SaltSize {
		return nil, fmt.Errorf("keyfile %s is corrupt: %d bytes", path, len(material))
	}

	secret := material[:secretSize]
	salt := material[secretSize:]
	key := pbkdf2.Key(secret, salt, PBKDF2Iterations, KeySize, sha256.New)
	defer zeroBytes(key)
	defer zeroBytes(material)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM cipher: %w", err)
	}
	return &cipherBox{aead: aead}, nil
}

// createKeyfile generates fresh key material and writes it with 0600 perms.
func createKeyfile(path string) ([]byte, error) {
	material := make([]byte, secretSize+SaltSize)
	if _, err := io.ReadFull(rand.Reader, material); err != nil {
		return nil, fmt.Errorf("failed to generate key material: %w", err)
	}
	// RELIABILITY: Atomic write with fsync prevents a torn keyfile on crash
	if err := util.AtomicWriteFileWithDir(path, material, 0600, 0700); err != nil {
		return nil, fmt.Errorf("failed to write keyfile: %w", err)
	}
	return material, nil
}

// EncryptString encrypts a value and returns it with the ENC: prefix.
func (b *cipherBox) EncryptString(plaintext string) (string, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	ciphertext := b.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return EncryptedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString decrypts an ENC:-prefixed value. A value without the prefix
// is returned unchanged so plaintext stores written before encryption was
// introduced keep working.
func (b *cipherBox) DecryptString(value string) (string, error) {
	if !strings.HasPrefix(value, EncryptedPrefix) {
		return value, nil
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, EncryptedPrefix))
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(data) < NonceSize {
		return "", ErrInvalidCiphertext
	}
	plaintext, err := b.aead.Open(nil, data[:NonceSize], data[NonceSize:], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// zeroBytes zeros sensitive byte slices to limit memory disclosure.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
