package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"shardvault/shared/constants"
)

var InvalidBlobError = errors.New("encrypted blob is too short to contain a nonce")

// GenerateSalt returns a new random salt for DeriveKey.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, constants.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	return salt, nil
}

// DeriveKey derives the vault key from a password and salt. The same
// password and salt always produce the same key.
func DeriveKey(password, salt []byte) [constants.KeySize]byte {
	key := pbkdf2.Key(password, salt, constants.KeyIterations, constants.KeySize, sha256.New)

	var keyOut [constants.KeySize]byte
	copy(keyOut[:], key)

	return keyOut
}

// Encrypt encrypts data using a key from DeriveKey. The nonce is prepended
// to the returned blob.
func Encrypt(key [constants.KeySize]byte, data []byte) ([]byte, error) {
	var nonce [constants.NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	result := aesgcm.Seal(nil, nonce[:], data, nil)
	var merged []byte
	merged = append(merged, nonce[:]...)
	merged = append(merged, result[:]...)

	return merged, nil
}

// Decrypt decrypts a blob produced by Encrypt using the provided key. If the
// key is unable to decrypt the blob, an error is returned, otherwise the
// decrypted data is returned.
func Decrypt(key [constants.KeySize]byte, blob []byte) ([]byte, error) {
	if len(blob) < constants.NonceSize {
		return nil, InvalidBlobError
	}

	nonce := blob[:constants.NonceSize]
	data := blob[constants.NonceSize:]

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, data, nil)
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}
