package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"shardvault/shared/constants"
)

var data = []byte("shard contents")
var password = []byte("topsecret")

func TestGenerateSalt(t *testing.T) {
	saltA, err := GenerateSalt()
	assert.Nil(t, err)
	assert.Equal(t, constants.SaltSize, len(saltA))

	saltB, err := GenerateSalt()
	assert.Nil(t, err)
	assert.False(t, bytes.Equal(saltA, saltB))
}

func TestDeriveKeyDeterministic(t *testing.T) {
	salt, err := GenerateSalt()
	assert.Nil(t, err)

	keyA := DeriveKey(password, salt)
	keyB := DeriveKey(password, salt)
	assert.Equal(t, keyA, keyB)

	otherSalt, err := GenerateSalt()
	assert.Nil(t, err)

	keyC := DeriveKey(password, otherSalt)
	assert.NotEqual(t, keyA, keyC)

	keyD := DeriveKey([]byte("topsecret2"), salt)
	assert.NotEqual(t, keyA, keyD)
}

func TestEncryptDecrypt(t *testing.T) {
	salt, _ := GenerateSalt()
	key := DeriveKey(password, salt)

	encrypted, err := Encrypt(key, data)
	assert.Nil(t, err)
	assert.Equal(t, len(data)+constants.NonceSize+gcmOverhead, len(encrypted))

	decrypted, err := Decrypt(key, encrypted)
	assert.Nil(t, err)
	assert.Equal(t, data, decrypted)
}

func TestDecryptTampered(t *testing.T) {
	salt, _ := GenerateSalt()
	key := DeriveKey(password, salt)

	encrypted, err := Encrypt(key, data)
	assert.Nil(t, err)

	tampered := make([]byte, len(encrypted))
	copy(tampered, encrypted)
	tampered[len(tampered)-1] ^= 0x01

	_, err = Decrypt(key, tampered)
	assert.NotNil(t, err)
}

func TestDecryptWrongKey(t *testing.T) {
	salt, _ := GenerateSalt()
	key := DeriveKey(password, salt)
	wrongKey := DeriveKey([]byte("notmypassword"), salt)

	encrypted, err := Encrypt(key, data)
	assert.Nil(t, err)

	_, err = Decrypt(wrongKey, encrypted)
	assert.NotNil(t, err)
}

func TestDecryptShortBlob(t *testing.T) {
	salt, _ := GenerateSalt()
	key := DeriveKey(password, salt)

	_, err := Decrypt(key, []byte{0x01, 0x02, 0x03})
	assert.ErrorIs(t, err, InvalidBlobError)
}

// gcmOverhead is the GCM tag size appended to every ciphertext.
const gcmOverhead = 16
