package keystore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestEncryptDecryptMnemonic(t *testing.T) {
	password := []byte("secure-password")

	keyJSON, err := EncryptMnemonic(mnemonic, password, LightScryptN)
	require.NoError(t, err)
	assert.Equal(t, "aes-256-gcm", keyJSON.Crypto.Cipher)
	assert.Equal(t, 3, keyJSON.Version)
	assert.NotEmpty(t, keyJSON.Id)

	plaintext, err := DecryptMnemonic(keyJSON, password)
	require.NoError(t, err)
	assert.Equal(t, mnemonic, plaintext)

	_, err = DecryptMnemonic(keyJSON, []byte("wrong-password"))
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	password := []byte("pw")
	keyJSON, err := EncryptMnemonic(mnemonic, password, LightScryptN)
	require.NoError(t, err)

	ct := []byte(keyJSON.Crypto.CipherText)
	if ct[0] == '0' {
		ct[0] = '1'
	} else {
		ct[0] = '0'
	}
	keyJSON.Crypto.CipherText = string(ct)

	_, err = DecryptMnemonic(keyJSON, password)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestFileSaveLoad(t *testing.T) {
	password := []byte("123456")
	filename := filepath.Join(t.TempDir(), "wallet.json")

	keyJSON, err := EncryptMnemonic(mnemonic, password, LightScryptN)
	require.NoError(t, err)
	require.NoError(t, keyJSON.SaveToFile(filename))

	loaded, err := LoadFromFile(filename)
	require.NoError(t, err)
	assert.Equal(t, keyJSON.Id, loaded.Id)

	decrypted, err := DecryptMnemonic(loaded, password)
	require.NoError(t, err)
	assert.Equal(t, mnemonic, decrypted)
}
