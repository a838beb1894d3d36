package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0600))
	return dir
}

func TestInit_FromFile(t *testing.T) {
	dir := writeConfig(t, `
app:
  env: production
link:
  addr: 0.0.0.0:7000
  read_timeout: 30s
wallet:
  mnemonic: "`+testMnemonic+`"
  network: testnet
display:
  hide_memo: true
signing:
  digest: keccak256
`)

	fromFile, err := Init(dir)
	require.NoError(t, err)
	assert.True(t, fromFile)

	assert.Equal(t, "production", Global.App.Env)
	assert.Equal(t, "0.0.0.0:7000", Global.Link.Addr)
	assert.Equal(t, 30*time.Second, Global.Link.ReadTimeout)
	assert.Equal(t, 5*time.Second, Global.Link.WriteTimeout)
	assert.Equal(t, "testnet", Global.Wallet.Network)
	assert.Equal(t, "m/44'/535348'/0'/0/0", Global.Wallet.DerivationPath)
	assert.True(t, Global.Display.HideMemo)
	assert.Equal(t, "keccak256", Global.Signing.Digest)
	assert.Equal(t, "2020 Ledger", Global.App.Copyright)
}

func TestInit_EnvOnly(t *testing.T) {
	t.Setenv("WALLET_MNEMONIC", testMnemonic)
	t.Setenv("LINK_ADDR", "127.0.0.1:8123")

	fromFile, err := Init(t.TempDir())
	require.NoError(t, err)
	assert.False(t, fromFile)
	assert.Equal(t, testMnemonic, Global.Wallet.Mnemonic)
	assert.Equal(t, "127.0.0.1:8123", Global.Link.Addr)
	assert.False(t, Global.Display.HideMemo)
	assert.Equal(t, "sha256", Global.Signing.Digest)
}

func TestInit_Invalid(t *testing.T) {
	_, err := Init(writeConfig(t, "wallet:\n  mnemonic: x\nsigning:\n  digest: md5\n"))
	assert.Error(t, err)

	_, err = Init(writeConfig(t, "wallet:\n  mnemonic: x\n  derivation_path: 44/0\n"))
	assert.Error(t, err)

	_, err = Init(writeConfig(t, "app:\n  name: signer\n"))
	assert.ErrorIs(t, err, ErrNoWalletSource)
}
