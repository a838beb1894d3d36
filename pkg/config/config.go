package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"signer-core/pkg/validator"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Link    LinkConfig    `mapstructure:"link"`
	Wallet  WalletConfig  `mapstructure:"wallet"`
	Display DisplayConfig `mapstructure:"display"`
	Signing SigningConfig `mapstructure:"signing"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type AppConfig struct {
	Env       string `mapstructure:"env" validate:"oneof=development production"`
	Name      string `mapstructure:"name" validate:"required"`
	Version   string `mapstructure:"version" validate:"required"`
	LogLevel  string `mapstructure:"log_level"`
	Copyright string `mapstructure:"copyright"` // Infos menu
	Authors   string `mapstructure:"authors"`
}

type LinkConfig struct {
	Addr         string        `mapstructure:"addr" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gte=0"`  // 0 waits forever for the next command
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gte=0"` // applies to replies only
}

type WalletConfig struct {
	Mnemonic       string `mapstructure:"mnemonic"`
	Passphrase     string `mapstructure:"passphrase"`
	KeystorePath   string `mapstructure:"keystore_path"` // encrypted mnemonic, used when mnemonic is empty
	Password       string `mapstructure:"password"`      // keystore password, usually WALLET_PASSWORD
	DerivationPath string `mapstructure:"derivation_path" validate:"required,startswith=m/"`
	Network        string `mapstructure:"network" validate:"oneof=mainnet testnet regtest"`
}

type DisplayConfig struct {
	HideMemo bool `mapstructure:"hide_memo"`
}

type SigningConfig struct {
	Digest string `mapstructure:"digest" validate:"oneof=sha256 keccak256 blake3"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"` // empty disables the side server
}

var Global Config

// ErrNoWalletSource is returned when neither a mnemonic nor a keystore is configured.
var ErrNoWalletSource = errors.New("config: wallet.mnemonic or wallet.keystore_path must be set")

// Init loads config.yaml from the working directory (or ./config), overlays
// environment variables and validates the result into Global. fromFile
// reports whether a config file was found.
func Init(paths ...string) (fromFile bool, err error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	fromFile = true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return false, fmt.Errorf("read config file: %w", err)
		}
		fromFile = false
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fromFile, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return fromFile, err
	}

	Global = cfg
	return fromFile, nil
}

// Validate checks struct tags and the cross-field wallet source rule.
func Validate(cfg *Config) error {
	if err := validator.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Wallet.Mnemonic == "" && cfg.Wallet.KeystorePath == "" {
		return ErrNoWalletSource
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.name", "signer-core")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.copyright", "2020 Ledger")
	v.SetDefault("app.authors", "???")

	v.SetDefault("link.addr", "127.0.0.1:9999")
	v.SetDefault("link.read_timeout", 0)
	v.SetDefault("link.write_timeout", 5*time.Second)

	v.SetDefault("wallet.derivation_path", "m/44'/535348'/0'/0/0")
	v.SetDefault("wallet.network", "mainnet")
	v.SetDefault("wallet.mnemonic", "")
	v.SetDefault("wallet.passphrase", "")
	v.SetDefault("wallet.keystore_path", "")
	v.SetDefault("wallet.password", "")

	v.SetDefault("display.hide_memo", false)
	v.SetDefault("signing.digest", "sha256")
	v.SetDefault("metrics.addr", "")
}
