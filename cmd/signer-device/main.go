package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"signer-core/internal/handler"
	"signer-core/internal/server"
	"signer-core/internal/service"
	"signer-core/internal/ui"
	"signer-core/pkg/address"
	"signer-core/pkg/bip32"
	"signer-core/pkg/bip39"
	"signer-core/pkg/config"
	"signer-core/pkg/crypto_util"
	"signer-core/pkg/keystore"
	"signer-core/pkg/kms"
	"signer-core/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 0. Config
	fromFile, err := config.Init()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	cfg := config.Global

	// 1. Logger
	if err := logger.Init(cfg.App.Env, cfg.App.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return 1
	}
	defer logger.Sync()
	if !fromFile {
		logger.Warn("config.yaml not found, using defaults and environment")
	}

	// 2. Seed, from the mnemonic or the encrypted keystore
	seed, err := loadSeed(cfg.Wallet)
	if err != nil {
		logger.Error("wallet seed unavailable", zap.Error(err))
		return 1
	}
	network, err := bip32.NetworkParams(cfg.Wallet.Network)
	if err != nil {
		logger.Error("invalid network", zap.Error(err))
		return 1
	}

	// 3. Key manager owns the only copy of the seed from here on
	keys, err := kms.NewLocalKMS(seed, network)
	clear(seed)
	if err != nil {
		logger.Error("key manager init failed", zap.Error(err))
		return 1
	}
	defer keys.Close()

	// 4. Derivation path, parsed once
	path, err := bip32.ParsePath(cfg.Wallet.DerivationPath)
	if err != nil {
		logger.Error("invalid derivation path", zap.Error(err))
		return 1
	}
	digest, err := crypto_util.ParseDigest(cfg.Signing.Digest)
	if err != nil {
		logger.Error("invalid digest", zap.Error(err))
		return 1
	}

	// 5. Holder display
	display, restore, err := ui.NewConsole()
	if err != nil {
		logger.Error("display init failed", zap.Error(err))
		return 1
	}
	defer restore()

	// 6. Services and dispatcher
	review := service.NewReviewService(display, func() service.ReviewConfig {
		return service.ReviewConfig{HideMemo: config.Global.Display.HideMemo}
	})
	signing := service.NewSigningService(keys, digest)
	menu := service.NewMenuService(display, keys,
		address.NewBTCGenerator(network), address.NewETHGenerator(),
		service.Infos{Copyright: cfg.App.Copyright, Authors: cfg.App.Authors})
	h := handler.NewAPDUHandler(keys, review, signing, menu, display, path)

	logger.Info("signer ready",
		zap.String("path", path.String()),
		zap.String("digest", string(digest)),
		zap.String("network", network.Name),
		zap.Bool("hide_memo", cfg.Display.HideMemo),
	)

	// 7. Link server (+ metrics side server)
	var router *gin.Engine
	if cfg.Metrics.Addr != "" {
		gin.SetMode(gin.ReleaseMode)
		router = server.NewHTTPRouter()
	}
	app := server.New(server.Config{
		Link: server.LinkConfig{
			Addr:         cfg.Link.Addr,
			ReadTimeout:  cfg.Link.ReadTimeout,
			WriteTimeout: cfg.Link.WriteTimeout,
		},
		MetricsAddr: cfg.Metrics.Addr,
	}, h, router)

	// 8. Run until Exit, a signal or a fatal link error
	err = app.Run(context.Background())
	switch {
	case err == nil, errors.Is(err, handler.ErrExit):
		logger.Info("signer exited")
		return 0
	default:
		logger.Error("signer stopped", zap.Error(err))
		return 1
	}
}

func loadSeed(w config.WalletConfig) ([]byte, error) {
	mnemonics := bip39.NewMnemonicService()
	if w.Mnemonic != "" {
		return mnemonics.MnemonicToSeed(w.Mnemonic, w.Passphrase)
	}

	encrypted, err := keystore.LoadFromFile(w.KeystorePath)
	if err != nil {
		return nil, err
	}

	password := []byte(w.Password)
	if len(password) == 0 {
		if password, err = promptPassword(); err != nil {
			return nil, err
		}
	}
	defer clear(password)

	mnemonic, err := keystore.DecryptMnemonic(encrypted, password)
	if err != nil {
		return nil, err
	}
	return mnemonics.MnemonicToSeed(mnemonic, w.Passphrase)
}

func promptPassword() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("keystore password required: set WALLET_PASSWORD or run on a terminal")
	}
	fmt.Fprint(os.Stderr, "Keystore password: ")
	defer fmt.Fprintln(os.Stderr)
	return term.ReadPassword(fd)
}
