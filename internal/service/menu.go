package service

import (
	"encoding/hex"

	"signer-core/internal/ui"
	"signer-core/pkg/address"
	"signer-core/pkg/bip32"
	"signer-core/pkg/logger"

	"go.uber.org/zap"
)

// Infos is the content of the Infos submenu.
type Infos struct {
	Copyright string
	Authors   string
}

var (
	mainMenu  = []string{"PubKey", "Address", "Infos", "Back", "Exit App"}
	infosMenu = []string{"Copyright", "Authors", "Back"}
)

const (
	menuPubKey = iota
	menuAddress
	menuInfos
	menuBack
	menuExit
)

// MenuService is the navigation loop behind the Menu instruction. It never
// touches a signing session.
type MenuService struct {
	display ui.Display
	keys    KeyDeriver
	btc     address.Generator
	eth     address.Generator
	infos   Infos
}

func NewMenuService(display ui.Display, keys KeyDeriver, btc, eth address.Generator, infos Infos) *MenuService {
	return &MenuService{display: display, keys: keys, btc: btc, eth: eth, infos: infos}
}

// Run blocks until the holder leaves the menu. exit reports "Exit App".
func (m *MenuService) Run(path bip32.Path) (exit bool) {
	for {
		switch m.display.ShowMenu(mainMenu) {
		case menuPubKey:
			m.showPubKey(path)
		case menuAddress:
			m.showAddresses(path)
		case menuInfos:
			m.runInfos()
		case menuExit:
			return true
		default: // Back, or input gone
			return false
		}
	}
}

// showPubKey shows the X and Y coordinates as two messages.
func (m *MenuService) showPubKey(path bip32.Path) {
	pk, err := m.keys.PublicKey(path)
	if err != nil || len(pk) != 65 {
		logger.Error("menu: public key unavailable", zap.Error(err))
		m.display.Popup("Error")
		return
	}
	m.display.ScrollMessage(hex.EncodeToString(pk[1:33]))
	m.display.ScrollMessage(hex.EncodeToString(pk[33:65]))
}

func (m *MenuService) showAddresses(path bip32.Path) {
	pk, err := m.keys.PublicKey(path)
	if err != nil {
		logger.Error("menu: public key unavailable", zap.Error(err))
		m.display.Popup("Error")
		return
	}
	for _, g := range []struct {
		name string
		gen  address.Generator
	}{{"BTC", m.btc}, {"ETH", m.eth}} {
		if g.gen == nil {
			continue
		}
		addr, err := g.gen.PubKeyToAddress(pk)
		if err != nil {
			logger.Error("menu: address encoding failed", zap.String("chain", g.name), zap.Error(err))
			m.display.Popup("Error")
			continue
		}
		m.display.ScrollMessage(g.name + " " + addr)
	}
}

func (m *MenuService) runInfos() {
	for {
		switch m.display.ShowMenu(infosMenu) {
		case 0:
			m.display.Popup(m.infos.Copyright)
		case 1:
			m.display.Popup(m.infos.Authors)
		default:
			return
		}
	}
}
