package service

import (
	"signer-core/internal/ui"
	"signer-core/pkg/bip32"
)

type fakeDisplay struct {
	approve  bool
	menu     []int // scripted ShowMenu answers, -1 once exhausted
	reviews  []ui.Review
	popups   []string
	messages []string
}

func (d *fakeDisplay) ShowReview(r ui.Review) bool {
	d.reviews = append(d.reviews, r)
	return d.approve
}

func (d *fakeDisplay) Popup(msg string) { d.popups = append(d.popups, msg) }

func (d *fakeDisplay) ShowMenu(items []string) int {
	if len(d.menu) == 0 {
		return -1
	}
	n := d.menu[0]
	d.menu = d.menu[1:]
	return n
}

func (d *fakeDisplay) ScrollMessage(msg string) { d.messages = append(d.messages, msg) }

type fakeKeys struct {
	pub     []byte
	sig     []byte
	err     error
	digests [][]byte
	paths   []bip32.Path
}

func (k *fakeKeys) PublicKey(path bip32.Path) ([]byte, error) {
	k.paths = append(k.paths, path)
	return k.pub, k.err
}

func (k *fakeKeys) Sign(path bip32.Path, digest []byte) ([]byte, error) {
	k.paths = append(k.paths, path)
	k.digests = append(k.digests, append([]byte(nil), digest...))
	return k.sig, k.err
}
