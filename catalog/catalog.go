package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/MrEthical07/goSecurity/failure"
)

// ErrUnsupportedMethod is returned by Resolve for names outside the table.
var ErrUnsupportedMethod = errors.New("the algorithm is not supported")

// Mode is the block-cipher mode of operation of a Method.
type Mode string

const (
	ModeCBC        Mode = "cbc"
	ModeCFB        Mode = "cfb"
	ModeCFB1       Mode = "cfb1"
	ModeCFB8       Mode = "cfb8"
	ModeCTR        Mode = "ctr"
	ModeECB        Mode = "ecb"
	ModeGCM        Mode = "gcm"
	ModeOCB        Mode = "ocb"
	ModeOFB        Mode = "ofb"
	ModeSIV        Mode = "siv"
	ModeWrap       Mode = "wrap"
	ModeWrapInv    Mode = "wrap-inv"
	ModeWrapPad    Mode = "wrap-pad"
	ModeWrapPadInv Mode = "wrap-pad-inv"
	ModeXTS        Mode = "xts"
)

// Default is the method used when a configuration names none.
const Default = "aes-256-cbc"

// Method is one canonical cipher identifier with its required parameter lengths in bytes.
type Method struct {
	Name   string
	Bits   int
	Mode   Mode
	KeyLen int
	IVLen  int
}

var methods = buildTable()

func buildTable() map[string]Method {
	table := make(map[string]Method, 48)
	add := func(bits int, mode Mode, keyLen, ivLen int) {
		name := fmt.Sprintf("aes-%d-%s", bits, mode)
		table[name] = Method{Name: name, Bits: bits, Mode: mode, KeyLen: keyLen, IVLen: ivLen}
	}

	for _, bits := range []int{128, 192, 256} {
		key := bits / 8
		add(bits, ModeCBC, key, 16)
		add(bits, ModeCFB, key, 16)
		add(bits, ModeCFB1, key, 16)
		add(bits, ModeCFB8, key, 16)
		add(bits, ModeCTR, key, 16)
		add(bits, ModeECB, key, 0)
		add(bits, ModeGCM, key, 12)
		add(bits, ModeOCB, key, 12)
		add(bits, ModeOFB, key, 16)
		add(bits, ModeSIV, 2*key, 0)
		add(bits, ModeWrap, key, 8)
		add(bits, ModeWrapInv, key, 8)
		add(bits, ModeWrapPad, key, 4)
		add(bits, ModeWrapPadInv, key, 4)
	}
	add(128, ModeXTS, 32, 16)
	add(256, ModeXTS, 64, 16)

	return table
}

// Normalize trims surrounding whitespace and lowercases name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve returns the Method registered under the canonical form of name.
func Resolve(name string) (Method, error) {
	canonical := Normalize(name)
	m, ok := methods[canonical]
	if !ok {
		return Method{}, failure.Wrapf(failure.KindConfiguration, "catalog.resolve", ErrUnsupportedMethod, "unsupported cipher method %q", canonical)
	}
	return m, nil
}

// KeyLength returns the key length in bytes required by name.
func KeyLength(name string) (int, error) {
	m, err := Resolve(name)
	if err != nil {
		return 0, err
	}
	return m.KeyLen, nil
}

// Methods returns every canonical method name in lexical order.
func Methods() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
