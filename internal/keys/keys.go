// Package keys resolves symbolic key and modifier names from the
// configuration into the numeric codes the global hotkey provider expects.
package keys

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Table selects which lookup table a name is resolved against.
type Table int

const (
	KeyTable Table = iota
	ModifierTable
)

func (t Table) String() string {
	if t == ModifierTable {
		return "modifier"
	}
	return "key"
}

// ErrInvalidKeybinding is matched by every InvalidKeybindingError.
var ErrInvalidKeybinding = errors.New("invalid keybinding")

// InvalidKeybindingError reports a configured name that is absent from
// its lookup table.
type InvalidKeybindingError struct {
	Field  string // configuration field, e.g. "toggle_mod"
	Name   string
	Table  Table
	Source string // configuration file the name came from, if known
}

func (e *InvalidKeybindingError) Error() string {
	msg := fmt.Sprintf("%q is not a valid %s", e.Name, e.Table)
	if e.Field != "" {
		msg += " for " + e.Field
	}
	if e.Source != "" {
		msg += " in " + e.Source
	}
	return msg
}

func (e *InvalidKeybindingError) Is(target error) bool {
	return target == ErrInvalidKeybinding
}

// Binding is a symbolic key and modifier pair as written in the config.
type Binding struct {
	Key      string
	Modifier string
}

// Combo is a resolved binding.
type Combo struct {
	Key  uint32
	Mods uint32
}

// keyCodes maps lower-case key names to provider key codes and
// modifierMasks maps modifier names to provider masks. Both are built in
// the platform files:
// - codes_windows.go (virtual-key codes, MOD_* flags)
// - codes_linux.go (X11 keysyms, X11 modifier masks)
// - codes_darwin.go (Carbon key codes and modifier flags)
var (
	keyCodes      = platformKeyCodes()
	modifierMasks = platformModifierMasks()
)

// addRun names a contiguous run of single-character keys.
func addRun(codes map[string]uint32, first, last rune, base uint32) {
	for r := first; r <= last; r++ {
		codes[string(r)] = base + uint32(r-first)
	}
}

// addFunctionKeys names f1..f12 for platforms where they are contiguous.
func addFunctionKeys(codes map[string]uint32, f1 uint32) {
	for i := 1; i <= 12; i++ {
		codes[fmt.Sprintf("f%d", i)] = f1 + uint32(i-1)
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve looks name up in the given table. Modifier names may be joined
// with "+" and resolve to the union of their masks.
func Resolve(name string, table Table) (uint32, error) {
	n := normalize(name)
	invalid := &InvalidKeybindingError{Name: name, Table: table}

	if table == KeyTable {
		code, ok := keyCodes[n]
		if !ok {
			return 0, invalid
		}
		return code, nil
	}

	var mask uint32
	for _, part := range strings.Split(n, "+") {
		m, ok := modifierMasks[strings.TrimSpace(part)]
		if !ok {
			return 0, invalid
		}
		mask |= m
	}
	return mask, nil
}

// ResolveBinding resolves both halves of b. field names the configuration
// entry for the key; the modifier entry is reported as field+"_mod".
func ResolveBinding(field string, b Binding) (Combo, error) {
	key, err := Resolve(b.Key, KeyTable)
	if err != nil {
		return Combo{}, withField(err, field)
	}
	mods, err := Resolve(b.Modifier, ModifierTable)
	if err != nil {
		return Combo{}, withField(err, field+"_mod")
	}
	return Combo{Key: key, Mods: mods}, nil
}

func withField(err error, field string) error {
	var ke *InvalidKeybindingError
	if errors.As(err, &ke) {
		ke.Field = field
	}
	return err
}

// KeyNames returns every bindable key name, sorted.
func KeyNames() []string {
	return sortedKeys(keyCodes)
}

// ModifierNames returns every modifier name, sorted.
func ModifierNames() []string {
	return sortedKeys(modifierMasks)
}

// Describe renders b the way users write it, e.g. "ctrl+f9".
func Describe(b Binding) string {
	mod := normalize(b.Modifier)
	if mod == "" || mod == "none" {
		return normalize(b.Key)
	}
	return mod + "+" + normalize(b.Key)
}

func sortedKeys(m map[string]uint32) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
