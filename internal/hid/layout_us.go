package hid

type usKey struct {
	code  Keycode
	shift bool
}

// USLayout types printable ASCII on a US English keyboard.
type USLayout struct{}

var usLayout = func() map[rune]usKey {
	m := map[rune]usKey{
		' ':  {KeySpace, false},
		'\n': {KeyReturn, false},
		'\r': {KeyReturn, false},
		'\t': {KeyTab, false},
		'\b': {KeyBackspace, false},
		0x1b: {KeyEscape, false},
		0x7f: {KeyDelete, false},
	}
	for i := 0; i < 26; i++ {
		m[rune('a'+i)] = usKey{KeyA + Keycode(i), false}
		m[rune('A'+i)] = usKey{KeyA + Keycode(i), true}
	}
	for i, r := range "1234567890" {
		m[r] = usKey{Key1 + Keycode(i), false}
	}
	for i, r := range "!@#$%^&*()" {
		m[r] = usKey{Key1 + Keycode(i), true}
	}
	symbols := []struct {
		plain, shifted rune
		code           Keycode
	}{
		{'-', '_', KeyMinus},
		{'=', '+', KeyEquals},
		{'[', '{', KeyLeftBracket},
		{']', '}', KeyRightBracket},
		{'\\', '|', KeyBackslash},
		{';', ':', KeySemicolon},
		{'\'', '"', KeyQuote},
		{'`', '~', KeyGrave},
		{',', '<', KeyComma},
		{'.', '>', KeyPeriod},
		{'/', '?', KeySlash},
	}
	for _, s := range symbols {
		m[s.plain] = usKey{s.code, false}
		m[s.shifted] = usKey{s.code, true}
	}
	return m
}()

// KeycodesFor returns the chord for ch, shift first when it is needed.
func (USLayout) KeycodesFor(ch rune) ([]Keycode, error) {
	k, ok := usLayout[ch]
	if !ok {
		return nil, &UnmappedCharacterError{Char: ch, Layout: "us"}
	}
	if k.shift {
		return []Keycode{KeyLeftShift, k.code}, nil
	}
	return []Keycode{k.code}, nil
}
