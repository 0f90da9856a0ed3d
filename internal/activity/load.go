package activity

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/jetkvm/remote/internal/hid"
	"gopkg.in/yaml.v3"
)

type fileAction struct {
	HID  string `yaml:"hid"`
	Code string `yaml:"code,omitempty"`
	Char string `yaml:"char,omitempty"`
	Icon string `yaml:"icon,omitempty"`
}

type fileActivity struct {
	Name             string                 `yaml:"name"`
	ShowMouseMessage bool                   `yaml:"show_mouse_message"`
	Buttons          map[string]*fileAction `yaml:"buttons"`
}

type fileTable struct {
	Activities []fileActivity `yaml:"activities"`
}

// LoadFile reads an activity table from a YAML file.
func LoadFile(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read activities file: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML activity table, for example:
//
//	activities:
//	  - name: Media
//	    show_mouse_message: true
//	    buttons:
//	      L1: {hid: mouse, code: LEFT_BUTTON, icon: LEFT_MOUSE}
//	      R2: {hid: consumer_control, code: VOLUME_INCREMENT}
//	      SELECT: {hid: keyboard_layout, char: " "}
//
// Buttons that are left out, or set to null, are unmapped.
func Parse(b []byte) (*Table, error) {
	var ft fileTable
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&ft); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTable
		}
		return nil, fmt.Errorf("decode activities yaml: %w", err)
	}

	activities := make([]Activity, 0, len(ft.Activities))
	for i, fa := range ft.Activities {
		a, err := fa.toActivity()
		if err != nil {
			return nil, fmt.Errorf("activity %d (%s): %w", i+1, fa.Name, err)
		}
		activities = append(activities, a)
	}
	return NewTable(activities...)
}

func (fa fileActivity) toActivity() (Activity, error) {
	a := Activity{Name: fa.Name, ShowMouseMessage: fa.ShowMouseMessage}

	names := make([]string, 0, len(fa.Buttons))
	for name := range fa.Buttons {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b, err := ParseButton(name)
		if err != nil {
			return Activity{}, err
		}
		fact := fa.Buttons[name]
		if fact == nil {
			continue
		}
		action, err := fact.toAction()
		if err != nil {
			return Activity{}, fmt.Errorf("button %s: %w", name, err)
		}
		a.Mapping[b] = action
	}
	return a, nil
}

func (f *fileAction) toAction() (*Action, error) {
	switch f.HID {
	case "keyboard":
		code, err := hid.ParseKeycode(f.Code)
		if err != nil {
			return nil, err
		}
		return KeyboardAction(code, f.Icon), nil

	case "keyboard_layout":
		if utf8.RuneCountInString(f.Char) != 1 {
			return nil, fmt.Errorf("keyboard_layout needs exactly one char, got %q", f.Char)
		}
		r, _ := utf8.DecodeRuneInString(f.Char)
		return LayoutAction(r, f.Icon), nil

	case "consumer_control":
		code, err := hid.ParseConsumerCode(f.Code)
		if err != nil {
			return nil, err
		}
		return ConsumerAction(code, f.Icon), nil

	case "mouse":
		button, err := hid.ParseMouseButton(f.Code)
		if err != nil {
			return nil, err
		}
		return MouseAction(button, f.Icon), nil
	}
	return nil, fmt.Errorf("unknown hid type %q", f.HID)
}
