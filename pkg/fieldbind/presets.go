package fieldbind

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/fieldbind/pkg/platform"
)

// Preset describes a reusable text field appearance and behavior, usually
// loaded from a fieldbind.yaml file.
type Preset struct {
	Placeholder      string  `yaml:"placeholder,omitempty"`
	FontFamily       string  `yaml:"fontFamily,omitempty"`
	FontSize         float64 `yaml:"fontSize,omitempty"`
	TextColor        uint32  `yaml:"textColor,omitempty"`
	PlaceholderColor uint32  `yaml:"placeholderColor,omitempty"`
	MaxLength        int     `yaml:"maxLength,omitempty"`
	Secure           bool    `yaml:"secure,omitempty"`
	Autocorrect      bool    `yaml:"autocorrect,omitempty"`
	ClearButton      bool    `yaml:"clearButton,omitempty"`

	// Keyboard selects the keyboard type: text, number, phone, email or url.
	// Empty means text.
	Keyboard string `yaml:"keyboard,omitempty"`

	// ReturnKey selects the return key label: default, done, go, next,
	// search or send. Empty means default.
	ReturnKey string `yaml:"returnKey,omitempty"`
}

// Presets is a named collection of field presets.
type Presets struct {
	Fields map[string]Preset `yaml:"fields"`
}

// LoadPresets reads a preset file if present.
// A missing file yields an empty preset set.
func LoadPresets(path string) (*Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Presets{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParsePresets(data)
}

// ParsePresets parses YAML preset data.
func ParsePresets(data []byte) (*Presets, error) {
	var p Presets
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	return &p, nil
}

// Get returns the preset with the given name.
func (p *Presets) Get(name string) (Preset, bool) {
	preset, ok := p.Fields[name]
	return preset, ok
}

// Config converts the preset to a native text field configuration.
func (p Preset) Config() (platform.TextFieldConfig, error) {
	keyboard, err := parseKeyboard(p.Keyboard)
	if err != nil {
		return platform.TextFieldConfig{}, err
	}
	returnKey, err := parseReturnKey(p.ReturnKey)
	if err != nil {
		return platform.TextFieldConfig{}, err
	}

	return platform.TextFieldConfig{
		FontFamily:       p.FontFamily,
		FontSize:         p.FontSize,
		TextColor:        p.TextColor,
		PlaceholderColor: p.PlaceholderColor,
		MaxLength:        p.MaxLength,
		Secure:           p.Secure,
		Autocorrect:      p.Autocorrect,
		ClearButton:      p.ClearButton,
		KeyboardType:     keyboard,
		ReturnKeyType:    returnKey,
		Placeholder:      p.Placeholder,
	}, nil
}

func parseKeyboard(s string) (platform.KeyboardType, error) {
	switch s {
	case "", "text":
		return platform.KeyboardTypeText, nil
	case "number":
		return platform.KeyboardTypeNumber, nil
	case "phone":
		return platform.KeyboardTypePhone, nil
	case "email":
		return platform.KeyboardTypeEmail, nil
	case "url":
		return platform.KeyboardTypeURL, nil
	default:
		return 0, fmt.Errorf("unknown keyboard type %q", s)
	}
}

func parseReturnKey(s string) (platform.ReturnKeyType, error) {
	switch s {
	case "", "default":
		return platform.ReturnKeyDefault, nil
	case "done":
		return platform.ReturnKeyDone, nil
	case "go":
		return platform.ReturnKeyGo, nil
	case "next":
		return platform.ReturnKeyNext, nil
	case "search":
		return platform.ReturnKeySearch, nil
	case "send":
		return platform.ReturnKeySend, nil
	default:
		return 0, fmt.Errorf("unknown return key type %q", s)
	}
}

// NewBoundField creates a native text field from a preset and returns the
// field together with its binding.
func NewBoundField(preset Preset) (*platform.TextField, *Binding, error) {
	config, err := preset.Config()
	if err != nil {
		return nil, nil, err
	}

	view, err := platform.GetPlatformViewRegistry().Create("text_field", config.Params())
	if err != nil {
		return nil, nil, err
	}
	field, ok := view.(*platform.TextField)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected view type %T for text_field", view)
	}

	return field, Bind(field), nil
}
