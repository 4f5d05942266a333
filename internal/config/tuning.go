package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/DigSite_Go/internal/dig"
	"github.com/osse101/DigSite_Go/internal/pity"
	"github.com/osse101/DigSite_Go/internal/session"
)

// Tuning is the game balance loaded from the tuning file. Sections missing
// from the file keep their defaults.
type Tuning struct {
	Dig     dig.Config     `yaml:"dig"`
	Session session.Config `yaml:"session"`
	Pity    pity.Config    `yaml:"pity"`
}

// DefaultTuning returns the shipped balance
func DefaultTuning() *Tuning {
	return &Tuning{
		Dig:     dig.DefaultConfig(),
		Session: session.DefaultConfig(),
		Pity:    pity.Config{Threshold: pity.DefaultThreshold},
	}
}

// LoadTuning reads path over the defaults. A missing file is not an error.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadTuningFailed, err)
	}

	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf(ErrMsgParseTuningFailed, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks every section against its struct tags
func (t *Tuning) Validate() error {
	v := validator.New()
	for name, section := range map[string]any{
		"dig":     &t.Dig,
		"session": &t.Session,
		"pity":    &t.Pity,
	} {
		if err := v.Struct(section); err != nil {
			return fmt.Errorf(ErrMsgInvalidTuning, name, err)
		}
	}
	return nil
}
