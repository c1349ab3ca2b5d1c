package planglist

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed languages.toml
var languagesToml []byte

type ProgrLang struct {
	ID           string `toml:"id"`
	FullName     string `toml:"display"`
	JudgeID      string `toml:"judge_id"`      // language name understood by the judge
	JudgeVersion string `toml:"judge_version"` // runtime version understood by the judge
	MonacoId     string `toml:"monaco_id"`
	Enabled      bool   `toml:"enabled"`
	HelloWorld   string `toml:"hello_world"`
}

type catalogue struct {
	Languages []ProgrLang `toml:"languages"`
}

var (
	loadOnce sync.Once
	langs    []ProgrLang
	loadErr  error
)

// ParseCatalogue decodes a TOML language catalogue.
func ParseCatalogue(data []byte) ([]ProgrLang, error) {
	var c catalogue
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse language catalogue: %w", err)
	}
	seen := make(map[string]bool, len(c.Languages))
	for _, l := range c.Languages {
		if l.ID == "" || l.JudgeID == "" {
			return nil, fmt.Errorf("language entry %q is missing id or judge_id", l.FullName)
		}
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate language id %q", l.ID)
		}
		seen[l.ID] = true
	}
	return c.Languages, nil
}

func all() ([]ProgrLang, error) {
	loadOnce.Do(func() {
		langs, loadErr = ParseCatalogue(languagesToml)
	})
	return langs, loadErr
}

// ListProgrLangs returns every language of the catalogue, enabled or not.
func ListProgrLangs() ([]ProgrLang, error) {
	l, err := all()
	if err != nil {
		return nil, err
	}
	res := make([]ProgrLang, len(l))
	copy(res, l)
	return res, nil
}

// GetProgrLangById returns an enabled language or ErrInvalidProgLang.
func GetProgrLangById(id string) (ProgrLang, error) {
	l, err := all()
	if err != nil {
		return ProgrLang{}, err
	}
	for _, lang := range l {
		if lang.ID == id && lang.Enabled {
			return lang, nil
		}
	}
	return ProgrLang{}, ErrInvalidProgLang(id)
}
