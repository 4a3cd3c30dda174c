package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one RSS feed. Sources are visited in list order, which is the
// fixed priority order for the run.
type Source struct {
	Name string `yaml:"name" mapstructure:"name"`
	URL  string `yaml:"url" mapstructure:"url"`
}

type sourceFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads a standalone YAML source list, e.g.:
//
//	sources:
//	  - name: slickdeals
//	    url: https://slickdeals.net/newsearch.php?searchin=first&rss=1
func LoadSources(path string) ([]Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f sourceFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("no sources in %s", path)
	}
	for i, s := range f.Sources {
		if s.URL == "" {
			return nil, fmt.Errorf("source %d has no url", i)
		}
	}
	return f.Sources, nil
}
