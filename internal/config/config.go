// Package config manages YAML-based configuration, CLI flags, and environment
// overrides for the index generator.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Scan strategies. Recursive walks the whole tree; Modules lists only the
// immediate children of the configured module folders.
const (
	ModeRecursive = "recursive"
	ModeModules   = "modules"
)

// Site holds the identity strings stamped on every generated page.
type Site struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Credit   string `yaml:"credit"`
}

// Theme holds the color palette used by the generated pages.
type Theme struct {
	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary"`
	Beige      string `yaml:"beige"`
	Sand       string `yaml:"sand"`
	Background string `yaml:"background"`
	Text       string `yaml:"text"`
}

// Config holds all configuration options for the generator.
type Config struct {
	// Root is the directory to scan and write index pages into.
	Root string `yaml:"root"`

	// BaseURL is prepended to every generated link, without trailing slash.
	BaseURL string `yaml:"base_url"`

	// Mode selects the scan strategy: "recursive" or "modules".
	Mode string `yaml:"mode"`

	// Modules is the fixed folder list used by the "modules" strategy.
	Modules []string `yaml:"modules"`

	IgnoreDirs  []string `yaml:"ignore_dirs"`
	IgnoreFiles []string `yaml:"ignore_files"`

	// Tags is the controlled vocabulary matched against file names, paths
	// and HTML content.
	Tags []string `yaml:"tags"`

	Site  Site  `yaml:"site"`
	Theme Theme `yaml:"theme"`

	Watch bool `yaml:"watch"`

	// Internal: path of the loaded config file, if any.
	configPath string
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	modules := make([]string, 0, 12)
	for i := 0; i < 11; i++ {
		modules = append(modules, fmt.Sprintf("Module %d", i))
	}
	modules = append(modules, "Outils")

	return &Config{
		Root:        ".",
		BaseURL:     "",
		Mode:        ModeRecursive,
		Modules:     modules,
		IgnoreDirs:  []string{".git", ".github", "node_modules", "__pycache__", ".DS_Store"},
		IgnoreFiles: []string{".gitignore", ".gitattributes", "README.md", "CNAME"},
		Tags: []string{
			// Quiz categories
			"sommeil", "travail", "famille", "tâches", "solo", "social", "couple",
			// Themes
			"communication", "organisation", "intimité", "sexualité",
			"gestion", "conflits", "émotions", "temps", "activités",
			"famille-origine", "enfants", "loisirs", "quotidien",
			// Levels and resource types
			"débutant", "intermédiaire", "avancé", "exercice",
			"questionnaire", "ressource", "documentation",
			// Module folders
			"module-1", "module-2", "module-3", "module-4", "module-5",
			"module-6", "module-7", "module-8", "module-9", "module-10",
		},
		Site: Site{
			Title:    "Institut du Couple",
			Subtitle: "Base de Connaissances et Ressources Pédagogiques",
			Credit:   "Bilan de Compétences du Couple - Marie-Christine Abatte Psychologue",
		},
		Theme: Theme{
			Primary:    "#8FAFB1",
			Secondary:  "#C8D0C3",
			Beige:      "#D8CDBB",
			Sand:       "#E6D7C3",
			Background: "#FFFFFF",
			Text:       "#333333",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// environment variables, and command line flags, in that order.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := DefaultConfig()

	// A .env next to the binary may carry the environment overrides.
	_ = godotenv.Load()

	flags := flag.NewFlagSet("indexgen", flag.ExitOnError)
	root := flags.String("root", "", "directory to scan and write indexes into")
	baseURL := flags.String("base-url", "", "base URL prepended to generated links")
	mode := flags.String("mode", "", "scan strategy: recursive or modules")
	watch := flags.Bool("watch", false, "regenerate on file changes")
	configFile := flags.String("config", "", "configuration file path")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// Determine config file path.
	var cfgPath string
	if *configFile != "" {
		cfgPath = *configFile
	} else if _, err := os.Stat("indexgen.yaml"); err == nil {
		cfgPath = "indexgen.yaml"
	}

	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil {
			// Only fail when the user explicitly asked for this file.
			if *configFile != "" {
				return nil, err
			}
		} else {
			cfg.configPath = cfgPath
		}
	}

	// Environment overrides config file.
	if v := os.Getenv("INDEXGEN_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv("INDEXGEN_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}

	// Command line flags override everything (only if explicitly set).
	// The bool flag needs Visit: "-watch=false" must beat a YAML
	// "watch: true", which a zero-value check cannot see.
	watchSet := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "watch" {
			watchSet = true
		}
	})

	if *root != "" {
		cfg.Root = *root
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if watchSet {
		cfg.Watch = *watch
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

// Validate checks the configuration for values the generator cannot work with.
func (c *Config) Validate() error {
	if c.Mode != ModeRecursive && c.Mode != ModeModules {
		return fmt.Errorf("unknown scan mode %q (want %q or %q)", c.Mode, ModeRecursive, ModeModules)
	}
	if c.Root == "" {
		return fmt.Errorf("root directory must not be empty")
	}
	return nil
}

// ConfigFilePath returns the path of the loaded config file, or "" if the
// configuration came from defaults and flags only.
func (c *Config) ConfigFilePath() string {
	return c.configPath
}

// IsIgnoredDir reports whether a directory with the given base name is
// excluded from scanning.
func (c *Config) IsIgnoredDir(name string) bool {
	for _, d := range c.IgnoreDirs {
		if name == d {
			return true
		}
	}
	return false
}

// IsIgnoredFile reports whether a file with the given base name is excluded
// from indexing. Generated index pages are always input-excluded.
func (c *Config) IsIgnoredFile(name string) bool {
	if name == "index.html" {
		return true
	}
	for _, f := range c.IgnoreFiles {
		if name == f {
			return true
		}
	}
	return false
}
