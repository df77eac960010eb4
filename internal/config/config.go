package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultOutputDir = "release_notes"
	defaultProvider  = "openai"
)

// Repo identifies one repository to generate release notes for
type Repo struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
}

// FullName returns the owner/name form of the repository
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// Config holds all configuration for one generation run
type Config struct {
	GitHubToken string
	OpenAIKey   string
	GeminiKey   string
	OllamaHost  string

	Repos            []Repo
	Since            string // Raw window start, parsed by derive.Window
	Until            string // Raw window end
	OutputDir        string
	Provider         string
	Model            string
	SkipMergeCommits bool

	Verbose bool
	Quiet   bool
}

// Flags carries the CLI flag values that override the config file
type Flags struct {
	ConfigPath string
	Repos      []string // owner/name entries
	Since      string
	Until      string
	OutputDir  string
	Provider   string
	Model      string
	Verbose    bool
	Quiet      bool
}

// fileConfig mirrors the YAML config file layout
type fileConfig struct {
	Repos     []Repo `yaml:"repos"`
	DateRange struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"date_range"`
	OutputDir        string `yaml:"output_dir"`
	Provider         string `yaml:"provider"`
	Model            string `yaml:"model"`
	SkipMergeCommits bool   `yaml:"skip_merge_commits"`
}

// Load builds the run configuration from the environment, an optional YAML
// config file, and CLI flags. Flags win over the file; the file wins over
// defaults. Credentials come only from the environment.
func Load(flags Flags) (*Config, error) {
	// Load environment variables from .env if present
	_ = godotenv.Load()

	config := &Config{
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		OllamaHost:  os.Getenv("OLLAMA_HOST"),
		OutputDir:   defaultOutputDir,
		Provider:    defaultProvider,
		Verbose:     flags.Verbose && !flags.Quiet,
		Quiet:       flags.Quiet,
	}

	if err := applyFile(config, flags.ConfigPath); err != nil {
		return nil, err
	}
	if err := applyFlags(config, flags); err != nil {
		return nil, err
	}

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyFile merges the YAML config file into config. A missing file is only
// an error when its path was given explicitly.
func applyFile(config *Config, path string) error {
	explicit := path != ""
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	config.Repos = file.Repos
	config.Since = file.DateRange.Start
	config.Until = file.DateRange.End
	config.SkipMergeCommits = file.SkipMergeCommits
	if file.OutputDir != "" {
		config.OutputDir = file.OutputDir
	}
	if file.Provider != "" {
		config.Provider = file.Provider
	}
	if file.Model != "" {
		config.Model = file.Model
	}

	return nil
}

// applyFlags merges CLI flag values over the file-derived config
func applyFlags(config *Config, flags Flags) error {
	if len(flags.Repos) > 0 {
		repos := make([]Repo, 0, len(flags.Repos))
		for _, raw := range flags.Repos {
			repo, err := ParseRepo(raw)
			if err != nil {
				return err
			}
			repos = append(repos, repo)
		}
		config.Repos = repos
	}

	if flags.Since != "" {
		config.Since = flags.Since
	}
	if flags.Until != "" {
		config.Until = flags.Until
	}
	if flags.OutputDir != "" {
		config.OutputDir = flags.OutputDir
	}
	if flags.Provider != "" {
		config.Provider = flags.Provider
	}
	if flags.Model != "" {
		config.Model = flags.Model
	}

	return nil
}

// ParseRepo parses an owner/name repository reference
func ParseRepo(raw string) (Repo, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repo{}, fmt.Errorf("invalid repository %q, expected owner/name", raw)
	}
	return Repo{Owner: owner, Name: name}, nil
}

// validate checks that everything the pipeline needs is present before any
// fetch or summarize work begins
func validate(config *Config) error {
	if config.GitHubToken == "" {
		return errors.New("GITHUB_TOKEN environment variable is required")
	}
	if len(config.Repos) == 0 {
		return errors.New("no repositories configured: use --repo or the config file")
	}
	for _, repo := range config.Repos {
		if repo.Owner == "" || repo.Name == "" {
			return fmt.Errorf("incomplete repository entry %q", repo.FullName())
		}
	}
	if config.Since == "" || config.Until == "" {
		return errors.New("a date window is required: use --since/--until or the config file")
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return errors.New("OPENAI_API_KEY environment variable is required for the openai provider")
		}
	case "gemini", "google":
		if config.GeminiKey == "" {
			return errors.New("GEMINI_API_KEY environment variable is required for the gemini provider")
		}
	case "ollama", "none":
		// No credential needed
	default:
		return fmt.Errorf("unknown summarization provider: %s", config.Provider)
	}

	return nil
}
