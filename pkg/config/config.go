package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"bookshelf/pkg/model"
)

const (
	DefaultConfigPath = "/etc/bookshelf/config"
	ConfigFileName    = "bookshelf.yml"
)

// Config holds all bookshelf server settings
type Config struct {
	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// TokenTTL is the access token lifetime in seconds
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// RegistrationOpen controls whether the registration endpoint accepts
	// new accounts
	RegistrationOpen bool `yaml:"registration_open" json:"registration_open"`

	// UnsafeMarkdown allows raw HTML through the post content renderer
	UnsafeMarkdown bool `yaml:"unsafe_markdown" json:"unsafe_markdown"`

	// DefaultRole is the role granted to newly registered users
	DefaultRole string `yaml:"default_role" json:"default_role"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment. The values
// are copied into the shared Config in place, so pointers previously
// returned by Get observe the new settings.
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	if globalConfig == nil {
		globalConfig = cfg
	} else {
		*globalConfig = *cfg
	}
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		TrustedProxies:   []string{},
		TokenTTL:         28800,
		RegistrationOpen: true,
		UnsafeMarkdown:   false,
		DefaultRole:      model.RoleMember.String(),
		sources:          make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("BOOKSHELF_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig fileValues
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"trusted_proxies", "token_ttl", "registration_open",
		"unsafe_markdown", "default_role",
	}
}

// fileValues mirrors Config for YAML parsing. Pointer fields distinguish
// an attribute set to its zero value from one the file omits.
type fileValues struct {
	TrustedProxies   []string `yaml:"trusted_proxies"`
	TokenTTL         *int     `yaml:"token_ttl"`
	RegistrationOpen *bool    `yaml:"registration_open"`
	UnsafeMarkdown   *bool    `yaml:"unsafe_markdown"`
	DefaultRole      string   `yaml:"default_role"`
}

func (c *Config) applyFileConfig(file *fileValues) {
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.TokenTTL != nil {
		c.TokenTTL = *file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
	if file.RegistrationOpen != nil {
		c.RegistrationOpen = *file.RegistrationOpen
		c.sources["registration_open"] = "file"
	}
	if file.UnsafeMarkdown != nil {
		c.UnsafeMarkdown = *file.UnsafeMarkdown
		c.sources["unsafe_markdown"] = "file"
	}
	if file.DefaultRole != "" {
		c.DefaultRole = file.DefaultRole
		c.sources["default_role"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("BOOKSHELF_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("BOOKSHELF_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTL = i
			c.sources["token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("BOOKSHELF_REGISTRATION_OPEN"); val != "" {
		c.RegistrationOpen = val == "true" || val == "1"
		c.sources["registration_open"] = "environment"
	}
	if val := os.Getenv("BOOKSHELF_UNSAFE_MARKDOWN"); val != "" {
		c.UnsafeMarkdown = val == "true" || val == "1"
		c.sources["unsafe_markdown"] = "environment"
	}
	if val := os.Getenv("BOOKSHELF_DEFAULT_ROLE"); val != "" {
		c.DefaultRole = val
		c.sources["default_role"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenLifetime returns the token TTL as a duration
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *Config) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.TokenTTL < 0 {
		return fmt.Errorf("invalid token_ttl value: %d", c.TokenTTL)
	}

	if _, err := model.RoleString(c.DefaultRole); err != nil {
		return fmt.Errorf("invalid default_role value: %s", c.DefaultRole)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
		{Name: "registration_open", Value: strconv.FormatBool(c.RegistrationOpen), Source: c.Source("registration_open")},
		{Name: "unsafe_markdown", Value: strconv.FormatBool(c.UnsafeMarkdown), Source: c.Source("unsafe_markdown")},
		{Name: "default_role", Value: c.DefaultRole, Source: c.Source("default_role")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
