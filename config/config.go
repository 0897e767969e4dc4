package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ochinchina/go-ini"
	log "github.com/sirupsen/logrus"
)

// Entry stands for a configuration section in the configuration file
type Entry struct {
	ConfigDir string
	Name      string
	keyValues map[string]string
}

// String dumps configuration as a string
func (c *Entry) String() string {
	buf := bytes.NewBuffer(make([]byte, 0))
	for k, v := range c.keyValues {
		fmt.Fprintf(buf, "%s=%s\n", k, v)
	}
	return buf.String()
}

// Config memory representation of the configuration file
type Config struct {
	configFile string
	// mapping between the section name and configuration entry
	entries map[string]*Entry
}

// NewEntry creates configuration entry
func NewEntry(configDir string) *Entry {
	return &Entry{configDir, "", make(map[string]string)}
}

// NewConfig creates Config object
func NewConfig(configFile string) *Config {
	return &Config{configFile, make(map[string]*Entry)}
}

// create a new entry or return the already-exist entry
func (c *Config) createEntry(name string, configDir string) *Entry {
	entry, ok := c.entries[name]

	if !ok {
		entry = NewEntry(configDir)
		c.entries[name] = entry
	}
	return entry
}

// Load reads the configuration file. A missing file is not an error: every
// setting keeps its default and the program behaves as if it had been
// started without any configuration at all.
func (c *Config) Load() error {
	if _, err := os.Stat(c.configFile); err != nil {
		log.WithFields(log.Fields{"file": c.configFile}).Debug("no configuration file, using defaults")
		return nil
	}
	myini := ini.NewIni()
	log.WithFields(log.Fields{"file": c.configFile}).Info("load configuration from file")
	myini.LoadFile(c.configFile)
	c.parse(myini)
	return nil
}

func (c *Config) parse(cfg *ini.Ini) {
	for _, section := range cfg.Sections() {
		entry := c.createEntry(section.Name, c.GetConfigFileDir())
		entry.parse(section)
	}
}

// GetConfigFileDir returns directory of the configuration file
func (c *Config) GetConfigFileDir() string {
	return filepath.Dir(c.configFile)
}

// GetSection returns the configuration entry of the named section
func (c *Config) GetSection(name string) (*Entry, bool) {
	entry, ok := c.entries[name]
	return entry, ok
}

// GetZombiemaker returns the "zombiemaker" configuration section
func (c *Config) GetZombiemaker() (*Entry, bool) {
	return c.GetSection("zombiemaker")
}

// GetBool gets value of key as bool
func (c *Entry) GetBool(key string, defValue bool) bool {
	value, ok := c.keyValues[key]

	if ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defValue
}

// HasParameter checks if key (parameter) has value
func (c *Entry) HasParameter(key string) bool {
	_, ok := c.keyValues[key]
	return ok
}

func toInt(s string, factor int, defValue int) int {
	i, err := strconv.Atoi(s)
	if err == nil {
		return i * factor
	}
	return defValue
}

// GetInt gets value of the key as int
func (c *Entry) GetInt(key string, defValue int) int {
	value, ok := c.keyValues[key]

	if ok {
		return toInt(value, 1, defValue)
	}
	return defValue
}

// GetDuration gets value of the key as a duration. A bare number is read as
// seconds.
func (c *Entry) GetDuration(key string, defValue time.Duration) time.Duration {
	value, ok := c.keyValues[key]
	if !ok {
		return defValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defValue
}

// GetString returns value of the key as a string
func (c *Entry) GetString(key string, defValue string) string {
	s, ok := c.keyValues[key]

	if ok {
		env := NewStringExpression("here", c.ConfigDir)
		repS, err := env.Eval(s)
		if err == nil {
			return repS
		}
		log.WithFields(log.Fields{
			log.ErrorKey: err,
			"key":        key,
		}).Warn("unable to parse expression")
	}
	return defValue
}

func (c *Entry) parse(section *ini.Section) {
	c.Name = section.Name
	for _, key := range section.Keys() {
		c.keyValues[key.Name()] = strings.TrimSpace(key.ValueWithDefault(""))
	}
}
