package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "climbsync"

// Destinations that videos can be uploaded to.
const (
	DestinationYouTube      = "youtube"
	DestinationGooglePhotos = "google_photos"
)

const (
	DefaultRedirectURI     = "http://localhost:8080"
	DefaultYouTubeEndpoint = "https://www.googleapis.com/upload/youtube/v3/videos?part=snippet,status&uploadType=multipart"
)

// GoogleConfig holds the OAuth client shared by both destinations.
type GoogleConfig struct {
	ClientId     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
}

// YouTubeConfig defines the metadata attached to every uploaded video.
type YouTubeConfig struct {
	Description   string `mapstructure:"description"`
	PrivacyStatus string `mapstructure:"privacy_status"`
	TitlePrefix   string `mapstructure:"title_prefix"`
	Endpoint      string `mapstructure:"endpoint"`
}

// GooglePhotosConfig defines the configuration for the Google Photos destination.
type GooglePhotosConfig struct {
	AlbumId string `mapstructure:"album_id"`
}

// SyncConfig controls how sync runs are scheduled.
type SyncConfig struct {
	RequireNetworkHost string        `mapstructure:"require_network_host"`
	ConstraintPoll     time.Duration `mapstructure:"constraint_poll"`
	WatchDebounce      time.Duration `mapstructure:"watch_debounce"`
	MetricsAddr        string        `mapstructure:"metrics_addr"`
}

// ClimbsyncConfig defines the configuration for Climbsync.
type ClimbsyncConfig struct {
	SettingsDB       string  `mapstructure:"settings_db"`
	CacheDir         string  `mapstructure:"cache_dir"`
	Destination      string  `mapstructure:"destination"`
	UploadsPerSecond float64 `mapstructure:"uploads_per_second"`
	UploadBurst      int     `mapstructure:"upload_burst"`

	Google       GoogleConfig       `mapstructure:"google"`
	YouTube      YouTubeConfig      `mapstructure:"youtube"`
	GooglePhotos GooglePhotosConfig `mapstructure:"google_photos"`
	Sync         SyncConfig         `mapstructure:"sync"`

	path string `mapstructure:"-"`
}

// Path returns the file the config was loaded from.
func (c *ClimbsyncConfig) Path() string {
	return c.path
}

func (c *GoogleConfig) Validate() error {
	// Check that at least a base set of fields have values.
	if c.ClientId == "" || c.ClientSecret == "" {
		return fmt.Errorf("missing google client_id or client_secret")
	}
	if c.RedirectURI == "" {
		c.RedirectURI = DefaultRedirectURI
	}
	return nil
}

func (c *ClimbsyncConfig) Validate() error {
	if c.SettingsDB == "" || c.CacheDir == "" {
		return fmt.Errorf("missing settings_db or cache_dir (%s)", c.path)
	}
	switch c.Destination {
	case DestinationYouTube, DestinationGooglePhotos:
	default:
		return fmt.Errorf("unknown destination %q (%s)", c.Destination, c.path)
	}
	if c.UploadsPerSecond <= 0 || c.UploadBurst < 1 {
		return fmt.Errorf("uploads_per_second and upload_burst must be positive (%s)", c.path)
	}
	if err := c.Google.Validate(); err != nil {
		return fmt.Errorf("invalid google config (%s): %w", c.path, err)
	}
	return nil
}

// DefaultConfigPath returns the default path for the Climbsync config file.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine user config dir: %w", err)
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// getConfigPath determines where to read the config file from.
func getConfigPath(configPathFlag string) (string, error) {
	// Prefer user-specific config file path if specified.
	if configPathFlag != "" {
		return configPathFlag, nil
	}
	return DefaultConfigPath()
}

func setDefaults(v *viper.Viper) {
	if dir, err := os.UserConfigDir(); err == nil {
		v.SetDefault("settings_db", filepath.Join(dir, appName, "settings.db"))
	}
	if dir, err := os.UserCacheDir(); err == nil {
		v.SetDefault("cache_dir", filepath.Join(dir, appName))
	}
	v.SetDefault("destination", DestinationYouTube)
	v.SetDefault("uploads_per_second", 1.0)
	v.SetDefault("upload_burst", 1)

	// Keys need a default to be visible to AutomaticEnv during Unmarshal.
	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("google.redirect_uri", DefaultRedirectURI)
	v.SetDefault("google_photos.album_id", "")

	v.SetDefault("youtube.description", "Uploaded by climbsync")
	v.SetDefault("youtube.privacy_status", "unlisted")
	v.SetDefault("youtube.title_prefix", "climbing_")
	v.SetDefault("youtube.endpoint", DefaultYouTubeEndpoint)

	v.SetDefault("sync.require_network_host", "www.googleapis.com:443")
	v.SetDefault("sync.constraint_poll", 30*time.Second)
	v.SetDefault("sync.watch_debounce", 5*time.Second)
	v.SetDefault("sync.metrics_addr", "")
}

// LoadConfig reads the config file.
func LoadConfig(configPathFlag string) (ClimbsyncConfig, error) {
	path, err := getConfigPath(configPathFlag)
	if err != nil {
		return ClimbsyncConfig{}, err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)

	// Allow users to override config values with environment variables.
	// In particular, may be desired for the Google API credentials.
	v.SetEnvPrefix("CLIMBSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return ClimbsyncConfig{}, fmt.Errorf("error reading (%s): %w", path, err)
	}
	config := ClimbsyncConfig{path: path}
	if err := v.Unmarshal(&config); err != nil {
		return ClimbsyncConfig{}, fmt.Errorf("error unmarshaling (%s): %w", path, err)
	}
	return config, nil
}
