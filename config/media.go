package config

import "strings"

// MediaConfig contains Cloudinary media storage configuration. When the
// credentials are incomplete the server falls back to an in-memory store,
// which is only useful for development.
type MediaConfig struct {
	CloudName string `env:"CLOUD_NAME"`
	APIKey    string `env:"API_KEY"`
	APISecret string `env:"API_SECRET"`

	// Folder is the remote folder uploads land in.
	Folder string `env:"FOLDER" envDefault:"blogforge"`
}

// Sanitize trims whitespace from credential values.
func (m *MediaConfig) Sanitize() {
	m.CloudName = strings.TrimSpace(m.CloudName)
	m.APIKey = strings.TrimSpace(m.APIKey)
	m.APISecret = strings.TrimSpace(m.APISecret)
	m.Folder = strings.TrimSpace(m.Folder)
}

// IsConfigured reports whether all Cloudinary credentials are present.
func (m *MediaConfig) IsConfigured() bool {
	return m.CloudName != "" && m.APIKey != "" && m.APISecret != ""
}
