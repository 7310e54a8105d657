package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dmitrijs2005/bookshelf/internal/server/storage/engine"
)

// Settings declares which engine a storage uses and how to reach it.
// The set of implementations is closed: FSSettings and S3Settings.
type Settings interface {
	Kind() engine.Kind
	settings()
}

type FSSettings struct {
	BasePath string `json:"base_path"`
}

func (FSSettings) Kind() engine.Kind { return engine.KindFS }
func (FSSettings) settings()         {}

func (s FSSettings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", string(engine.KindFS)),
		slog.String("base_path", s.BasePath),
	)
}

type S3Settings struct {
	Bucket       string `json:"bucket"`
	Prefix       string `json:"prefix,omitempty"`
	Region       string `json:"region,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"`
	AccessKey    string `json:"access_key,omitempty"`
	SecretKey    string `json:"secret_key,omitempty"`
	UsePathStyle bool   `json:"use_path_style,omitempty"`
}

func (S3Settings) Kind() engine.Kind { return engine.KindS3 }
func (S3Settings) settings()         {}

// LogValue keeps the secret key out of logs.
func (s S3Settings) LogValue() slog.Value {
	secret := ""
	if s.SecretKey != "" {
		secret = "REDACTED"
	}
	return slog.GroupValue(
		slog.String("type", string(engine.KindS3)),
		slog.String("bucket", s.Bucket),
		slog.String("prefix", s.Prefix),
		slog.String("endpoint", s.Endpoint),
		slog.String("access_key", s.AccessKey),
		slog.String("secret_key", secret),
	)
}

func (s S3Settings) engineConfig() engine.S3Config {
	return engine.S3Config{
		Bucket:       s.Bucket,
		Prefix:       s.Prefix,
		Region:       s.Region,
		Endpoint:     s.Endpoint,
		AccessKey:    s.AccessKey,
		SecretKey:    s.SecretKey,
		UsePathStyle: s.UsePathStyle,
	}
}

// EncodeSettings renders s with its "type" discriminator, e.g.
// {"type":"fs","base_path":"/data/books"}.
func EncodeSettings(s Settings) ([]byte, error) {
	switch v := s.(type) {
	case FSSettings:
		return json.Marshal(struct {
			Type engine.Kind `json:"type"`
			FSSettings
		}{engine.KindFS, v})
	case S3Settings:
		return json.Marshal(struct {
			Type engine.Kind `json:"type"`
			S3Settings
		}{engine.KindS3, v})
	default:
		return nil, fmt.Errorf("%w: unsupported settings %T", engine.ErrInvalidSettings, s)
	}
}

func DecodeSettings(data []byte) (Settings, error) {
	var head struct {
		Type engine.Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrInvalidSettings, err)
	}

	switch head.Type {
	case engine.KindFS:
		var s FSSettings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%w: %w", engine.ErrInvalidSettings, err)
		}
		return s, nil
	case engine.KindS3:
		var s S3Settings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%w: %w", engine.ErrInvalidSettings, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", engine.ErrInvalidSettings, head.Type)
	}
}
