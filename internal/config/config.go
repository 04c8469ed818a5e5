// Package config loads book.toml for the standalone commands. In
// preprocess mode configuration arrives over stdin instead, inside
// the host's context payload.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Init points viper at the book.toml of the given book directory.
// A missing book.toml is fine (defaults apply); a malformed one is
// not, since the caller explicitly named the book.
func Init(bookDir string) error {
	viper.SetDefault("book.src", "src")
	viper.SetDefault("preprocessor.checklist.title", "Checklist")
	viper.SetDefault("preprocessor.cite.title", "References")

	viper.SetConfigName("book")
	viper.SetConfigType("toml")
	viper.AddConfigPath(bookDir)

	viper.SetEnvPrefix("MDBOOK_CHECKLIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read book.toml: %w", err)
	}
	return nil
}

// SrcDir returns the book's markdown source directory, resolved
// against the book directory.
func SrcDir(bookDir string) string {
	src := viper.GetString("book.src")
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(bookDir, src)
}

// GetTitle returns the checklist chapter title.
func GetTitle() string {
	return viper.GetString("preprocessor.checklist.title")
}

// GetCiteTitle returns the references section title.
func GetCiteTitle() string {
	return viper.GetString("preprocessor.cite.title")
}

// BookDirExists reports whether dir looks like a usable directory.
func BookDirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
