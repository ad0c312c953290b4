package settings

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	apperr "attachmint/pkg/errors"
	"attachmint/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

// rawBytesProvider implements a koanf provider for raw bytes.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// DefaultPath returns the settings file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "attachmint", "attachmint.toml")
}

// Load reads settings from path, merged over the embedded defaults. A
// missing file yields pure defaults; a malformed file is logged and ignored
// rather than rejected. Legacy fields are migrated and, when the file
// changed shape, persisted back once.
func Load(path string) (*Settings, error) {
	logger := logging.GetLogger("settings")

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, apperr.Wrap(err, apperr.ErrConfigLoad, "failed to load default settings")
	}

	loaded := false
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Ignoring malformed settings file")
		} else {
			loaded = true
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, apperr.Wrap(err, apperr.ErrConfigParse, "failed to decode settings")
	}

	if migrateLegacy(&s) && loaded {
		if err := Save(path, &s); err != nil {
			logger.Warn().Err(err).Msg("Failed to persist migrated settings")
		} else {
			logger.Info().Str("path", path).Msg("Migrated legacy settings field")
		}
	}

	return &s, nil
}

// migrateLegacy absorbs the retired single-string extra folder field into
// the list form. Returns true when a migration happened.
func migrateLegacy(s *Settings) bool {
	if s.LegacyExtraFolder == "" {
		return false
	}
	found := false
	for _, f := range s.ExtraFolders {
		if f == s.LegacyExtraFolder {
			found = true
			break
		}
	}
	if !found {
		s.ExtraFolders = append(s.ExtraFolders, s.LegacyExtraFolder)
	}
	s.ExtraScanEnabled = true
	s.LegacyExtraFolder = ""
	return true
}

// Save writes settings as TOML, creating parent folders as needed.
func Save(path string, s *Settings) error {
	data, err := gotoml.Marshal(s)
	if err != nil {
		return apperr.Wrap(err, apperr.ErrConfigSave, "failed to encode settings")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperr.Wrap(err, apperr.ErrConfigSave, "failed to create settings directory")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperr.Wrap(err, apperr.ErrConfigSave, "failed to write settings")
	}
	return nil
}
