package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName  = "config.yaml"
	SessionLogsDirName = "session_logs"
)

// FileMode is an os.FileMode that (un)marshals as a quoted octal string,
// e.g. "0777", matching how modes are written everywhere else.
type FileMode os.FileMode

func (m *FileMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("file mode must be a quoted octal string like \"0777\": %w", err)
	}

	parsed, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid octal file mode %q: %w", s, err)
	}

	*m = FileMode(parsed)
	return nil
}

func (m FileMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%04o", uint32(m)))
}

type Configuration struct {
	configFs afero.Fs

	// Prompt is the interactive prompt string.
	Prompt string `json:"prompt" validate:"required"`

	// ShowBanner prints the welcome banner on startup.
	ShowBanner bool `json:"show_banner"`

	// MaxLineLength rejects longer input lines instead of truncating them.
	MaxLineLength int `json:"max_line_length" validate:"gte=1"`

	// MaxTokens rejects lines with more tokens instead of truncating them.
	MaxTokens int `json:"max_tokens" validate:"gte=1"`

	// OutputFileMode is the creation mode for redirected output files.
	// The historical default is the permissive "0777".
	OutputFileMode FileMode `json:"output_file_mode"`

	// RecordSessions writes a timestamped transcript of each session
	// under session_logs/.
	RecordSessions bool `json:"record_sessions"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewOsFs()
	}
	return c.configFs
}

// CreateSessionLog opens a session transcript for appending.
func (c *Configuration) CreateSessionLog(name string) (afero.File, error) {
	toCreate := filepath.Join(SessionLogsDirName, name)
	return c.fs().OpenFile(toCreate, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// Default returns the embedded default configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
