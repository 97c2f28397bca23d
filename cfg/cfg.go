package cfg

import (
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"pvlkit/util/logger"
)

//go:embed default.yaml
var defCfgBytes []byte

// Root represents root settings of the program
type Root struct {
	General   General   `koanf:"general"`
	Parse     Parse     `koanf:"parse"`
	Format    Format    `koanf:"format"`
	Translate Translate `koanf:"translate"`
	Batch     Batch     `koanf:"batch"`
}

// General represents general settings of the program
type General struct {
	// LogLevel represents logging level used if not set from command line
	LogLevel logrus.Level `koanf:"log_level"`

	// SourceTimeout represents response timeout of remote labels, templates and tables
	SourceTimeout time.Duration `koanf:"source_timeout"`
}

// Parse represents label reading settings
type Parse struct {
	// MaxDepth represents maximum nesting depth of objects and groups
	MaxDepth int `koanf:"max_depth"`
}

// Format represents label writing settings
type Format struct {
	Indent       int `koanf:"indent"`
	MaxLineWidth int `koanf:"max_line_width"`

	// NameColumn represents column of '=' sign, 0 aligns by the longest keyword name of every container
	NameColumn int `koanf:"name_column"`

	// Terminator represents line written after the last element, empty string omits it
	Terminator string `koanf:"terminator"`

	Dialect Dialect `koanf:"dialect"`

	// TypeFile represents path to keyword type map, empty to keep values as read
	TypeFile string `koanf:"type_file"`
}

// Translate represents translation settings
type Translate struct {
	// TableDirs represents directories to search translation tables given by name without directory
	TableDirs []string `koanf:"table_dirs"`
}

// Batch represents settings of processing several labels
type Batch struct {
	// Workers represents amount of labels processed at the same time
	Workers int `koanf:"workers"`
}

// Dialect represents value format used to write labels
type Dialect string

const (
	DefaultDialect Dialect = "default"
	PDSDialect     Dialect = "pds"
)

// BadValueError represents error thrown if program config has invalid value
type BadValueError struct {
	Field  string
	Value  any
	Reason string
}

// Error is used to satisfy golang error interface
func (e BadValueError) Error() string {
	return fmt.Sprintf("Invalid value [%v] of %v: %v", e.Value, e.Field, e.Reason)
}

// Init returns config instance and false if config at <cfgFilePath> already exist.
//
// If config does not exist, creates a default, returns empty instance and true.
//
// Fields missing in existing config take values of the default config, unknown fields are an error.
//
// Can return errors defined in this package: BadValueError.
func Init(log *logger.Logger, cfgFilePath string) (Root, bool, error) {
	log.Info("Reading program config")

	ko := koanf.New(".")

	// Load default config first, so user config overrides it field by field
	var root Root
	if err := ko.Load(rawbytes.Provider(defCfgBytes), yaml.Parser()); err != nil {
		return root, false, errors.Wrap(err, "Load default config")
	}
	if err := ko.Load(file.Provider(cfgFilePath), yaml.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("Config file not found, creating a default")
			if err := os.WriteFile(cfgFilePath, defCfgBytes, 0644); err != nil {
				return root, false, errors.Wrap(err, "Write default config")
			}
			return root, true, nil
		}
		return root, false, errors.Wrap(err, "Load config")
	}

	// Decode loaded config into structure
	decoder := mapstructure.ComposeDecodeHookFunc(
		// Parse log level names
		func(from, to reflect.Type, fromData any) (any, error) {
			if to == reflect.TypeOf(logrus.Level(0)) && from.Kind() == reflect.String {
				lvl, err := logger.ParseLevel(reflect.ValueOf(fromData).String())
				if err != nil {
					return nil, BadValueError{Field: "general.log_level", Value: fromData, Reason: err.Error()}
				}
				return lvl, nil
			}
			return fromData, nil
		},
		// Check dialect names
		func(from, to reflect.Type, fromData any) (any, error) {
			if to == reflect.TypeOf(Dialect("")) {
				dialect := Dialect(fmt.Sprint(fromData))
				if !lo.Contains([]Dialect{DefaultDialect, PDSDialect}, dialect) {
					return nil, BadValueError{Field: "format.dialect", Value: fromData,
						Reason: fmt.Sprintf("should be %v or %v", DefaultDialect, PDSDialect)}
				}
				return dialect, nil
			}
			return fromData, nil
		},
		// Default decoders
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	err := ko.UnmarshalWithConf("", &root, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:           decoder,
			ErrorUnused:          true,
			IgnoreUntaggedFields: true,
			Result:               &root,
			WeaklyTypedInput:     true,
			ZeroFields:           true,
		},
	})
	if err != nil {
		return root, false, errors.Wrap(err, "Decode config")
	}

	if err := root.check(); err != nil {
		return root, false, errors.Wrap(err, "Check config")
	}

	return root, false, nil
}

// check returns error if any numeric setting of <r> is out of range
func (r Root) check() error {
	switch {
	case r.Parse.MaxDepth < 1:
		return BadValueError{Field: "parse.max_depth", Value: r.Parse.MaxDepth, Reason: "should be positive"}
	case r.Format.Indent < 0:
		return BadValueError{Field: "format.indent", Value: r.Format.Indent, Reason: "should not be negative"}
	case r.Format.MaxLineWidth < 0:
		return BadValueError{Field: "format.max_line_width", Value: r.Format.MaxLineWidth,
			Reason: "should not be negative"}
	case r.Format.NameColumn < 0:
		return BadValueError{Field: "format.name_column", Value: r.Format.NameColumn, Reason: "should not be negative"}
	case r.Batch.Workers < 1:
		return BadValueError{Field: "batch.workers", Value: r.Batch.Workers, Reason: "should be positive"}
	}
	return nil
}

// NewDefCfg returns default config as written in "default.yaml" file
func NewDefCfg() Root {
	return Root{
		General: General{
			LogLevel:      logrus.InfoLevel,
			SourceTimeout: time.Second * 10,
		},
		Parse: Parse{
			MaxDepth: 100,
		},
		Format: Format{
			Indent:       2,
			MaxLineWidth: 80,
			NameColumn:   0,
			Terminator:   "End",
			Dialect:      DefaultDialect,
			TypeFile:     "",
		},
		Translate: Translate{
			TableDirs: []string{},
		},
		Batch: Batch{
			Workers: 4,
		},
	}
}
