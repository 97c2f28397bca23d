package cli

import (
	"github.com/cockroachdb/errors"
	goFlags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

// Flags represents command line flags
type Flags struct {
	Version        bool         `short:"v" long:"version"        description:"Print the program version"`
	LogLevel       logrus.Level `short:"l" long:"logLevel"       description:"Logging level. Can be from 0 (least verbose) to 6 (most verbose). Overrides program config"`
	ProgramCfgPath string       `short:"c" long:"programCfgPath" description:"Program config file path to read from or initialize a default"`
	Input          []string     `short:"i" long:"input"          description:"Label to read. Can be a local file, URL or 'stdio'. Can be repeated"`
	Output         string       `short:"o" long:"output"         description:"Label to write. Can be a local file, directory for several inputs or 'stdio'"`
	Template       string       `short:"t" long:"template"       description:"Format template label defining order and comments of written elements"`
	Table          []string     `short:"r" long:"table"          description:"Translation table to translate inputs with. Can be repeated, later tables add new groups only"`
	Get            string       `short:"g" long:"get"            description:"Print values of the first keyword with this name found in any object or group"`
	List           bool         `short:"L" long:"list"           description:"Print every keyword of inputs as a table"`
	JSON           bool         `short:"j" long:"json"           description:"Write JSON instead of label"`
	Append         bool         `short:"a" long:"append"         description:"Append to output file instead of replacing it"`
	Strict         bool         `short:"s" long:"strict"         description:"Write in strict PDS dialect. Overrides program config"`
}

// Parse returns a structure initialized with command line arguments and error if parsing failed
func Parse() (Flags, error) {
	flags := Flags{
		// Set defaults
		LogLevel:       NoLogLevel,
		ProgramCfgPath: "pvlkit.yaml",
		Output:         "stdio",
	}
	parser := goFlags.NewParser(&flags, goFlags.Options(goFlags.Default))
	_, err := parser.Parse()
	return flags, errors.Wrap(err, "Parse CLI arguments")
}

// NoLogLevel is the value of Flags.LogLevel if it is not set
const NoLogLevel = logrus.Level(^uint32(0))

// IsErrOfType returns true if <err> is of type <t>
func IsErrOfType(err error, t goFlags.ErrorType) bool {
	goFlagsErr := &goFlags.Error{}
	if ok := errors.As(err, &goFlagsErr); ok && goFlagsErr.Type == t {
		return true
	}
	return false
}
