package cli

import (
	"os"
	"testing"

	goFlags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	os.Args = []string{""}
	flags, err := Parse()
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, NoLogLevel, flags.LogLevel, "flag should not be set")
	assert.Exactly(t, "pvlkit.yaml", flags.ProgramCfgPath, "flag should have default value")
	assert.Exactly(t, "stdio", flags.Output, "flag should have default value")

	os.Args = []string{"", "--help"}
	_, err = Parse()
	assert.True(t, IsErrOfType(err, goFlags.ErrHelp), "should return help error")

	os.Args = []string{"", "--version"}
	flags, err = Parse()
	assert.NoError(t, err, "should not return error")
	assert.True(t, flags.Version, "flag should be specified")

	os.Args = []string{"", "--logLevel=-1"}
	_, err = Parse()
	assert.Error(t, err, "should return error for negative log level")
	assert.True(t, IsErrOfType(err, goFlags.ErrMarshal), "should return marshal error")

	os.Args = []string{"", "--logLevel=5"}
	flags, err = Parse()
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, logrus.DebugLevel, flags.LogLevel, "flag should have this value")

	os.Args = []string{"", "--programCfgPath=/cfg/path", "-i", "a.lbl", "--input=http://host/b.lbl", "-o", "out",
		"--template=t.tpl", "-r", "one.trn", "-r", "two.trn", "--get=Samples", "--list", "--json", "--append",
		"--strict"}
	flags, err = Parse()
	assert.NoError(t, err, "should not return error")
	expected := Flags{
		LogLevel:       NoLogLevel,
		ProgramCfgPath: "/cfg/path",
		Input:          []string{"a.lbl", "http://host/b.lbl"},
		Output:         "out",
		Template:       "t.tpl",
		Table:          []string{"one.trn", "two.trn"},
		Get:            "Samples",
		List:           true,
		JSON:           true,
		Append:         true,
		Strict:         true,
	}
	assert.Exactly(t, expected, flags, "flags should have these values")

	os.Args = []string{"", "--bogus"}
	_, err = Parse()
	assert.True(t, IsErrOfType(err, goFlags.ErrUnknownFlag), "should return unknown flag error")
}

func TestIsErrOfType(t *testing.T) {
	assert.True(t, IsErrOfType(&goFlags.Error{Type: goFlags.ErrUnknown}, goFlags.ErrUnknown))
	assert.False(t, IsErrOfType(&goFlags.Error{Type: goFlags.ErrUnknown}, goFlags.ErrHelp))
	assert.False(t, IsErrOfType(nil, goFlags.ErrHelp))
}
