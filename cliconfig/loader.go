// Package cliconfig fills command config structs from flags, environment
// variables and configuration files.
//
// Config structs describe themselves with struct tags:
//
//	cli:"flag-name"            the flag (and config file key) to read
//	normalize:"filepath|list"  post-process the value
//	validate:"required,..."    reject the value
//	deprecated-and-renamed-to  copy the value to another field, with a warning
//	deprecated                 warn when the value is set
package cliconfig

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/buildkite/orffinder/internal/osutil"
	"github.com/oleiade/reflections"
	"github.com/urfave/cli"
)

type Loader struct {
	// The context that is passed when using a urfave/cli action
	CLI *cli.Context

	// The struct that the config values will be loaded into
	Config any

	// Paths checked, in order, for a config file when --config is not given
	DefaultConfigFilePaths []string

	// The file that was used when loading this configuration
	File *File
}

// Matches "arg:index" (specific non-flag arg) or "arg:*" (all non-flag args).
var argCLINameRE = regexp.MustCompile(`^arg:(\d+|\*)$`)

// Load fills Config and returns any warnings about deprecated options.
func (l *Loader) Load() (warnings []string, err error) {
	if err := l.findFile(); err != nil {
		return nil, err
	}

	if l.File != nil {
		if err := l.File.Load(); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	fields, err := reflections.FieldsDeep(l.Config)
	if err != nil {
		return nil, fmt.Errorf("listing config fields: %w", err)
	}

	for _, fieldName := range fields {
		cliName, _ := reflections.GetFieldTag(l.Config, fieldName, "cli")
		if cliName != "" {
			if err := l.setFieldValueFromCLI(fieldName, cliName); err != nil {
				return warnings, fmt.Errorf("setting config field %s: %w", fieldName, err)
			}
		}

		if normalization, _ := reflections.GetFieldTag(l.Config, fieldName, "normalize"); normalization != "" {
			if err := l.normalizeField(fieldName, normalization); err != nil {
				return warnings, fmt.Errorf("normalizing config field %s: %w", fieldName, err)
			}
		}

		w, err := l.handleDeprecation(fieldName, cliName)
		warnings = append(warnings, w...)
		if err != nil {
			return warnings, err
		}

		if rules, _ := reflections.GetFieldTag(l.Config, fieldName, "validate"); rules != "" {
			label, _ := reflections.GetFieldTag(l.Config, fieldName, "label")
			if label == "" {
				label = cliName
			}
			if label == "" {
				label = fieldName
			}
			if err := l.validateField(fieldName, label, rules); err != nil {
				return warnings, err
			}
		}
	}

	return warnings, nil
}

// findFile picks the --config file, which must exist, or else the first
// default path that does.
func (l *Loader) findFile() error {
	if path := l.CLI.String("config"); path != "" {
		file := File{Path: path}
		if !file.Exists() {
			absolutePath, _ := file.AbsolutePath()
			return fmt.Errorf("a configuration file could not be found at: %q", absolutePath)
		}
		l.File = &file
		return nil
	}

	for _, path := range l.DefaultConfigFilePaths {
		file := File{Path: path}
		if file.Exists() {
			l.File = &file
			return nil
		}
	}
	return nil
}

func (l *Loader) handleDeprecation(fieldName, cliName string) (warnings []string, err error) {
	if renamedTo, _ := reflections.GetFieldTag(l.Config, fieldName, "deprecated-and-renamed-to"); renamedTo != "" && !l.fieldValueIsEmpty(fieldName) {
		renamedCLIName, _ := reflections.GetFieldTag(l.Config, renamedTo, "cli")
		warnings = append(warnings,
			fmt.Sprintf("The config option `%s` has been renamed to `%s`. Please update your configuration.", cliName, renamedCLIName))

		value, _ := reflections.GetField(l.Config, fieldName)
		if !l.fieldValueIsEmpty(renamedTo) {
			renamedValue, _ := reflections.GetField(l.Config, renamedTo)
			return warnings, fmt.Errorf("couldn't set config option `%s=%v`, `%s=%v` has already been set", cliName, value, renamedCLIName, renamedValue)
		}
		if err := reflections.SetField(l.Config, renamedTo, value); err != nil {
			return warnings, fmt.Errorf("setting field %q to value %q: %w", renamedTo, value, err)
		}
	}

	if reason, _ := reflections.GetFieldTag(l.Config, fieldName, "deprecated"); reason != "" && !l.fieldValueIsEmpty(fieldName) {
		warnings = append(warnings, fmt.Sprintf("The config option `%s` has been deprecated: %s", cliName, reason))
	}
	return warnings, nil
}

func (l *Loader) setFieldValueFromCLI(fieldName, cliName string) error {
	fieldKind, err := reflections.GetFieldKind(l.Config, fieldName)
	if err != nil {
		return fmt.Errorf("getting the kind of struct field %q: %w", fieldName, err)
	}
	fieldType, err := reflections.GetFieldType(l.Config, fieldName)
	if err != nil {
		return fmt.Errorf("getting the type of struct field %q: %w", fieldName, err)
	}

	var value any

	if argMatch := argCLINameRE.FindStringSubmatch(cliName); argMatch != nil {
		value, err = l.argValue(fieldName, argMatch[1])
		if err != nil {
			return err
		}
	} else {
		// Config file values are the default; flags and env vars set on the
		// command line win over them.
		if l.File != nil {
			if raw, ok := l.File.Config[cliName]; ok {
				value, err = parseFileValue(raw, fieldKind, fieldType)
				if err != nil {
					return fmt.Errorf("config file key %q: %w", cliName, err)
				}
			}
		}

		if value == nil || l.cliValueIsSet(cliName) {
			value, err = l.flagValue(cliName, fieldKind, fieldType)
			if err != nil {
				return err
			}
		}
	}

	if value == nil {
		return nil
	}
	if err := reflections.SetField(l.Config, fieldName, value); err != nil {
		return fmt.Errorf("setting value field %q to %q: %w", fieldName, value, err)
	}
	return nil
}

// argValue reads positional argument argNum ("*" for all of them), falling back
// to the field's env tag.
func (l *Loader) argValue(fieldName, argNum string) (any, error) {
	args := l.CLI.Args()
	if argNum == "*" {
		return []string(args), nil
	}

	argIndex, err := strconv.Atoi(argNum)
	if err != nil {
		return nil, fmt.Errorf("converting string to int: %w", err)
	}
	if len(args) > argIndex {
		return args[argIndex], nil
	}

	if envName, err := reflections.GetFieldTag(l.Config, fieldName, "env"); err == nil && envName != "" {
		if envValue, ok := os.LookupEnv(envName); ok {
			return envValue, nil
		}
	}
	return nil, nil
}

func (l *Loader) flagValue(cliName string, kind reflect.Kind, typ string) (any, error) {
	switch kind {
	case reflect.String:
		return l.CLI.String(cliName), nil
	case reflect.Slice:
		return l.CLI.StringSlice(cliName), nil
	case reflect.Bool:
		return l.CLI.Bool(cliName), nil
	case reflect.Int:
		return l.CLI.Int(cliName), nil
	case reflect.Int64:
		switch typ {
		case "int64":
			return l.CLI.Int64(cliName), nil
		case "time.Duration":
			return l.CLI.Duration(cliName), nil
		}
		return nil, fmt.Errorf("unsupported field type %s for kind int64", typ)
	default:
		return nil, fmt.Errorf("unable to handle type: %s", kind)
	}
}

func parseFileValue(raw string, kind reflect.Kind, typ string) (any, error) {
	switch kind {
	case reflect.String:
		return raw, nil
	case reflect.Slice:
		return strings.Split(raw, ","), nil
	case reflect.Bool:
		return strconv.ParseBool(raw)
	case reflect.Int:
		return strconv.Atoi(raw)
	case reflect.Int64:
		switch typ {
		case "int64":
			return strconv.ParseInt(raw, 10, 64)
		case "time.Duration":
			return time.ParseDuration(raw)
		}
		return nil, fmt.Errorf("unsupported field type %s for kind int64", typ)
	default:
		return nil, fmt.Errorf("unable to convert string to type %s", kind)
	}
}

// Errorf returns an error pointing the user at the command's help.
func (l *Loader) Errorf(format string, v ...any) error {
	suffix := fmt.Sprintf(" See: `%s %s --help`", l.CLI.App.Name, l.CLI.Command.Name)
	return fmt.Errorf(format+suffix, v...)
}

func (l *Loader) cliValueIsSet(cliName string) bool {
	if l.CLI.IsSet(cliName) {
		return true
	}

	// cli.Context#IsSet only checks to see if the command was set via the cli,
	// not via the environment, so look up the flag's EnvVar by hand.
	for _, flag := range l.CLI.Command.Flags {
		name, _ := reflections.GetField(flag, "Name")
		envVar, _ := reflections.GetField(flag, "EnvVar")
		if name != cliName {
			continue
		}
		if envVarStr, ok := envVar.(string); ok && envVarStr != "" {
			for _, env := range strings.Split(envVarStr, ",") {
				if os.Getenv(strings.TrimSpace(env)) != "" {
					return true
				}
			}
		}
	}

	return false
}

func (l *Loader) fieldValueIsEmpty(fieldName string) bool {
	value, _ := reflections.GetField(l.Config, fieldName)
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

func (l *Loader) validateField(fieldName, label, validationRules string) error {
	for rule := range strings.SplitSeq(validationRules, ",") {
		switch rule {
		case "required":
			if l.fieldValueIsEmpty(fieldName) {
				return l.Errorf("Missing %s.", label)
			}

		case "file-exists":
			value, _ := reflections.GetField(l.Config, fieldName)
			if path, ok := value.(string); ok && path != "" {
				if _, err := os.Stat(path); err != nil {
					return fmt.Errorf("couldn't find %s located at %s: %w", label, path, err)
				}
			}

		default:
			return fmt.Errorf("unknown config validation rule %q", rule)
		}
	}

	return nil
}

func (l *Loader) normalizeField(fieldName, normalization string) error {
	value, _ := reflections.GetField(l.Config, fieldName)

	switch normalization {
	case "filepath":
		path, ok := value.(string)
		if !ok {
			return fmt.Errorf("filepath normalization only works on string fields")
		}
		normalized, err := osutil.NormalizeFilePath(path)
		if err != nil {
			return err
		}
		return reflections.SetField(l.Config, fieldName, normalized)

	case "list":
		items, ok := value.([]string)
		if !ok {
			return fmt.Errorf("list normalization only works on slice fields")
		}
		normalized := []string{}
		for _, item := range items {
			for part := range strings.SplitSeq(item, ",") {
				if part = strings.TrimSpace(part); part != "" {
					normalized = append(normalized, part)
				}
			}
		}
		return reflections.SetField(l.Config, fieldName, normalized)

	default:
		return fmt.Errorf("unknown normalization %q", normalization)
	}
}
