// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Plain scalar typing check used by the emitter's style selection.
// A plain scalar is written unquoted only when a reader applying the YAML
// 1.2 core schema or the YAML 1.1 type repository would still see a string.

package libyaml

import (
	"regexp"
)

// resolveTable marks the first characters that may start a non-string
// plain scalar. Anything else is a string without further checks.
var resolveTable = func() (t [256]bool) {
	for _, c := range []byte("+-.0123456789~<nNtTfFyYoO") {
		t[c] = true
	}
	return t
}()

var (
	yamlInt = regexp.MustCompile(
		`^[-+]?(?:0b[01_]+|0o?[0-7_]+|0x[0-9a-fA-F_]+|[0-9][0-9_]*)$`)
	yamlFloat = regexp.MustCompile(
		`^[-+]?(?:\.[0-9]+|[0-9][0-9_]*(?:\.[0-9_]*)?)(?:[eE][-+]?[0-9]+)?$`)
	yamlSpecialFloat = regexp.MustCompile(
		`^(?:[-+]?\.(?:inf|Inf|INF)|\.(?:nan|NaN|NAN))$`)
	base60float = regexp.MustCompile(
		`^[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+(?:\.[0-9_]*)?$`)
	yaml11CommaNumber = regexp.MustCompile(
		`^[-+]?(?:0|[1-9][0-9,]*)(?:\.[0-9]*)?$`)
	yamlTimestamp = regexp.MustCompile(
		`^[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}(?:(?:[Tt]|[ \t]+)[0-9]{1,2}:[0-9]{2}:[0-9]{2}(?:\.[0-9]*)?` +
			`(?:[ \t]*(?:Z|[-+][0-9]{1,2}(?::[0-9]{2})?))?)?$`)
)

// isPlainString reports whether value, written as a plain scalar, reads
// back as a string.
func isPlainString(value []byte) bool {
	if len(value) == 0 {
		// Empty plain scalars are null.
		return false
	}
	if !resolveTable[value[0]] {
		return true
	}
	s := string(value)
	switch s {
	case "~", "null", "Null", "NULL",
		"true", "True", "TRUE", "false", "False", "FALSE",
		"<<":
		return false
	}
	if isOldBool(s) {
		return false
	}
	switch {
	case yamlInt.MatchString(s),
		yamlFloat.MatchString(s),
		yamlSpecialFloat.MatchString(s),
		base60float.MatchString(s),
		yaml11CommaNumber.MatchString(s),
		yamlTimestamp.MatchString(s):
		return false
	}
	return true
}

// isOldBool returns whether s is bool notation as defined in YAML 1.1.
func isOldBool(s string) bool {
	switch s {
	case "y", "Y", "yes", "Yes", "YES", "on", "On", "ON",
		"n", "N", "no", "No", "NO", "off", "Off", "OFF":
		return true
	}
	return false
}
