package lib

import "regexp"

var entityNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
var worldNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// coordinatePattern accepts signed integers and decimals ("2", "-0.5", "+3.",
// ".25"). Range is deliberately unchecked; the simulator decides what poses
// make sense.
var coordinatePattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)

func ValidateEntityName(name string) error {
	if !entityNamePattern.MatchString(name) {
		return &ValidationError{Field: "name", Message: "use a letter followed by alphanumerics, hyphens, or underscores"}
	}
	return nil
}

func ValidateWorldName(world string) error {
	if !worldNamePattern.MatchString(world) {
		return &ValidationError{Field: "world", Message: "use a letter followed by alphanumerics or underscores"}
	}
	return nil
}

func ValidateCoordinate(field, value string) error {
	if !coordinatePattern.MatchString(value) {
		return &ValidationError{Field: field, Message: "must be a decimal number"}
	}
	return nil
}
