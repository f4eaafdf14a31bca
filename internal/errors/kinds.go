package errors

import "fmt"

// SyntaxError is raised for malformed input: unterminated interface bodies,
// unparsable method lines and unresolvable type qualifiers
type SyntaxError struct {
	*BaseError
	Token string // the text that could not be parsed
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
	}
}

// NewSyntaxErrorWithToken creates a syntax error with token information
func NewSyntaxErrorWithToken(message, token string) *SyntaxError {
	if token != "" {
		message = fmt.Sprintf("%s (near %q)", message, token)
	}

	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
		Token:     token,
	}
}

// WithLocation adds location information to the error
func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithSuggestion adds a helpful suggestion
func (e *SyntaxError) WithSuggestion(suggestion string) *SyntaxError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// GenerationError represents an error while rendering or writing a mock
type GenerationError struct {
	*BaseError
	TargetFile string // file being generated
	Stage      string // render, format or write
}

// NewGenerationError creates a new generation error
func NewGenerationError(message string) *GenerationError {
	return &GenerationError{
		BaseError: New(GenerationErrorCode, message),
	}
}

// ConfigurationError represents invalid flags or a missing go.mod
type ConfigurationError struct {
	*BaseError
	Field string // the offending setting
}

// NewConfigurationError creates a configuration error for field
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{
		BaseError: New(ConfigurationErrorCode, message),
		Field:     field,
	}
}

// WithSuggestion adds a helpful suggestion
func (e *ConfigurationError) WithSuggestion(suggestion string) *ConfigurationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// UnsupportedError marks a construct the extractor recognizes but does not model,
// such as generics, embedded interfaces or variadic parameters
type UnsupportedError struct {
	*BaseError
	Construct string
}

// NewUnsupportedError creates an error for an unmodeled construct
func NewUnsupportedError(construct, detail string) *UnsupportedError {
	return &UnsupportedError{
		BaseError: New(UnsupportedErrorCode, fmt.Sprintf("%s not supported: %s", construct, detail)),
		Construct: construct,
	}
}
