package audio

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrInvalidTimeSpec is wrapped by errors returned for offset or
	// duration values that cannot be parsed.
	ErrInvalidTimeSpec = errors.New("invalid offset or duration value")
)

// BinaryMissingError reports that a required external tool is not installed.
// It is never retried and always fatal to the call.
type BinaryMissingError struct {
	Tool string
}

func (e *BinaryMissingError) Error() string {
	return fmt.Sprintf("%s cannot be found. Please make sure it is installed.", e.Tool)
}

// FileMissingError reports that the input path does not exist.
type FileMissingError struct {
	File string
}

func (e *FileMissingError) Error() string {
	return fmt.Sprintf("'%s' does not exist.", e.File)
}

// BrokenFileError reports a file whose content is unreadable, corrupt, or
// unsupported by every decoder in the fallback chain. The message matches
// the wording of the native decoder so callers see identical errors
// regardless of which code path detected the problem.
type BrokenFileError struct {
	File string
}

func (e *BrokenFileError) Error() string {
	return fmt.Sprintf("Error opening %s: File contains data in an unknown format.", e.File)
}

// UnsupportedParameterError reports an invalid bit depth or a channel count
// exceeding the target format's maximum. It is raised before any I/O.
type UnsupportedParameterError struct {
	Param   string
	Message string
}

func (e *UnsupportedParameterError) Error() string {
	return e.Message
}

func unsupportedBitDepth(allowed []int) *UnsupportedParameterError {
	s := make([]string, len(allowed))
	for i, b := range allowed {
		s[i] = fmt.Sprintf("%d", b)
	}
	return &UnsupportedParameterError{
		Param:   "bit_depth",
		Message: fmt.Sprintf(`"bit_depth" has to be one of %s.`, strings.Join(s, ", ")),
	}
}

func unsupportedChannels(format Format, max int) *UnsupportedParameterError {
	hint := ""
	if format != FormatWAV {
		hint = " Consider using 'wav' instead."
	}
	return &UnsupportedParameterError{
		Param: "channels",
		Message: fmt.Sprintf(
			"The maximum number of allowed channels for '%s' is %d.%s", format, max, hint),
	}
}
