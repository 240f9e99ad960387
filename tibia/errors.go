package tibia

import (
	"errors"
	"fmt"
)

// ErrInvalidContent reports that the markup handed to a parser does not
// come from the section that parser understands, for example a world page
// given to ParseCharacter. Absence of the requested entity is not an
// error, those pages parse to (nil, nil).
var ErrInvalidContent = errors.New("content does not belong to this section")

func invalidContentf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidContent)...)
}
