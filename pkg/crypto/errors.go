package crypto

import "errors"

var errInvalidUTF8 = errors.New("plaintext is not valid UTF-8")
