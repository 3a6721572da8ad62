package encoding

import (
	"github.com/eknkc/basex"
)

// base62Alphabet is the alphabet used for Base62 encoding. Digits precede
// letters so that encoded values sort naturally.
const base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// base62 is the Base62 encoder used for identifier suffixes. It is safe for
// concurrent use.
var base62 *basex.Encoding

func init() {
	encoding, err := basex.NewEncoding(base62Alphabet)
	if err != nil {
		panic("unable to initialize Base62 encoder")
	}
	base62 = encoding
}

// EncodeBase62 encodes a byte slice using Base62 encoding.
func EncodeBase62(value []byte) string {
	return base62.Encode(value)
}
