package property

import (
	"strings"
	"sync"

	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
)

// DecodeFunc decodes a payload. r is bounded to the declared size.
type DecodeFunc func(r *binio.Buffer, typeName string) (Data, error)

// EncodeFunc encodes the payload of d.
type EncodeFunc func(w *binio.Buffer, d Data) error

// typed adapts an encoder of one value type. Values of any other type are
// rejected with ErrInvalidStructure.
func typed[T Data](fn func(w *binio.Buffer, v T) error) EncodeFunc {
	return func(w *binio.Buffer, d Data) error {
		v, ok := d.(T)
		if !ok {
			return eris.Wrapf(errs.ErrInvalidStructure, "%T cannot be encoded as %s", d, d.TypeName())
		}
		return fn(w, v)
	}
}

type codec struct {
	size   int // expected payload size, -1 when variable
	decode DecodeFunc
	encode EncodeFunc
}

var (
	registryMu sync.RWMutex
	codecs     = map[string]codec{}
)

// Register adds a codec for typeName. size is the exact payload size the
// type occupies, or -1 for variable sized payloads. Registering a name twice
// replaces the earlier codec.
func Register(typeName string, size int, decode DecodeFunc, encode EncodeFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	codecs[typeName] = codec{size: size, decode: decode, encode: encode}
}

// Registered reports whether typeName decodes to a typed value.
func Registered(typeName string) bool {
	_, ok := lookup(typeName)
	return ok
}

const (
	containerPrefix = "bTPropertyContainer<enum "
	arrayPrefix     = "bTValArray<enum "
)

// enumInner strips prefix and the closing bracket from a wrapped enum type
// name.
func enumInner(typeName, prefix string) (string, bool) {
	if !strings.HasPrefix(typeName, prefix) || !strings.HasSuffix(typeName, ">") {
		return "", false
	}
	return typeName[len(prefix) : len(typeName)-1], true
}

func lookup(typeName string) (codec, bool) {
	registryMu.RLock()
	c, ok := codecs[typeName]
	registryMu.RUnlock()
	if ok {
		return c, true
	}
	if name, ok := enumInner(typeName, containerPrefix); ok {
		if _, known := LookupEnum(name); known {
			return containerEnumCodec, true
		}
		return codec{}, false
	}
	if name, ok := enumInner(typeName, arrayPrefix); ok {
		if _, known := LookupEnum(name); known {
			return enumArrayCodec, true
		}
		return codec{}, false
	}
	if _, known := LookupEnum(typeName); known {
		return enumCodec, true
	}
	return codec{}, false
}
