package object

import (
	"sync"

	"github.com/rawbytedev/genom/pkg/binio"
)

// ClassData is the class-specific payload of an Object.
type ClassData interface {
	ClassName() string
}

// Codec decodes and encodes one class payload. Decode reads from a buffer
// bounded to the object's remaining byte budget.
type Codec struct {
	Decode func(r *binio.Buffer) (ClassData, error)
	Encode func(w *binio.Buffer, d ClassData) error
}

var (
	registryMu sync.RWMutex
	classes    = map[string]Codec{
		"": {
			Decode: func(*binio.Buffer) (ClassData, error) { return Invalid{}, nil },
			Encode: func(*binio.Buffer, ClassData) error { return nil },
		},
	}
)

// Register binds a class name to its codec.
func Register(className string, c Codec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	classes[className] = c
}

// Registered reports whether className decodes to a typed payload.
func Registered(className string) bool {
	_, ok := lookup(className)
	return ok
}

func lookup(className string) (Codec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := classes[className]
	return c, ok
}

// Invalid is the payload of an unnamed class. It carries no data.
type Invalid struct{}

func (Invalid) ClassName() string { return "" }

// Opaque keeps the payload of a class without a registered codec, or of a
// class revision its codec does not implement.
type Opaque struct {
	Name string
	Raw  []byte
}

func (o Opaque) ClassName() string { return o.Name }
