package attrs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dball/slots/internal/sys"
	"github.com/dball/slots/internal/types"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrUnknownType matches every UnknownTypeError under errors.Is.
var ErrUnknownType = errors.New("unknown attribute type")

// UnknownTypeError is returned when a slot refers to a type key that has not
// been registered.
type UnknownTypeError struct {
	Key string
}

func (err *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown attribute type %q", err.Key)
}

func (err *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// Registry maps type keys to attribute types. Registries are safe for
// concurrent use, though registration is expected to happen while schemas
// are being defined.
type Registry struct {
	lock   sync.RWMutex
	types  map[string]Type
	logger *zap.Logger
}

// Option configures a registry.
type Option func(*registryOptions)

type registryOptions struct {
	logger   *zap.Logger
	builtins bool
}

// WithLogger sets the logger registrations are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *registryOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithoutBuiltins returns an empty registry.
func WithoutBuiltins() Option {
	return func(opts *registryOptions) {
		opts.builtins = false
	}
}

// Builtins returns the builtin types by key. Both int and float keys share the
// same non-truncating numeric coercion.
func Builtins() map[string]Type {
	return map[string]Type{
		sys.TypeInt:    {Key: sys.TypeInt, Kind: Int, Default: types.Number(0)},
		sys.TypeFloat:  {Key: sys.TypeFloat, Kind: Float, Default: types.Number(0)},
		sys.TypeNumber: {Key: sys.TypeNumber, Kind: Float, Default: types.Number(0)},
		sys.TypeObject: {Key: sys.TypeObject, Kind: Object, Default: types.Null{}},
		sys.TypeDate:   {Key: sys.TypeDate, Kind: Date, Default: types.Null{}},
		sys.TypeMixed:  {Key: sys.TypeMixed, Kind: Mixed},
	}
}

// NewRegistry returns a registry holding the builtin types.
func NewRegistry(options ...Option) (r *Registry) {
	opts := registryOptions{logger: zap.NewNop(), builtins: true}
	for _, option := range options {
		option(&opts)
	}
	r = &Registry{
		types:  make(map[string]Type, len(sys.BuiltinTypes)),
		logger: opts.logger,
	}
	if opts.builtins {
		builtins := Builtins()
		for _, key := range sys.BuiltinTypes {
			r.types[key] = builtins[key]
		}
	}
	return
}

// Register maps the key to the type, replacing any type registered under
// the same key. A type with a coercion function is registered as Custom.
// Keys are lowercased and must match [a-z0-9_./-]+.
func (r *Registry) Register(key string, typ Type) (err error) {
	key = sys.NormalizeTypeKey(key)
	if !sys.ValidTypeKey(key) {
		err = types.NewError("attrs.invalidTypeKey", "key", key)
		return
	}
	typ.Key = key
	if typ.Coerce != nil {
		typ.Kind = Custom
	}
	r.lock.Lock()
	_, replaced := r.types[key]
	r.types[key] = typ
	r.lock.Unlock()
	r.logger.Debug("registered attribute type",
		zap.String("key", key),
		zap.Stringer("kind", typ.Kind),
		zap.Bool("replaced", replaced))
	return
}

// Resolve returns the type registered under the key.
func (r *Registry) Resolve(key string) (typ Type, err error) {
	key = sys.NormalizeTypeKey(key)
	r.lock.RLock()
	defer r.lock.RUnlock()
	typ, ok := r.types[key]
	if !ok {
		err = errors.WithHintf(&UnknownTypeError{Key: key},
			"registered types: %s", strings.Join(r.keys(), ", "))
	}
	return
}

// Has is true if a type is registered under the key.
func (r *Registry) Has(key string) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	_, ok := r.types[sys.NormalizeTypeKey(key)]
	return ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.keys()
}

func (r *Registry) keys() (keys []string) {
	keys = maps.Keys(r.types)
	slices.Sort(keys)
	return
}
