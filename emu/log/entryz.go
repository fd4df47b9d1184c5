package log

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeHex32
	FieldTypeHex64
	FieldTypeInt
	FieldTypeUint
	FieldTypeError
	FieldTypeDuration
	FieldTypeStringer
	FieldTypeBlob
)

// ZField is a typed log field. Only the member matching Type is populated.
type ZField struct {
	Type FieldType
	Key  string

	String    string
	Integer   uint64
	Duration  time.Duration
	Error     error
	Interface any
	Boolean   bool
	Blob      []byte
}

func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeBool:
		return strconv.FormatBool(f.Boolean)
	case FieldTypeString:
		return f.String
	case FieldTypeUint:
		return strconv.FormatUint(f.Integer, 10)
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeHex8:
		return fmt.Sprintf("%02x", uint8(f.Integer))
	case FieldTypeHex16:
		return fmt.Sprintf("%04x", uint16(f.Integer))
	case FieldTypeHex32:
		return fmt.Sprintf("%08x", uint32(f.Integer))
	case FieldTypeHex64:
		return fmt.Sprintf("%016x", f.Integer)
	case FieldTypeError:
		if f.Error == nil {
			return "<nil>"
		}
		return f.Error.Error()
	case FieldTypeDuration:
		return f.Duration.String()
	case FieldTypeStringer:
		return f.Interface.(fmt.Stringer).String()
	case FieldTypeBlob:
		return hex.Dump(f.Blob)
	}
	return ""
}

const maxZFields = 24

// EntryZ is a log entry built field by field and emitted by End. A nil
// *EntryZ is valid: it is what disabled levels return and all its methods are
// no-ops.
type EntryZ struct {
	lvl Level
	mod Module
	msg string

	zfbuf [maxZFields]ZField
	zfidx int
}

var entryPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	z := entryPool.Get().(*EntryZ)
	z.zfidx = 0
	return z
}

func (z *EntryZ) field(key string, typ FieldType) *ZField {
	if z.zfidx == len(z.zfbuf) {
		return nil
	}
	f := &z.zfbuf[z.zfidx]
	*f = ZField{Type: typ, Key: key}
	z.zfidx++
	return f
}

func (z *EntryZ) Bool(key string, b bool) *EntryZ {
	if z != nil {
		if f := z.field(key, FieldTypeBool); f != nil {
			f.Boolean = b
		}
	}
	return z
}

func (z *EntryZ) String(key string, s string) *EntryZ {
	if z != nil {
		if f := z.field(key, FieldTypeString); f != nil {
			f.String = s
		}
	}
	return z
}

func (z *EntryZ) integer(key string, typ FieldType, v uint64) *EntryZ {
	if z != nil {
		if f := z.field(key, typ); f != nil {
			f.Integer = v
		}
	}
	return z
}

func (z *EntryZ) Hex8(key string, v uint8) *EntryZ    { return z.integer(key, FieldTypeHex8, uint64(v)) }
func (z *EntryZ) Hex16(key string, v uint16) *EntryZ  { return z.integer(key, FieldTypeHex16, uint64(v)) }
func (z *EntryZ) Hex32(key string, v uint32) *EntryZ  { return z.integer(key, FieldTypeHex32, uint64(v)) }
func (z *EntryZ) Hex64(key string, v uint64) *EntryZ  { return z.integer(key, FieldTypeHex64, v) }
func (z *EntryZ) Uint(key string, v uint) *EntryZ     { return z.integer(key, FieldTypeUint, uint64(v)) }
func (z *EntryZ) Uint8(key string, v uint8) *EntryZ   { return z.integer(key, FieldTypeUint, uint64(v)) }
func (z *EntryZ) Uint16(key string, v uint16) *EntryZ { return z.integer(key, FieldTypeUint, uint64(v)) }
func (z *EntryZ) Uint32(key string, v uint32) *EntryZ { return z.integer(key, FieldTypeUint, uint64(v)) }
func (z *EntryZ) Uint64(key string, v uint64) *EntryZ { return z.integer(key, FieldTypeUint, v) }
func (z *EntryZ) Int(key string, v int) *EntryZ       { return z.integer(key, FieldTypeInt, uint64(v)) }
func (z *EntryZ) Int64(key string, v int64) *EntryZ   { return z.integer(key, FieldTypeInt, uint64(v)) }

func (z *EntryZ) Error(key string, err error) *EntryZ {
	if z != nil {
		if f := z.field(key, FieldTypeError); f != nil {
			f.Error = err
		}
	}
	return z
}

func (z *EntryZ) Duration(key string, d time.Duration) *EntryZ {
	if z != nil {
		if f := z.field(key, FieldTypeDuration); f != nil {
			f.Duration = d
		}
	}
	return z
}

func (z *EntryZ) Stringer(key string, s fmt.Stringer) *EntryZ {
	if z != nil {
		if f := z.field(key, FieldTypeStringer); f != nil {
			f.Interface = s
		}
	}
	return z
}

func (z *EntryZ) Blob(key string, b []byte) *EntryZ {
	if z != nil {
		if f := z.field(key, FieldTypeBlob); f != nil {
			f.Blob = b
		}
	}
	return z
}

// End emits the entry and releases it, z must not be used afterwards.
func (z *EntryZ) End() {
	if z == nil {
		return
	}

	// Contexts are appended after the entry own fields.
	for _, c := range contexts {
		c.AddLogContext(z)
	}

	fields := make(logrus.Fields, z.zfidx+1)
	fields["_mod"] = z.mod.String()
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	entry := logrus.StandardLogger().WithFields(fields)

	switch z.lvl {
	case DebugLevel:
		entry.Debug(z.msg)
	case InfoLevel:
		entry.Info(z.msg)
	case WarnLevel:
		entry.Warn(z.msg)
	case ErrorLevel:
		entry.Error(z.msg)
	case FatalLevel:
		entry.Fatal(z.msg)
	default:
		entry.Panic(z.msg)
	}

	clear(z.zfbuf[:z.zfidx])
	entryPool.Put(z)
}
