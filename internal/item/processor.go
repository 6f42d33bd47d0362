package item

import (
	"github.com/idelchi/formcipher/internal/form"
	"github.com/idelchi/formcipher/internal/layered"
	"github.com/idelchi/formcipher/internal/logger"
)

// Outcome is the result of processing one item.
type Outcome struct {
	Status layered.Status
	// Level is nil when the level could not be determined.
	Level *layered.Level
	// Values holds the transformed content by level slot. Slots that were skipped or not reached are nil.
	Values  [3]*string
	Message string
	Err     error
}

// OK reports whether the whole item was processed.
func (o Outcome) OK() bool {
	return o.Status == layered.StatusOK
}

func (o Outcome) fail(r layered.Result) Outcome {
	o.Status = r.Status
	o.Message = r.Message
	o.Err = r.Err

	return o
}

// Processor encrypts and decrypts items.
type Processor struct {
	cipher *layered.Cipher
	log    *logger.Logger
}

// NewProcessor returns a Processor using c. A nil log discards output.
func NewProcessor(c *layered.Cipher, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Nop()
	}

	return &Processor{cipher: c, log: log}
}

// EncryptItem encrypts every content slot up to the item's level, each at its own level.
func (p *Processor) EncryptItem(acc form.Accessor, b Binding, override layered.Keys) Outcome {
	return p.process("encrypt", acc, b, override, p.cipher.EncryptAtLevel)
}

// DecryptItem decrypts every content slot up to the item's level, each at its own level.
func (p *Processor) DecryptItem(acc form.Accessor, b Binding, override layered.Keys) Outcome {
	return p.process("decrypt", acc, b, override, p.cipher.DecryptAtLevel)
}

type transform func(value string, level layered.Level, keys layered.Keys) layered.Result

func (p *Processor) process(op string, acc form.Accessor, b Binding, override layered.Keys, apply transform) Outcome {
	out := p.run(acc, b, override, apply)

	p.log.Debug().
		Str("op", op).
		Str("level", layered.Format(out.Level)).
		Stringer("status", out.Status).
		Msg(out.Message)

	return out
}

func (p *Processor) run(acc form.Accessor, b Binding, override layered.Keys, apply transform) Outcome {
	var out Outcome

	tag := Level(acc, b.LevelField)
	if !tag.OK() {
		return out.fail(tag)
	}

	level, err := layered.ParseLevel(tag.String())
	if err != nil {
		return out.fail(layered.Failed(layered.StatusError, nil,
			layered.NewError(layered.KindUnsupportedLevel, err.Error())))
	}

	out.Level = &level

	keys, r := b.Keys(acc, level, override)
	if !r.OK() {
		return out.fail(r)
	}

	for slot := layered.Level0; slot <= level; slot++ {
		id := b.Content[slot]
		if id == "" {
			continue
		}

		value, ok := acc.Field(id)
		if !ok {
			return out.fail(layered.Failed(layered.StatusError, &level, fieldNotFound(id)))
		}

		r := apply(value, slot, keys)
		if !r.OK() {
			return out.fail(r)
		}

		out.Values[slot] = r.Value
	}

	out.Status = layered.StatusOK

	return out
}
