package formdef

import (
	"fmt"

	"github.com/marcus/dialog/pkg/dialog"
)

// valued is satisfied by the entry rows that carry a user value.
type valued interface {
	dialog.Element
	Value() string
	SetValue(string)
}

type boundField struct {
	key  string
	elem valued
}

// Form is a definition built into a live dialog tree.
type Form struct {
	Name string
	Root *dialog.RootElement

	fields   []boundField
	onChange func(key string)
	onEdit   func(key string)
}

// Options adjust how a definition is built.
type Options struct {
	// DefaultHeight replaces the multi-line row height for fields that set none.
	DefaultHeight float64
}

// Build creates the dialog tree for d.
func (d *Definition) Build(opts Options) (*Form, error) {
	form := &Form{Name: d.Name, Root: dialog.NewRoot(d.Title)}

	for _, sd := range d.Sections {
		sec := dialog.NewSection(sd.Header)
		sec.Footer = sd.Footer
		for _, f := range sd.Fields {
			elem, err := form.buildField(f, opts)
			if err != nil {
				return nil, err
			}
			sec.Add(elem)
		}
		form.Root.Add(sec)
	}
	return form, nil
}

func (form *Form) buildField(f Field, opts Options) (dialog.Element, error) {
	keyboard, err := dialog.ParseKeyboardKind(f.Keyboard)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.Key, err)
	}

	switch f.Type {
	case TypeLabel:
		return dialog.NewStringElement(f.Caption, f.Value), nil

	case TypeMultiline:
		caps, err := dialog.ParseCapitalization(f.Capitalization)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		corr, err := dialog.ParseCorrection(f.Correction)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		m := dialog.NewMultilineEntryElement(f.Caption, f.Value)
		m.SetPlaceholder(f.Placeholder)
		m.SetKeyboard(keyboard)
		m.SetCapitalization(caps)
		m.SetCorrection(corr)
		switch {
		case f.Height > 0:
			m.SetHeight(f.Height)
		case opts.DefaultHeight > 0:
			m.SetHeight(opts.DefaultHeight)
		}
		key := f.Key
		m.Changed = func(dialog.Element) { form.edited(key) }
		m.OnValueChanged = func(dialog.Element) { form.changed(key) }
		form.fields = append(form.fields, boundField{key: key, elem: m})
		return m, nil

	default:
		var e *dialog.EntryElement
		if f.Type == TypePassword {
			e = dialog.NewPasswordElement(f.Caption, f.Placeholder, f.Value)
		} else {
			e = dialog.NewEntryElement(f.Caption, f.Placeholder, f.Value)
		}
		e.SetKeyboard(keyboard)
		key := f.Key
		e.OnValueChanged = func(dialog.Element) { form.changed(key) }
		form.fields = append(form.fields, boundField{key: key, elem: e})
		return e, nil
	}
}

func (form *Form) changed(key string) {
	if form.onChange != nil {
		form.onChange(key)
	}
}

func (form *Form) edited(key string) {
	if form.onEdit != nil {
		form.onEdit(key)
	}
}

// OnChange registers fn to run when a field's edit is committed: an entry
// row losing focus or a multi-line row ending editing.
func (form *Form) OnChange(fn func(key string)) {
	form.onChange = fn
}

// OnEdit registers fn to run on every keystroke that changes a multi-line
// value while it is still being edited.
func (form *Form) OnEdit(fn func(key string)) {
	form.onEdit = fn
}

// Keys returns the field keys in display order.
func (form *Form) Keys() []string {
	keys := make([]string, len(form.fields))
	for i, f := range form.fields {
		keys[i] = f.key
	}
	return keys
}

// Values returns the current value of every input field keyed by field key.
func (form *Form) Values() map[string]string {
	values := make(map[string]string, len(form.fields))
	for _, f := range form.fields {
		values[f.key] = f.elem.Value()
	}
	return values
}

// Prefill sets field values from a saved submission. Unknown keys are ignored.
func (form *Form) Prefill(values map[string]string) {
	for _, f := range form.fields {
		if v, ok := values[f.key]; ok {
			f.elem.SetValue(v)
		}
	}
}

// Element returns the row bound to key.
func (form *Form) Element(key string) (dialog.Element, bool) {
	for _, f := range form.fields {
		if f.key == key {
			return f.elem, true
		}
	}
	return nil, false
}
