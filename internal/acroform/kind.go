package acroform

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the widget type of a form field.
type Kind int

const (
	// KindUnknown covers push buttons and fields without a usable /FT.
	KindUnknown Kind = iota
	KindTextField
	KindCheckBox
	KindDropdown
	KindRadioGroup
	KindSignature
)

// Fillable returns true for kinds the filler can write.
func (k Kind) Fillable() bool {
	switch k {
	case KindTextField, KindCheckBox, KindDropdown, KindRadioGroup:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Field flag bits (/Ff), zero-based.
const (
	flagRadio      = 1 << 15
	flagPushbutton = 1 << 16
	flagCombo      = 1 << 17
	flagEdit       = 1 << 18
)

// kindOf classifies a terminal field from its inherited /FT and /Ff.
func kindOf(ft string, ff int) Kind {
	switch ft {
	case "Tx":
		return KindTextField
	case "Btn":
		switch {
		case ff&flagPushbutton != 0:
			return KindUnknown
		case ff&flagRadio != 0:
			return KindRadioGroup
		default:
			return KindCheckBox
		}
	case "Ch":
		return KindDropdown
	case "Sig":
		return KindSignature
	default:
		return KindUnknown
	}
}
