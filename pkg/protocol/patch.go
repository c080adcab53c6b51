package protocol

import "fmt"

// PatchOp is the type of a document mutation.
type PatchOp uint8

// Patch operation constants.
const (
	PatchCreateElement PatchOp = 0x01 // ID, Namespace, Name (tag)
	PatchCreateText    PatchOp = 0x02 // ID, Value
	PatchInsertBefore  PatchOp = 0x03 // Parent, ID, Ref (0 appends)
	PatchRemoveChild   PatchOp = 0x04 // Parent, ID
	PatchReplaceChild  PatchOp = 0x05 // Parent, ID (new), Ref (old)
	PatchSetText       PatchOp = 0x06 // ID, Ref (new text child), Value
	PatchAddClass      PatchOp = 0x07 // ID, Name
	PatchRemoveClass   PatchOp = 0x08 // ID, Name
	PatchSetAttr       PatchOp = 0x09 // ID, Namespace, Name, Value
	PatchSetProp       PatchOp = 0x0A // ID, Name, Value (JSON)
	PatchSetStyle      PatchOp = 0x0B // ID, Name, Value ("" removes)
	PatchListen        PatchOp = 0x0C // ID, Name (event type)
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchCreateElement:
		return "CreateElement"
	case PatchCreateText:
		return "CreateText"
	case PatchInsertBefore:
		return "InsertBefore"
	case PatchRemoveChild:
		return "RemoveChild"
	case PatchReplaceChild:
		return "ReplaceChild"
	case PatchSetText:
		return "SetText"
	case PatchAddClass:
		return "AddClass"
	case PatchRemoveClass:
		return "RemoveClass"
	case PatchSetAttr:
		return "SetAttr"
	case PatchSetProp:
		return "SetProp"
	case PatchSetStyle:
		return "SetStyle"
	case PatchListen:
		return "Listen"
	default:
		return "Unknown"
	}
}

// Patch is a single document mutation. Which fields are meaningful depends
// on Op.
type Patch struct {
	Op        PatchOp
	ID        uint64 // Target node
	Parent    uint64 // Parent for InsertBefore/RemoveChild/ReplaceChild
	Ref       uint64 // Reference sibling for InsertBefore, old node for ReplaceChild
	Namespace string // For CreateElement/SetAttr
	Name      string // Tag, class, attribute, property, style or event name
	Value     string // Text, attribute, property (JSON) or style value
}

// String returns a compact description of the patch, used in test output.
func (p Patch) String() string {
	switch p.Op {
	case PatchCreateElement:
		return fmt.Sprintf("%s #%d <%s>", p.Op, p.ID, p.Name)
	case PatchCreateText:
		return fmt.Sprintf("%s #%d %q", p.Op, p.ID, p.Value)
	case PatchInsertBefore, PatchReplaceChild:
		return fmt.Sprintf("%s #%d in #%d ref #%d", p.Op, p.ID, p.Parent, p.Ref)
	case PatchRemoveChild:
		return fmt.Sprintf("%s #%d from #%d", p.Op, p.ID, p.Parent)
	case PatchSetText:
		return fmt.Sprintf("%s #%d (#%d) %q", p.Op, p.ID, p.Ref, p.Value)
	case PatchAddClass, PatchRemoveClass, PatchListen:
		return fmt.Sprintf("%s #%d %s", p.Op, p.ID, p.Name)
	default:
		return fmt.Sprintf("%s #%d %s=%q", p.Op, p.ID, p.Name, p.Value)
	}
}

// PatchesFrame represents a batch of patches with sequence number.
type PatchesFrame struct {
	Seq     uint64
	Reset   bool // client drops its mirror before applying
	Patches []Patch
}

// EncodePatches encodes a patches frame to bytes.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patches frame using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteBool(pf.Reset)
	e.WriteUvarint(uint64(len(pf.Patches)))

	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteUvarint(p.ID)

	switch p.Op {
	case PatchCreateElement:
		e.WriteString(p.Namespace)
		e.WriteString(p.Name)

	case PatchCreateText:
		e.WriteString(p.Value)

	case PatchSetText:
		e.WriteUvarint(p.Ref)
		e.WriteString(p.Value)

	case PatchInsertBefore, PatchReplaceChild:
		e.WriteUvarint(p.Parent)
		e.WriteUvarint(p.Ref)

	case PatchRemoveChild:
		e.WriteUvarint(p.Parent)

	case PatchAddClass, PatchRemoveClass, PatchListen:
		e.WriteString(p.Name)

	case PatchSetAttr:
		e.WriteString(p.Namespace)
		e.WriteString(p.Name)
		e.WriteString(p.Value)

	case PatchSetProp, PatchSetStyle:
		e.WriteString(p.Name)
		e.WriteString(p.Value)
	}
}

// DecodePatches decodes a patches frame from bytes.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	return DecodePatchesFrom(NewDecoder(data))
}

// DecodePatchesFrom decodes a patches frame from a decoder.
func DecodePatchesFrom(d *Decoder) (*PatchesFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	reset, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	patches := make([]Patch, count)
	for i := range patches {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, err
		}
	}

	return &PatchesFrame{
		Seq:     seq,
		Reset:   reset,
		Patches: patches,
	}, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	opByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(opByte)

	if p.ID, err = d.ReadUvarint(); err != nil {
		return err
	}

	switch p.Op {
	case PatchCreateElement:
		if p.Namespace, err = d.ReadString(); err != nil {
			return err
		}
		p.Name, err = d.ReadString()

	case PatchCreateText:
		p.Value, err = d.ReadString()

	case PatchSetText:
		if p.Ref, err = d.ReadUvarint(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	case PatchInsertBefore, PatchReplaceChild:
		if p.Parent, err = d.ReadUvarint(); err != nil {
			return err
		}
		p.Ref, err = d.ReadUvarint()

	case PatchRemoveChild:
		p.Parent, err = d.ReadUvarint()

	case PatchAddClass, PatchRemoveClass, PatchListen:
		p.Name, err = d.ReadString()

	case PatchSetAttr:
		if p.Namespace, err = d.ReadString(); err != nil {
			return err
		}
		if p.Name, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	case PatchSetProp, PatchSetStyle:
		if p.Name, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	default:
		return fmt.Errorf("protocol: unknown patch op 0x%02x", opByte)
	}
	return err
}
