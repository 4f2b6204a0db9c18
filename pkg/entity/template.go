package entity

import (
	"github.com/rawbytedev/genom/pkg/archive"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rawbytedev/genom/pkg/object"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// TemplateVersion is the payload version of template archives.
const TemplateVersion = 1

// TemplateFile is a GENOMFLE archive whose payload is a version word and
// one root object, usually an eCTemplateEntity.
type TemplateFile struct {
	Version uint16
	Root    object.Accessor

	// strings is the table the file was loaded with. Saving seeds the new
	// table with it so unchanged files keep their string indices.
	strings []string
}

// NewTemplate returns a template holding root.
func NewTemplate(root *TemplateEntity) *TemplateFile {
	return &TemplateFile{Version: TemplateVersion, Root: object.NewAccessor(object.New(root))}
}

// LoadTemplate decodes a template archive.
func LoadTemplate(data []byte, log zerolog.Logger) (*TemplateFile, error) {
	a, err := archive.Load(data)
	if err != nil {
		return nil, err
	}
	a.SetLogger(log)
	t := &TemplateFile{strings: a.Strings()}
	if t.Version, err = a.ReadU16(); err != nil {
		return nil, eris.Wrap(err, "template version")
	}
	if t.Version != TemplateVersion {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "template version %d, want %d", t.Version, TemplateVersion)
	}
	if t.Root, err = object.DecodeAccessor(a.Buffer); err != nil {
		return nil, eris.Wrap(err, "template root")
	}
	if a.Remaining() != 0 {
		log.Warn().Int("unread", a.Remaining()).Msg("template payload continues after root object")
	}
	return t, nil
}

// Entity returns the root template entity, if the root decoded to one.
func (t *TemplateFile) Entity() (*TemplateEntity, bool) {
	if t.Root.Object == nil {
		return nil, false
	}
	e, ok := t.Root.Object.Class.(*TemplateEntity)
	return e, ok
}

// Save encodes the template into a new archive.
func (t *TemplateFile) Save(log zerolog.Logger) ([]byte, error) {
	a := archive.NewWithStrings(t.strings)
	a.SetLogger(log)
	version := t.Version
	if version == 0 {
		version = TemplateVersion
	}
	a.WriteU16(version)
	if err := object.EncodeAccessor(a.Buffer, t.Root); err != nil {
		return nil, eris.Wrap(err, "template root")
	}
	return a.Save()
}
