package archive

import (
	"testing"

	"github.com/rawbytedev/genom/internal/common"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/stretchr/testify/require"
)

func TestArchiveScenario(t *testing.T) {
	a := New()
	require.Equal(t, 0, a.Intern("Alpha"))
	require.Equal(t, 1, a.Intern("Beta"))
	a.WriteBytes([]byte{0x01, 0x02, 0x03})

	data, err := a.Save()
	require.NoError(t, err)

	got, err := Load(data)
	require.NoError(t, err)
	require.Equal(t, uint16(1), got.Version)
	require.Equal(t, []string{"Alpha", "Beta"}, got.Strings())
	require.Equal(t, []byte{0x01, 0x02, 0x03}, got.Data())

	require.Equal(t, 0, got.Intern("Alpha"))
	require.Equal(t, []string{"Alpha", "Beta"}, got.Strings())
}

func TestArchiveByteLayout(t *testing.T) {
	a := New()
	a.Intern("A")
	a.WriteU8(0x7F)
	data, err := a.Save()
	require.NoError(t, err)
	want := []byte("GENOMFLE")
	want = append(want, 0x01, 0x00)             // version
	want = append(want, 0x0F, 0x00, 0x00, 0x00) // table offset
	want = append(want, 0x7F)                   // payload
	want = append(want, 0xEF, 0xBE, 0xAD, 0xDE, 0x01, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 'A')
	require.Equal(t, want, data)
}

func TestStringReferences(t *testing.T) {
	a := New()
	require.NoError(t, a.WriteString("eCEntity"))
	require.NoError(t, a.WriteString("Name"))
	require.NoError(t, a.WriteString("eCEntity"))
	require.Len(t, a.Strings(), 2)

	data, err := a.Save()
	require.NoError(t, err)
	got, err := Load(data)
	require.NoError(t, err)
	for _, want := range []string{"eCEntity", "Name", "eCEntity"} {
		s, err := got.ReadString()
		require.NoError(t, err)
		require.Equal(t, want, s)
	}
	_, err = got.String(5)
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestArchiveRejectsBadHeaders(t *testing.T) {
	a := New()
	a.WriteBytes([]byte{1, 2})
	good, err := a.Save()
	require.NoError(t, err)

	badMagic := append([]byte{}, good...)
	badMagic[0] = 'X'
	_, err = Load(badMagic)
	require.ErrorIs(t, err, errs.ErrInvalidStructure)

	badVersion := append([]byte{}, good...)
	badVersion[8] = 2
	_, err = Load(badVersion)
	require.ErrorIs(t, err, errs.ErrInvalidStructure)

	badTable := append([]byte{}, good...)
	badTable[HeaderSize+2] = 0
	_, err = Load(badTable)
	require.ErrorIs(t, err, errs.ErrInvalidStructure)

	_, err = Load([]byte("GENOM"))
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestArchiveRoundTripCodePage(t *testing.T) {
	a := New()
	a.Intern("Schwert der Götter")
	a.Intern("")
	data, err := a.Save()
	require.NoError(t, err)
	got, err := Load(data)
	require.NoError(t, err)
	require.Equal(t, []string{"Schwert der Götter", ""}, got.Strings())
}

func FuzzArchiveRoundTrip(f *testing.F) {
	f.Add([]byte{1, 2, 3}, "Alpha", "Beta")
	f.Fuzz(func(t *testing.T, payload []byte, s1, s2 string) {
		for _, s := range []string{s1, s2} {
			enc, err := common.EncodeText(s, nil)
			if err != nil {
				t.Skip("not valid UTF-8")
			}
			if dec, _ := common.DecodeText(enc); dec != s {
				t.Skip("not representable in Windows-1252")
			}
		}
		a := New()
		a.Intern(s1)
		a.Intern(s2)
		a.WriteBytes(payload)
		data, err := a.Save()
		require.NoError(t, err)
		got, err := Load(data)
		require.NoError(t, err)
		require.Equal(t, a.Data(), got.Data())
		require.Equal(t, a.Strings(), got.Strings())
	})
}

func TestNewWithStringsKeepsIndices(t *testing.T) {
	a := NewWithStrings([]string{"Gamma", "Alpha", "Gamma"})
	require.Equal(t, 1, a.Intern("Alpha"))
	require.Equal(t, 0, a.Intern("Gamma"))
	require.Equal(t, 3, a.Intern("Delta"))
	require.Equal(t, []string{"Gamma", "Alpha", "Gamma", "Delta"}, a.Strings())
}
