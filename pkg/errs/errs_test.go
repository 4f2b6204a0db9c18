package errs

import (
	"errors"
	"io"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"
)

func TestWrappedSentinelsClassify(t *testing.T) {
	err := eris.Wrapf(ErrInvalidStructure, "property %q declared %d bytes", "Health", 3)
	err = eris.Wrap(err, "decode template")
	require.ErrorIs(t, err, ErrInvalidStructure)
	require.False(t, errors.Is(err, ErrUnknownVersion))
	require.False(t, Recoverable(err))
}

func TestRecoverable(t *testing.T) {
	require.True(t, Recoverable(eris.Wrapf(ErrUnknownVersion, "chunk %d version %d", 7, 9)))
	require.True(t, Recoverable(eris.Wrap(ErrEnumUnparseable, "gESpecies")))
	require.False(t, Recoverable(eris.Wrap(io.ErrUnexpectedEOF, "read u32")))
	require.False(t, Recoverable(nil))
}

func TestIOErrorsStayVisible(t *testing.T) {
	err := eris.Wrap(io.ErrUnexpectedEOF, "read chunk header")
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
