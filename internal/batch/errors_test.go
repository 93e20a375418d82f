package batch

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileError(t *testing.T) {
	err := &FileError{Path: "out/a/b.nbl", Op: "create output directory", Err: os.ErrPermission}

	assert.Equal(t, "create output directory out/a/b.nbl: permission denied", err.Error())
	assert.True(t, errors.Is(err, os.ErrPermission))

	var fe *FileError
	wrapped := errors.Join(errors.New("context"), err)
	assert.True(t, errors.As(wrapped, &fe))
	assert.Equal(t, "out/a/b.nbl", fe.Path)
}
