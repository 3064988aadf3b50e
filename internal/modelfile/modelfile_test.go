package modelfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphlite/internal/model"
	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/status"
)

func reluModel(t *testing.T) *model.Model {
	t.Helper()
	b := model.NewBuilder("relu", "2")
	in := b.AddTensor(model.TensorSpec{Name: "x", Shape: []int32{1, 8}, DataType: ops.Float32,
		Category: ops.CategoryGraphInput})
	out := b.AddTensor(model.TensorSpec{Name: "y", Shape: []int32{1, 8}, DataType: ops.Float32})
	_, err := b.AddNode(model.NodeSpec{Name: "relu", Inputs: []int{in}, Outputs: []int{out},
		Attr: &ops.Activation{Kind: ops.Relu}})
	require.NoError(t, err)
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func quiet() Options {
	opt := DefaultOptions()
	opt.Logger, _ = test.NewNullLogger()
	return opt
}

func TestSaveLoad(t *testing.T) {
	for _, name := range []string{"relu" + Ext, "relu" + Ext + CompressedExt} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want, err := model.Marshal(reluModel(t))
			require.NoError(t, err)

			require.NoError(t, Save(path, reluModel(t), quiet()))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, IsCompressed(path), bytes.HasPrefix(raw, xzMagic))

			m, err := Load(path, quiet())
			require.NoError(t, err)
			assert.Equal(t, "relu", m.Name())
			assert.True(t, m.Exportable())

			data, err := ReadFile(path, quiet())
			require.NoError(t, err)
			assert.Equal(t, want, data)

			sum, err := Digest(path, quiet())
			require.NoError(t, err)
			assert.Equal(t, m.Digest(), sum)
			assert.NoError(t, Verify(path, sum, quiet()))
		})
	}
}

func TestCompressFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forced"+Ext)
	data, err := model.Marshal(reluModel(t))
	require.NoError(t, err)

	opt := quiet()
	opt.Compress = true
	require.NoError(t, Write(path, data, opt))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, xzMagic), "compressed despite the plain extension")

	got, err := ReadFile(path, quiet())
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSaveImportedModelIsByteExact(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first"+Ext)
	second := filepath.Join(dir, "second"+Ext)

	require.NoError(t, Save(first, reluModel(t), quiet()))
	m, err := Load(first, quiet())
	require.NoError(t, err)
	require.NoError(t, Save(second, m, quiet()))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestVerifyMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relu"+Ext)
	require.NoError(t, Save(path, reluModel(t), quiet()))

	err := Verify(path, [32]byte{1}, quiet())
	assert.True(t, errors.Is(err, ErrDigestMismatch))
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing"+Ext), quiet())
	assert.True(t, errors.Is(err, os.ErrNotExist))

	empty := filepath.Join(dir, "empty"+Ext)
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = Load(empty, quiet())
	assert.True(t, errors.Is(err, status.ErrNullInput), "got %v", err)

	junk := filepath.Join(dir, "junk"+Ext)
	require.NoError(t, os.WriteFile(junk, []byte("definitely not a model"), 0o600))
	_, err = Load(junk, quiet())
	assert.True(t, errors.Is(err, status.ErrInvalidFormat), "got %v", err)

	path := filepath.Join(dir, "big"+Ext)
	require.NoError(t, Save(path, reluModel(t), quiet()))
	opt := quiet()
	opt.MaxSize = 16
	_, err = Load(path, opt)
	assert.True(t, errors.Is(err, status.ErrOutOfMemory), "got %v", err)

	compressed := filepath.Join(dir, "big"+Ext+CompressedExt)
	require.NoError(t, Save(compressed, reluModel(t), quiet()))
	_, err = ReadFile(compressed, opt)
	assert.True(t, errors.Is(err, status.ErrOutOfMemory), "got %v", err)
}

func TestWriteLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(filepath.Join(dir, "a"+Ext), []byte("payload"), quiet()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a"+Ext, entries[0].Name())

	err = Write(filepath.Join(dir, "missing", "b"+Ext), []byte("payload"), quiet())
	assert.Error(t, err)
}
