package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvFile(t *testing.T) {
	f, err := saveToTmpFile([]byte("ZM_ENV_TEST=abc\n"))
	if err != nil {
		t.Fatalf("fail to write env file: %v", err)
	}
	defer os.Remove(f)
	defer os.Unsetenv("ZM_ENV_TEST")

	assert.NoError(t, LoadEnvFile(f))
	assert.Equal(t, "abc", os.Getenv("ZM_ENV_TEST"))
}

func TestLoadEnvFileMissing(t *testing.T) {
	assert.Error(t, LoadEnvFile("/does/not/exist.env"))
}
