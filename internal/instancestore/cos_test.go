package instancestore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fjss-ccgp/ccgp/pkg/config"
)

func TestNewCOSStorage_Validation(t *testing.T) {
	t.Run("MissingBucket", func(t *testing.T) {
		store, err := NewCOSStorage(&COSConfig{
			Region:    "ap-guangzhou",
			SecretID:  "test-id",
			SecretKey: "test-key",
		})
		assert.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "bucket and region are required")
	})

	t.Run("MissingRegion", func(t *testing.T) {
		store, err := NewCOSStorage(&COSConfig{
			Bucket:    "test-bucket",
			SecretID:  "test-id",
			SecretKey: "test-key",
		})
		assert.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "bucket and region are required")
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		store, err := NewCOSStorage(&COSConfig{
			Bucket: "test-bucket",
			Region: "ap-guangzhou",
		})
		assert.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "credentials are required")
	})
}

func TestNewCOSStorage_GetURL(t *testing.T) {
	store, err := NewCOSStorage(&COSConfig{
		Bucket:    "instances",
		Region:    "ap-guangzhou",
		SecretID:  "test-id",
		SecretKey: "test-key",
	})
	assert.NoError(t, err)
	assert.Equal(t, "https://instances.cos.ap-guangzhou.myqcloud.com/mt10.txt", store.GetURL("mt10.txt"))
}

func TestValidateConfig(t *testing.T) {
	t.Run("COSMissingBucket", func(t *testing.T) {
		err := ValidateConfig(config.StorageConfig{Type: "cos", Region: "ap-guangzhou", SecretID: "a", SecretKey: "b"})
		assert.Error(t, err)
	})

	t.Run("LocalMissingPath", func(t *testing.T) {
		err := ValidateConfig(config.StorageConfig{Type: "local"})
		assert.Error(t, err)
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		err := ValidateConfig(config.StorageConfig{Type: "ftp"})
		assert.Error(t, err)
	})
}
