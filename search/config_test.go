package search

import "testing"

func TestDefaultConfigMatchesReference(t *testing.T) {
	c := DefaultConfig()
	if c.ThreadsPerBlock != 128 {
		t.Errorf("threads per block = %d, want 128", c.ThreadsPerBlock)
	}
	if c.NoncesPerThread != 3 {
		t.Errorf("nonces per thread = %d, want 3", c.NoncesPerThread)
	}
	if c.SharedCacheSize != 16*1024 {
		t.Errorf("shared cache size = %d, want 16384", c.SharedCacheSize)
	}
	if err := c.validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidateRejectsNonPositiveFields(t *testing.T) {
	cases := []Config{
		{ThreadsPerBlock: 0, NoncesPerThread: 1, SharedCacheSize: 16384},
		{ThreadsPerBlock: 128, NoncesPerThread: 0, SharedCacheSize: 16384},
		{ThreadsPerBlock: 128, NoncesPerThread: 1, SharedCacheSize: 0},
		{ThreadsPerBlock: 128, NoncesPerThread: 1, SharedCacheSize: 5},
	}
	for i, c := range cases {
		if err := c.validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestNoncesPerBlock(t *testing.T) {
	c := Config{ThreadsPerBlock: 128, NoncesPerThread: 3}
	if got := c.NoncesPerBlock(); got != 384 {
		t.Errorf("got %d, want 384", got)
	}
}
