package parserpool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"binomial", "Homo sapiens", "Homo sapiens"},
		{"authorship stripped", "Homo sapiens Linnaeus, 1758", "Homo sapiens"},
		{"uninomial", "Primates", "Primates"},
		{"empty", "", ""},
		{"unparseable", "not a name at all!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pool.Canonical(tt.in))
		})
	}
}

func TestCanonicalConcurrent(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.Equal(
					t, "Homo sapiens",
					pool.Canonical("Homo sapiens Linnaeus, 1758"),
				)
			}
		}()
	}
	wg.Wait()
}
