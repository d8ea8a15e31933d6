package blob

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// Memory keeps objects in a map. Used for local runs and tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string]memoryObject),
	}
}

func (m *Memory) Store(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	m.objects[key] = memoryObject{data: copied, contentType: contentType}
	return nil
}

func (m *Memory) Fetch(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, goerr.New("object not found",
			goerr.T(types.ErrTagNotFound), goerr.V("key", key))
	}

	copied := make([]byte, len(obj.data))
	copy(copied, obj.data)
	return copied, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	return nil
}

// ContentTypeOf reports the stored content type, for test assertions
func (m *Memory) ContentTypeOf(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	return obj.contentType, ok
}
